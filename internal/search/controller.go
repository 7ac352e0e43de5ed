// Package search implements the session search and edit workflow: filtering
// and sorting the session list, tracking the record being edited, and gating
// saves, deletes and discards behind a confirmation prompt.
//
// A Controller holds a snapshot of the store taken when it is created. Only
// its own confirmed saves and deletes change that snapshot; changes made to
// the store by anything else are not picked up.
package search

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/stwalsh4118/grouplog/internal/session"
)

// SessionStore is the persistence the controller reads from and writes to.
type SessionStore interface {
	GetAllSessions() ([]session.Info, error)
	GetAllGroupNames() ([]string, error)
	SaveSession(s session.Info) error
	DeleteSession(id string) error
}

// Option configures a Controller.
type Option func(*Controller)

// WithSortStates sets the initial column sort directions.
func WithSortStates(st SortStates) Option {
	return func(c *Controller) { c.sort = st }
}

// WithLogger sets the logger used for store activity.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithIDGenerator replaces the function that assigns IDs to new sessions.
func WithIDGenerator(gen func() string) Option {
	return func(c *Controller) {
		if gen != nil {
			c.newID = gen
		}
	}
}

// Controller owns the session snapshot and the search/edit state.
type Controller struct {
	store      SessionStore
	snap       *snapshot
	groupNames []string

	filter  Filter
	sort    SortStates
	confirm Confirmation

	// editing is the record shown in the edit view; nil means the list view.
	editing *session.Info

	newID  func() string
	logger *slog.Logger
}

// NewController loads every session and group name from st.
func NewController(st SessionStore, opts ...Option) (*Controller, error) {
	c := &Controller{
		store:  st,
		sort:   DefaultSortStates(),
		newID:  uuid.NewString,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}

	sessions, err := st.GetAllSessions()
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	names, err := st.GetAllGroupNames()
	if err != nil {
		return nil, fmt.Errorf("load group names: %w", err)
	}

	c.snap = newSnapshot(sessions)
	c.groupNames = append([]string(nil), names...)
	sort.Strings(c.groupNames)
	c.logger.Info("sessions loaded", "count", c.snap.len(), "groups", len(names))
	return c, nil
}

// ListView returns the snapshot filtered, then sorted.
func (c *Controller) ListView() []session.Info {
	return c.sort.Sort(c.filter.Apply(c.snap.records()))
}

// Len returns the number of sessions in the snapshot, ignoring filters.
func (c *Controller) Len() int {
	return c.snap.len()
}

// GroupNames returns known group names for filter suggestions.
func (c *Controller) GroupNames() []string {
	return append([]string(nil), c.groupNames...)
}

// Filter returns the active filter.
func (c *Controller) Filter() Filter {
	return c.filter
}

// SetFilter replaces the active filter.
func (c *Controller) SetFilter(f Filter) {
	c.filter = f
}

// SetGroupFilter sets the group name prefix.
func (c *Controller) SetGroupFilter(prefix string) {
	c.filter.Group = prefix
}

// SetDateRange sets the inclusive date bounds. Both must be set for the
// range to apply.
func (c *Controller) SetDateRange(start, end string) {
	c.filter.Start = start
	c.filter.End = end
}

// ResetFilters clears the group and date filters. Sort state is kept.
func (c *Controller) ResetFilters() {
	c.filter = Filter{}
}

// SortStates returns the column sort directions.
func (c *Controller) SortStates() SortStates {
	return c.sort
}

// SetSortStates replaces the sort direction of every column.
func (c *Controller) SetSortStates(st SortStates) {
	c.sort = st
}

// ToggleSort advances the sort state of column col.
func (c *Controller) ToggleSort(col Column) {
	c.sort = c.sort.Toggle(col)
}

// SelectForEdit switches to the edit view for rec.
func (c *Controller) SelectForEdit(rec session.Info) {
	e := rec.Clone()
	c.editing = &e
}

// NewSession switches to the edit view for a blank, unsaved record.
func (c *Controller) NewSession() {
	c.editing = &session.Info{}
}

// Editing returns the record being edited. The bool is false in list view.
func (c *Controller) Editing() (session.Info, bool) {
	if c.editing == nil {
		return session.Info{}, false
	}
	return c.editing.Clone(), true
}

// ConfirmState returns the confirmation prompt state.
func (c *Controller) ConfirmState() ConfirmState {
	return c.confirm.State()
}

// Prompt returns the question for the current confirmation, or "".
func (c *Controller) Prompt() string {
	return Prompt(c.confirm.State())
}

// RequestSave asks for confirmation before saving candidate. It always
// prompts, for new records as well as overwrites.
func (c *Controller) RequestSave(candidate session.Info) {
	c.confirm.requestSave(candidate)
}

// RequestDelete asks for confirmation before deleting the record being
// edited. The candidate is not consulted.
func (c *Controller) RequestDelete(session.Info) {
	c.confirm.requestDelete()
}

// RequestBack leaves the edit view. If candidate differs from the record
// being edited the user is asked first; otherwise the edit is dropped
// immediately.
func (c *Controller) RequestBack(candidate session.Info) {
	if c.editing != nil && session.IsDirty(*c.editing, candidate) {
		c.confirm.requestBack()
		return
	}
	c.confirm.cancel()
	c.editing = nil
}

// Cancel dismisses the prompt without running its action.
func (c *Controller) Cancel() {
	c.confirm.cancel()
}

// Confirm runs the pending action and dismisses the prompt. With no prompt
// showing it does nothing. A store error leaves the snapshot and the edit
// untouched.
func (c *Controller) Confirm() error {
	switch action := c.confirm.take().(type) {
	case pendingSave:
		return c.doSave(action.candidate)
	case pendingDelete:
		return c.doDelete()
	case pendingBack:
		c.editing = nil
	}
	return nil
}

func (c *Controller) doSave(candidate *session.Info) error {
	if candidate == nil {
		return nil
	}
	rec := candidate.Clone()
	if rec.IsNew() {
		rec.ID = c.newID()
	}

	if err := c.store.SaveSession(rec); err != nil {
		c.logger.Error("save failed", "id", rec.ID, "err", err)
		return fmt.Errorf("save session: %w", err)
	}

	c.snap.upsert(rec)
	c.addGroupName(rec.GroupName)
	c.editing = nil
	c.logger.Info("session saved", "id", rec.ID, "group", rec.GroupName)
	return nil
}

func (c *Controller) doDelete() error {
	if c.editing == nil {
		return nil
	}
	id := c.editing.ID
	if id != "" {
		if err := c.store.DeleteSession(id); err != nil {
			c.logger.Error("delete failed", "id", id, "err", err)
			return fmt.Errorf("delete session: %w", err)
		}
		c.snap.remove(id)
	}
	c.editing = nil
	c.logger.Info("session deleted", "id", id)
	return nil
}

// addGroupName inserts name into the sorted groupNames if it is new.
func (c *Controller) addGroupName(name string) {
	i := sort.SearchStrings(c.groupNames, name)
	if i < len(c.groupNames) && c.groupNames[i] == name {
		return
	}
	c.groupNames = append(c.groupNames, "")
	copy(c.groupNames[i+1:], c.groupNames[i:])
	c.groupNames[i] = name
}
