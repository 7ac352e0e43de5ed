package search

import "github.com/stwalsh4118/grouplog/internal/session"

// ConfirmState is the state of the yes/no confirmation prompt.
type ConfirmState int

// Confirm state constants
const (
	ConfirmNone   ConfirmState = iota // No prompt showing
	ConfirmDelete                     // Delete the record being edited
	ConfirmSave                       // Save (create or overwrite) the candidate
	ConfirmBack                       // Discard unsaved changes
)

// ConfirmTitle is the heading of every confirmation prompt.
const ConfirmTitle = "Are you sure?"

// Prompt returns the question asked for a confirm state.
func Prompt(state ConfirmState) string {
	switch state {
	case ConfirmDelete:
		return "Delete this session?"
	case ConfirmSave:
		return "Overwrite this session?"
	case ConfirmBack:
		return "Disregard current changes?"
	default:
		return ""
	}
}

// pendingAction is the action waiting on the user's answer. Each variant
// carries only the data its action needs.
type pendingAction interface {
	state() ConfirmState
}

type pendingSave struct {
	candidate *session.Info
}

type pendingDelete struct{}

type pendingBack struct{}

func (pendingSave) state() ConfirmState   { return ConfirmSave }
func (pendingDelete) state() ConfirmState { return ConfirmDelete }
func (pendingBack) state() ConfirmState   { return ConfirmBack }

// Confirmation tracks which action, if any, is waiting for confirmation.
// The zero value shows no prompt.
type Confirmation struct {
	pending pendingAction
}

// State returns the current prompt state.
func (c *Confirmation) State() ConfirmState {
	if c.pending == nil {
		return ConfirmNone
	}
	return c.pending.state()
}

// Showing reports whether a prompt is waiting for an answer.
func (c *Confirmation) Showing() bool {
	return c.pending != nil
}

func (c *Confirmation) requestSave(candidate session.Info) {
	saved := candidate.Clone()
	c.pending = pendingSave{candidate: &saved}
}

func (c *Confirmation) requestDelete() {
	c.pending = pendingDelete{}
}

func (c *Confirmation) requestBack() {
	c.pending = pendingBack{}
}

// take returns the pending action and resets to ConfirmNone.
func (c *Confirmation) take() pendingAction {
	p := c.pending
	c.pending = nil
	return p
}

// cancel drops the pending action without running it.
func (c *Confirmation) cancel() {
	c.pending = nil
}
