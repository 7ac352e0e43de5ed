package session

// IsDirty reports whether candidate differs from original in any field the
// user can edit. Participants are compared by position, so reordering them
// counts as a change. The ID is not compared.
func IsDirty(original, candidate Info) bool {
	if original.GroupName != candidate.GroupName ||
		original.Date != candidate.Date ||
		original.Duration != candidate.Duration ||
		len(original.Participants) != len(candidate.Participants) {
		return true
	}
	for i, p := range original.Participants {
		if candidate.Participants[i] != p {
			return true
		}
	}
	return false
}
