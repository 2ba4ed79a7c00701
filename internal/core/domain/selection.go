package domain

// SelectionState tracks what the player should show. Empty strings mean unset.
// ReplayKey only ever grows; the player page recreates the embedded player
// whenever it changes, even if Current did not.
type SelectionState struct {
	Current   string
	Previous  string
	ReplayKey int
}

func (s SelectionState) HasSelection() bool {
	return s.Current != ""
}
