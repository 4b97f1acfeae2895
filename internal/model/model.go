package model

// Summary holds the results of a run for display. Paths are relative to the
// output directory.
type Summary struct {
	Created  []string
	Modified []string
	Deleted  []string
	Skipped  []string
	Failed   []string
	Message  string
}

// Empty reports whether no file was touched, skipped or failed.
func (s Summary) Empty() bool {
	return len(s.Created) == 0 && len(s.Modified) == 0 && len(s.Deleted) == 0 &&
		len(s.Skipped) == 0 && len(s.Failed) == 0
}
