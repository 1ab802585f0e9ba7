package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color bool
	// Title names the group the bag belongs to, e.g. "function main".
	Title     string
	Width     uint8 // максимальная ширина строки, 0 - не ограничено
	ShowNotes bool
	// Describe returns the text of the instruction with the given ordinal,
	// printed under the diagnostic as context. nil disables context lines.
	Describe func(inst uint32) (string, bool)
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	Title        string
	Max          int // обрезка вывода, не Bag
	IncludeNotes bool
}
