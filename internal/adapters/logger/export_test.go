package logger

// ErrorEntry exposes errorEntry for white-box tests.
type ErrorEntry = errorEntry

var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)
