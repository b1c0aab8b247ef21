package commands

const (
	// DefaultHistoryLimit caps how many entries `history list` shows.
	DefaultHistoryLimit = 50
	// DefaultHistorySearchLimit caps `history search` results.
	DefaultHistorySearchLimit = 20
	// TimestampFormat renders entry timestamps in listings.
	TimestampFormat = "2006-01-02 15:04:05"
)
