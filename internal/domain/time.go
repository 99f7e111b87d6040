package domain

// Layouts for the human-readable timestamps persisted in the collection
// files. Full timestamps are used for time-clock punches and task
// completion; bare dates everywhere else.
const (
	TimestampLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
)
