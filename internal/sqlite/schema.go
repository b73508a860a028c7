package sqlite

import "time"

// Schema DDL for both tables. Timestamps are stored as fixed-width UTC text
// (timeLayout) so that text ordering matches time ordering.
const (
	createTasks = `CREATE TABLE IF NOT EXISTS tasks (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL,
    priority TEXT NOT NULL DEFAULT '',
    completed INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createNotes = `CREATE TABLE IF NOT EXISTS notes (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    topics TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`
)

// Index DDL for the list ordering.
const (
	idxTasksCreated = `CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks(created_at);`
	idxNotesCreated = `CREATE INDEX IF NOT EXISTS idx_notes_created_at ON notes(created_at);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createTasks,
	createNotes,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxTasksCreated,
	idxNotesCreated,
}

// timeLayout is RFC 3339 with fixed nanosecond width, always in UTC.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
