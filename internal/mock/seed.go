package mock

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/mesh-intelligence/taskdesk/internal/jsonl"
	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

//go:embed seed_tasks.jsonl
var seedTasksJSONL []byte

//go:embed seed_notes.jsonl
var seedNotesJSONL []byte

// seedSpacing separates seed timestamps so that recency order matches file
// order: the first record is the newest.
const seedSpacing = time.Minute

// loadSeed decodes the embedded dataset and stamps it relative to now.
func loadSeed(now time.Time) ([]types.Task, []types.Note, error) {
	tasks, err := jsonl.Decode[types.Task](bytes.NewReader(seedTasksJSONL))
	if err != nil {
		return nil, nil, fmt.Errorf("decoding task seed: %w", err)
	}
	for i := range tasks {
		ts := now.Add(-time.Duration(i) * seedSpacing)
		tasks[i].CreatedAt = ts
		tasks[i].UpdatedAt = ts
	}

	notes, err := jsonl.Decode[types.Note](bytes.NewReader(seedNotesJSONL))
	if err != nil {
		return nil, nil, fmt.Errorf("decoding note seed: %w", err)
	}
	for i := range notes {
		ts := now.Add(-time.Duration(i) * seedSpacing)
		notes[i].CreatedAt = ts
		notes[i].UpdatedAt = ts
	}
	return tasks, notes, nil
}
