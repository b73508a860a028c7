package view

import (
	"cmp"
	"slices"

	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

// Apply returns the tasks that match every active predicate of f, in the
// order f asks for. The input slice is not modified. Sorting is stable, so
// ties keep the cache order.
func Apply(tasks []types.Task, f Filter) []types.Task {
	f = f.normalize()

	out := make([]types.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.matches(t) {
			out = append(out, t)
		}
	}

	switch f.Order {
	case OrderPriorityAsc:
		slices.SortStableFunc(out, func(a, b types.Task) int {
			return cmp.Compare(types.PriorityRank(a.Priority), types.PriorityRank(b.Priority))
		})
	case OrderPriorityDesc:
		slices.SortStableFunc(out, func(a, b types.Task) int {
			return cmp.Compare(types.PriorityRank(b.Priority), types.PriorityRank(a.Priority))
		})
	default:
		// A zero CreatedAt sorts as the oldest possible value.
		slices.SortStableFunc(out, func(a, b types.Task) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
	return out
}

func (f Filter) matches(t types.Task) bool {
	if f.Category != All && t.Category != f.Category {
		return false
	}
	switch f.Status {
	case StatusPending:
		if t.Completed {
			return false
		}
	case StatusCompleted:
		if !t.Completed {
			return false
		}
	}
	if f.Priority != All && t.Priority != f.Priority {
		return false
	}
	return true
}

// Stats are the dashboard counters.
type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}

// Summarize counts tasks by completion.
func Summarize(tasks []types.Task) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		} else {
			s.Pending++
		}
	}
	return s
}

// Partition splits tasks into pending and completed lists, keeping order.
func Partition(tasks []types.Task) (pending, completed []types.Task) {
	pending = []types.Task{}
	completed = []types.Task{}
	for _, t := range tasks {
		if t.Completed {
			completed = append(completed, t)
		} else {
			pending = append(pending, t)
		}
	}
	return pending, completed
}
