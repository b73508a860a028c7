package types

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Task categories. Category is required on every task.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
)

// Categories lists the recognized categories in display order.
var Categories = []Category{CategoryWork, CategoryPersonal}

// Valid reports whether c is a recognized category.
func (c Category) Valid() bool {
	return c == CategoryWork || c == CategoryPersonal
}

// Task priorities. The zero value PriorityUnset means no priority was chosen.
type Priority string

const (
	PriorityUnset  Priority = ""
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists the recognized non-empty priorities, lowest first.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Valid reports whether p is unset or a recognized priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityUnset, PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// PriorityRank orders priorities low < medium < high. Unset and unknown
// values rank 0, below every real priority.
func PriorityRank(p Priority) int {
	switch Priority(strings.ToLower(string(p))) {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	default:
		return 0
	}
}

// MinTitleLength is the minimum number of characters in a task title.
const MinTitleLength = 3

// Task is a short-lived to-do record. ID, CreatedAt and UpdatedAt are
// assigned by the backend.
type Task struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Category    Category  `json:"category" yaml:"category"`
	Priority    Priority  `json:"priority" yaml:"priority"`
	Completed   bool      `json:"completed" yaml:"completed"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

// RecordID returns the task ID.
func (t Task) RecordID() string { return t.ID }

// TaskInput is the payload for creating a task.
type TaskInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    Category `json:"category"`
	Priority    Priority `json:"priority,omitempty"`
}

// Validate checks the input and returns a *ValidationError for the first
// offending field.
func (in TaskInput) Validate() error {
	if err := validateTitle(in.Title); err != nil {
		return err
	}
	if in.Category == "" {
		return &ValidationError{Field: "category", Message: "category is required"}
	}
	if !in.Category.Valid() {
		return &ValidationError{Field: "category", Message: "unknown category " + quote(string(in.Category))}
	}
	if !in.Priority.Valid() {
		return &ValidationError{Field: "priority", Message: "unknown priority " + quote(string(in.Priority))}
	}
	return nil
}

// NewTask builds an unsaved task from the input. The caller assigns ID and
// timestamps.
func (in TaskInput) NewTask() Task {
	return Task{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Category:    in.Category,
		Priority:    in.Priority,
	}
}

// TaskPatch is a partial update. A nil field means "no change".
type TaskPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Category    *Category `json:"category,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Completed   *bool     `json:"completed,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil &&
		p.Priority == nil && p.Completed == nil
}

// Validate applies the TaskInput field rules to the fields present.
func (p TaskPatch) Validate() error {
	if p.Title != nil {
		if err := validateTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.Category != nil && !p.Category.Valid() {
		return &ValidationError{Field: "category", Message: "unknown category " + quote(string(*p.Category))}
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return &ValidationError{Field: "priority", Message: "unknown priority " + quote(string(*p.Priority))}
	}
	return nil
}

// Apply copies the present fields onto t. Timestamps are left alone.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}

func validateTitle(title string) error {
	if utf8.RuneCountInString(strings.TrimSpace(title)) < MinTitleLength {
		return &ValidationError{Field: "title", Message: "title must be at least 3 characters"}
	}
	return nil
}

// NextUpdatedAt returns the current UTC time, or a time just after prev when
// the clock has not moved past it, so updated_at strictly increases.
func NextUpdatedAt(prev time.Time) time.Time {
	now := time.Now().UTC()
	if !now.After(prev) {
		return prev.UTC().Add(time.Microsecond)
	}
	return now
}

func quote(s string) string {
	return `"` + s + `"`
}
