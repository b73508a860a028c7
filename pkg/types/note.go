package types

import (
	"strings"
	"time"
)

// DefaultNoteTitle replaces a blank note title.
const DefaultNoteTitle = "Meeting"

// DateLayout is the calendar-date format of Note.Date.
const DateLayout = "2006-01-02"

// Note is a free-form meeting note.
type Note struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Date      string    `json:"date" yaml:"date"`
	Topics    string    `json:"topics" yaml:"topics"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// RecordID returns the note ID.
func (n Note) RecordID() string { return n.ID }

// NoteInput is the payload for creating a note. Every field is optional.
type NoteInput struct {
	Title  string `json:"title,omitempty"`
	Date   string `json:"date,omitempty"`
	Topics string `json:"topics,omitempty"`
}

// Normalize fills the defaults: a blank title becomes DefaultNoteTitle and a
// blank date becomes the calendar date of now.
func (in NoteInput) Normalize(now time.Time) NoteInput {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		in.Title = DefaultNoteTitle
	}
	in.Date = strings.TrimSpace(in.Date)
	if in.Date == "" {
		in.Date = now.Format(DateLayout)
	}
	in.Topics = strings.TrimSpace(in.Topics)
	return in
}

// Validate rejects a non-blank date that is not a calendar date.
func (in NoteInput) Validate() error {
	return validateDate(in.Date)
}

// NewNote builds an unsaved note from the normalized input.
func (in NoteInput) NewNote(now time.Time) Note {
	in = in.Normalize(now)
	return Note{Title: in.Title, Date: in.Date, Topics: in.Topics}
}

// NotePatch is a partial update. A nil field means "no change".
type NotePatch struct {
	Title  *string `json:"title,omitempty"`
	Date   *string `json:"date,omitempty"`
	Topics *string `json:"topics,omitempty"`
}

// Validate checks the date when present.
func (p NotePatch) Validate() error {
	if p.Date != nil {
		return validateDate(*p.Date)
	}
	return nil
}

// Apply copies the present fields onto n. A blank title falls back to
// DefaultNoteTitle; a blank date leaves the current date in place.
func (p NotePatch) Apply(n *Note) {
	if p.Title != nil {
		n.Title = strings.TrimSpace(*p.Title)
		if n.Title == "" {
			n.Title = DefaultNoteTitle
		}
	}
	if p.Date != nil && strings.TrimSpace(*p.Date) != "" {
		n.Date = strings.TrimSpace(*p.Date)
	}
	if p.Topics != nil {
		n.Topics = strings.TrimSpace(*p.Topics)
	}
}

func validateDate(date string) error {
	date = strings.TrimSpace(date)
	if date == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return &ValidationError{Field: "date", Message: "date must be formatted as YYYY-MM-DD"}
	}
	return nil
}
