// Package types defines the task and note records, their input payloads,
// the Backend, TaskStore and NoteStore contracts shared by every backend,
// and the standard error types for the taskdesk data layer.
package types
