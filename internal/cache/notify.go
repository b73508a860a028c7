package cache

import (
	"log/slog"
)

// Level is the severity of a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is a user-visible message about a read or a write.
type Notification struct {
	Level   Level
	Message string
	Err     error
}

// Notifier is the notification surface. Notify must not block.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// LogNotifier writes notifications through slog. Errors are logged at
// warn level, successes at info.
type LogNotifier struct {
	Logger *slog.Logger
}

func (l LogNotifier) Notify(n Notification) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if n.Level == LevelError {
		logger.Warn(n.Message, "err", n.Err)
		return
	}
	logger.Info(n.Message)
}

type discard struct{}

func (discard) Notify(Notification) {}
