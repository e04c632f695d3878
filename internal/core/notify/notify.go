// Package notify holds short user-facing messages shown in the console
// status bar.
package notify

import (
	"sync"
	"time"
)

// Level represents the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification represents a single notification event.
type Notification struct {
	Level     Level
	Message   string
	CreatedAt time.Time
}

// Expired reports whether the notification is older than ttl at now.
func (n Notification) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(n.CreatedAt) > ttl
}

// Log keeps the most recent notifications. It is safe for concurrent use.
type Log struct {
	mu    sync.Mutex
	limit int
	items []Notification
}

// NewLog returns a log holding at most limit notifications.
func NewLog(limit int) *Log {
	return &Log{limit: max(limit, 1)}
}

// Add appends n, dropping the oldest entry when full.
func (l *Log) Add(n Notification) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, n)
	if over := len(l.items) - l.limit; over > 0 {
		l.items = append(l.items[:0:0], l.items[over:]...)
	}
}

// Latest returns the newest notification.
func (l *Log) Latest() (Notification, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.items) == 0 {
		return Notification{}, false
	}
	return l.items[len(l.items)-1], true
}

// List returns all notifications, newest first.
func (l *Log) List() []Notification {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Notification, len(l.items))
	for i, n := range l.items {
		out[len(l.items)-1-i] = n
	}
	return out
}
