// Package eventlog holds the rolling, in-memory record of signing outcomes
// shown to the user.
package eventlog

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quantumauth-io/typed-data-signer/internal/constants"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Capacity is the maximum number of entries kept; the oldest go first.
const Capacity = constants.LogCapacity

type Entry struct {
	ID      string    `json:"id"`
	Time    time.Time `json:"time"`
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	Detail  any       `json:"detail,omitempty"`
}

// Clock is swapped in tests.
var Clock = time.Now

func NewEntry(level Level, message string, detail any) Entry {
	return Entry{
		ID:      uuid.NewString(),
		Time:    Clock().UTC(),
		Level:   level,
		Message: message,
		Detail:  detail,
	}
}

// Append returns a new sequence with e at the end. The input is never modified.
func Append(entries []Entry, e Entry) []Entry {
	start := 0
	if len(entries) >= Capacity {
		start = len(entries) - Capacity + 1
	}
	out := make([]Entry, 0, len(entries)-start+1)
	out = append(out, entries[start:]...)
	return append(out, e)
}

// Log is the shared container the HTTP surface and CLI append to.
type Log struct {
	mu      sync.RWMutex
	entries []Entry
}

func New() *Log {
	return &Log{}
}

func (l *Log) Add(e Entry) {
	l.mu.Lock()
	l.entries = Append(l.entries, e)
	l.mu.Unlock()
}

func (l *Log) Info(message string, detail any) {
	l.Add(NewEntry(LevelInfo, message, detail))
}

func (l *Log) Success(message string, detail any) {
	l.Add(NewEntry(LevelSuccess, message, detail))
}

func (l *Log) Error(message string, detail any) {
	l.Add(NewEntry(LevelError, message, detail))
}

// Entries returns a copy in insertion order.
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
