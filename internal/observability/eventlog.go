package observability

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// EventsFileName is the event log file inside the base path.
const EventsFileName = ".sb_events.jsonl"

// Event levels.
const (
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// Event represents a single recorded study activity.
type Event struct {
	Time    time.Time      `json:"time"`
	Level   string         `json:"level"`
	Type    string         `json:"type"` // e.g. "topic.added", "task.completed"
	Message string         `json:"msg"`
	Data    map[string]any `json:"data,omitempty"`
}

// EventFilter specifies criteria for reading events.
type EventFilter struct {
	Since *time.Time
	Until *time.Time
	Type  string
	Level string
}

// EventLog defines the interface for writing and reading events.
type EventLog interface {
	Write(event Event) error
	LogEvent(eventType string, data map[string]any) error
	Read(filter EventFilter) ([]Event, error)
	Close() error
}

// jsonlEventLog implements EventLog using an append-only JSONL file.
type jsonlEventLog struct {
	path string
	file *os.File
	now  func() time.Time
	mu   sync.Mutex
}

// Option configures a JSONL event log.
type Option func(*jsonlEventLog)

// WithClock sets the clock used to stamp events written through LogEvent.
func WithClock(now func() time.Time) Option {
	return func(l *jsonlEventLog) {
		if now != nil {
			l.now = now
		}
	}
}

// NewJSONLEventLog opens (creating if needed) the JSONL file at path for
// appending.
func NewJSONLEventLog(path string, opts ...Option) (EventLog, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening event log: %w", err)
	}
	l := &jsonlEventLog{
		path: path,
		file: f,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Write appends a JSON-encoded event followed by a newline to the log file.
func (l *jsonlEventLog) Write(event Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshalling event: %w", err)
	}
	data = append(data, '\n')

	if _, err := l.file.Write(data); err != nil {
		return fmt.Errorf("writing event: %w", err)
	}
	return nil
}

// LogEvent writes an INFO event of the given type stamped with the log's
// clock in UTC. It satisfies core.EventLogger.
func (l *jsonlEventLog) LogEvent(eventType string, data map[string]any) error {
	return l.Write(Event{
		Time:    l.now().UTC(),
		Level:   LevelInfo,
		Type:    eventType,
		Message: eventMessage(eventType, data),
		Data:    data,
	})
}

// eventMessage renders a one-line summary for a study event.
func eventMessage(eventType string, data map[string]any) string {
	switch eventType {
	case "topic.added", "topic.updated":
		if title, ok := data["title"].(string); ok {
			return fmt.Sprintf("%s %q", eventType, title)
		}
	case "topic.deleted":
		if id, ok := data["topic_id"].(string); ok {
			return fmt.Sprintf("%s %s", eventType, id)
		}
	case "plan.generated":
		return fmt.Sprintf("%s with %v task(s)", eventType, data["tasks"])
	case "task.completed", "task.reopened":
		if id, ok := data["task_id"].(string); ok {
			return fmt.Sprintf("%s %s", eventType, id)
		}
	}
	return eventType
}

// Read returns the events matching filter in file order. Lines that do not
// decode are skipped.
func (l *jsonlEventLog) Read(filter EventFilter) ([]Event, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening event log for reading: %w", err)
	}
	defer func() { _ = f.Close() }()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue
		}

		if matchesEventFilter(event, filter) {
			events = append(events, event)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning event log: %w", err)
	}

	return events, nil
}

// Close closes the underlying log file.
func (l *jsonlEventLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.file.Close(); err != nil {
		return fmt.Errorf("closing event log: %w", err)
	}
	return nil
}

// matchesEventFilter checks whether an event satisfies all filter criteria.
func matchesEventFilter(event Event, filter EventFilter) bool {
	if filter.Since != nil && event.Time.Before(*filter.Since) {
		return false
	}
	if filter.Until != nil && event.Time.After(*filter.Until) {
		return false
	}
	if filter.Type != "" && event.Type != filter.Type {
		return false
	}
	if filter.Level != "" && event.Level != filter.Level {
		return false
	}
	return true
}
