package observability

import (
	"fmt"
	"time"
)

// Metrics holds study activity derived from the event log.
type Metrics struct {
	TopicsAdded    int            `json:"topics_added"`
	TopicsUpdated  int            `json:"topics_updated"`
	TopicsDeleted  int            `json:"topics_deleted"`
	PlansGenerated int            `json:"plans_generated"`
	TasksCompleted int            `json:"tasks_completed"`
	TasksReopened  int            `json:"tasks_reopened"`
	MinutesStudied int            `json:"minutes_studied"`
	CompletedByDay map[string]int `json:"completed_by_day"`
	EventCount     int            `json:"event_count"`
	OldestEvent    *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent    *time.Time     `json:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

// metricsCalculator implements MetricsCalculator by reading from an EventLog.
type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a new MetricsCalculator that reads from the given EventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate reads all events since the given time and aggregates them.
// MinutesStudied is the net duration of completed tasks: reopening a task
// subtracts its duration again. CompletedByDay is keyed by UTC YYYY-MM-DD.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{CompletedByDay: make(map[string]int)}
	m.EventCount = len(events)

	for i, event := range events {
		if i == 0 {
			t := event.Time
			m.OldestEvent = &t
		}
		t := event.Time
		m.NewestEvent = &t

		switch event.Type {
		case "topic.added":
			m.TopicsAdded++
		case "topic.updated":
			m.TopicsUpdated++
		case "topic.deleted":
			m.TopicsDeleted++
		case "plan.generated":
			m.PlansGenerated++
		case "task.completed":
			m.TasksCompleted++
			m.MinutesStudied += durationOf(event)
			m.CompletedByDay[event.Time.UTC().Format("2006-01-02")]++
		case "task.reopened":
			m.TasksReopened++
			m.MinutesStudied -= durationOf(event)
		}
	}

	if m.MinutesStudied < 0 {
		m.MinutesStudied = 0
	}
	return m, nil
}

// durationOf reads the "duration" field of an event. Values decoded from
// JSON arrive as float64; values written in-process may still be int.
func durationOf(event Event) int {
	switch v := event.Data["duration"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
