package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/valter-silva-au/study-buddy/pkg/models"
)

// inMemoryTopics is a TopicStore that keeps topics in insertion order.
type inMemoryTopics struct {
	topics  []models.Topic
	saves   int
	loadErr error
	saveErr error
}

func (s *inMemoryTopics) Load() error { return s.loadErr }

func (s *inMemoryTopics) Save() error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	return nil
}

func (s *inMemoryTopics) List() []models.Topic {
	out := make([]models.Topic, len(s.topics))
	copy(out, s.topics)
	return out
}

func (s *inMemoryTopics) Get(id string) (models.Topic, bool) {
	for _, t := range s.topics {
		if t.ID == id {
			return t, true
		}
	}
	return models.Topic{}, false
}

func (s *inMemoryTopics) Put(topic models.Topic) {
	for i, t := range s.topics {
		if t.ID == topic.ID {
			s.topics[i] = topic
			return
		}
	}
	s.topics = append(s.topics, topic)
}

func (s *inMemoryTopics) Delete(id string) bool {
	for i, t := range s.topics {
		if t.ID == id {
			s.topics = append(s.topics[:i], s.topics[i+1:]...)
			return true
		}
	}
	return false
}

// inMemoryPlan is a PlanStore holding a single plan.
type inMemoryPlan struct {
	tasks       []models.Task
	generatedOn models.Date
	saves       int
	saveErr     error
}

func (s *inMemoryPlan) Load() error { return nil }

func (s *inMemoryPlan) Save() error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	return nil
}

func (s *inMemoryPlan) Tasks() []models.Task {
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *inMemoryPlan) GeneratedOn() models.Date { return s.generatedOn }

func (s *inMemoryPlan) Replace(tasks []models.Task, generatedOn models.Date) {
	s.tasks = tasks
	s.generatedOn = generatedOn
}

// sequentialIDs hands out TOPIC-1, TOPIC-2, ...
type sequentialIDs struct {
	n   int
	err error
}

func (g *sequentialIDs) GenerateTopicID() (string, error) {
	if g.err != nil {
		return "", g.err
	}
	g.n++
	return fmt.Sprintf("TOPIC-%d", g.n), nil
}

type recordedEvent struct {
	eventType string
	data      map[string]any
}

// recordingLogger captures logged events.
type recordingLogger struct {
	events []recordedEvent
	err    error
}

func (l *recordingLogger) LogEvent(eventType string, data map[string]any) error {
	l.events = append(l.events, recordedEvent{eventType: eventType, data: data})
	return l.err
}

func (l *recordingLogger) types() []string {
	out := make([]string, len(l.events))
	for i, e := range l.events {
		out[i] = e.eventType
	}
	return out
}

var errDiskFull = errors.New("disk full")

// fixedClock returns a clock stuck at noon on d in UTC.
func fixedClock(d models.Date) func() time.Time {
	return func() time.Time {
		return d.Time().Add(12 * time.Hour)
	}
}
