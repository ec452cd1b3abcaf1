package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/valter-silva-au/study-buddy/pkg/models"
)

// Topic validation and lookup errors.
var (
	ErrTopicNotFound = errors.New("topic not found")
	ErrEmptyTitle    = errors.New("topic title must not be empty")
	ErrNoSubtopics   = errors.New("topic needs at least one non-blank subtopic")
)

// TopicInput carries user-supplied topic fields. Zero values for
// EstimatedHours, Complexity and Priority fall back to configured defaults.
type TopicInput struct {
	Title          string
	Subtopics      []string
	Complexity     models.Complexity
	Priority       models.Priority
	EstimatedHours int
}

// TopicManager defines the interface for creating, reading, updating and
// deleting topics.
type TopicManager interface {
	AddTopic(input TopicInput) (*models.Topic, error)
	UpdateTopic(id string, input TopicInput) (*models.Topic, error)
	DeleteTopic(id string) error
	GetTopic(id string) (*models.Topic, error)
	ListTopics() ([]models.Topic, error)
}

type topicManager struct {
	store    TopicStore
	idGen    TopicIDGenerator
	defaults models.TopicDefaults
	now      func() time.Time
	events   EventLogger
}

// NewTopicManager creates a TopicManager. events may be nil; now defaults to
// time.Now when nil.
func NewTopicManager(store TopicStore, idGen TopicIDGenerator, defaults models.TopicDefaults, now func() time.Time, events EventLogger) TopicManager {
	if now == nil {
		now = time.Now
	}
	return &topicManager{
		store:    store,
		idGen:    idGen,
		defaults: defaults,
		now:      now,
		events:   events,
	}
}

func (tm *topicManager) AddTopic(input TopicInput) (*models.Topic, error) {
	topic, err := tm.normalize(input)
	if err != nil {
		return nil, fmt.Errorf("adding topic: %w", err)
	}
	if err := tm.store.Load(); err != nil {
		return nil, fmt.Errorf("adding topic: %w", err)
	}

	id, err := tm.idGen.GenerateTopicID()
	if err != nil {
		return nil, fmt.Errorf("adding topic: %w", err)
	}
	topic.ID = id
	topic.DateAdded = models.DateOf(tm.now())

	tm.store.Put(topic)
	if err := tm.store.Save(); err != nil {
		return nil, fmt.Errorf("adding topic: %w", err)
	}

	logEvent(tm.events, EventTopicAdded, map[string]any{
		"topic_id":  topic.ID,
		"title":     topic.Title,
		"subtopics": len(topic.Subtopics),
	})
	return &topic, nil
}

func (tm *topicManager) UpdateTopic(id string, input TopicInput) (*models.Topic, error) {
	topic, err := tm.normalize(input)
	if err != nil {
		return nil, fmt.Errorf("updating topic %s: %w", id, err)
	}
	if err := tm.store.Load(); err != nil {
		return nil, fmt.Errorf("updating topic %s: %w", id, err)
	}

	existing, ok := tm.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("updating topic %s: %w", id, ErrTopicNotFound)
	}
	topic.ID = existing.ID
	topic.DateAdded = existing.DateAdded

	tm.store.Put(topic)
	if err := tm.store.Save(); err != nil {
		return nil, fmt.Errorf("updating topic %s: %w", id, err)
	}

	logEvent(tm.events, EventTopicUpdated, map[string]any{
		"topic_id": topic.ID,
		"title":    topic.Title,
	})
	return &topic, nil
}

func (tm *topicManager) DeleteTopic(id string) error {
	if err := tm.store.Load(); err != nil {
		return fmt.Errorf("deleting topic %s: %w", id, err)
	}
	if !tm.store.Delete(id) {
		return fmt.Errorf("deleting topic %s: %w", id, ErrTopicNotFound)
	}
	if err := tm.store.Save(); err != nil {
		return fmt.Errorf("deleting topic %s: %w", id, err)
	}

	logEvent(tm.events, EventTopicDeleted, map[string]any{"topic_id": id})
	return nil
}

func (tm *topicManager) GetTopic(id string) (*models.Topic, error) {
	if err := tm.store.Load(); err != nil {
		return nil, fmt.Errorf("getting topic %s: %w", id, err)
	}
	topic, ok := tm.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("getting topic %s: %w", id, ErrTopicNotFound)
	}
	return &topic, nil
}

func (tm *topicManager) ListTopics() ([]models.Topic, error) {
	if err := tm.store.Load(); err != nil {
		return nil, fmt.Errorf("listing topics: %w", err)
	}
	return tm.store.List(), nil
}

// normalize trims text fields, drops blank subtopics and applies defaults.
func (tm *topicManager) normalize(input TopicInput) (models.Topic, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return models.Topic{}, ErrEmptyTitle
	}

	subtopics := make([]string, 0, len(input.Subtopics))
	for _, s := range input.Subtopics {
		if s = strings.TrimSpace(s); s != "" {
			subtopics = append(subtopics, s)
		}
	}
	if len(subtopics) == 0 {
		return models.Topic{}, ErrNoSubtopics
	}

	complexity := input.Complexity
	if complexity == "" {
		complexity = tm.defaults.Complexity
	}
	if err := complexity.Validate(); err != nil {
		return models.Topic{}, err
	}

	priority := input.Priority
	if priority == "" {
		priority = tm.defaults.Priority
	}
	if err := priority.Validate(); err != nil {
		return models.Topic{}, err
	}

	hours := input.EstimatedHours
	if hours <= 0 {
		hours = tm.defaults.EstimatedHours
	}

	return models.Topic{
		Title:          title,
		Subtopics:      subtopics,
		Complexity:     complexity,
		Priority:       priority,
		EstimatedHours: hours,
	}, nil
}
