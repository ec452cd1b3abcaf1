package core

import "github.com/valter-silva-au/study-buddy/pkg/models"

// TopicStore persists the topic collection. It is defined locally in core to
// avoid importing storage; storage.TopicStoreManager satisfies it.
type TopicStore interface {
	Load() error
	Save() error
	List() []models.Topic
	Get(id string) (models.Topic, bool)
	Put(topic models.Topic)
	Delete(id string) bool
}

// PlanStore persists the current plan.
type PlanStore interface {
	Load() error
	Save() error
	Tasks() []models.Task
	GeneratedOn() models.Date
	Replace(tasks []models.Task, generatedOn models.Date)
}
