package models

import "fmt"

// Task type labels.
const (
	TaskTypeInitialLearning  = "Initial Learning"
	TaskTypeActiveRecallTest = "Active Recall Test"
)

// ReviewTaskType returns the label for the k-th review (1-based), e.g. "Review 3".
func ReviewTaskType(k int) string {
	return fmt.Sprintf("Review %d", k)
}

// Task is one scheduled unit of work (learning, review or test) tied to a
// specific subtopic and due date.
type Task struct {
	ID          string     `yaml:"id" json:"id"`
	Topic       string     `yaml:"topic" json:"topic"`
	Subtopic    string     `yaml:"subtopic" json:"subtopic"`
	Type        string     `yaml:"type" json:"type"`
	Date        Date       `yaml:"date" json:"date"`
	Duration    int        `yaml:"duration" json:"duration"` // minutes
	Completed   bool       `yaml:"completed" json:"completed"`
	Priority    Priority   `yaml:"priority" json:"priority"`
	Complexity  Complexity `yaml:"complexity" json:"complexity"`
	ReviewCount int        `yaml:"review_count" json:"review_count"`
}

// IsReview reports whether t is one of the spaced reviews.
func (t Task) IsReview() bool {
	return t.ReviewCount > 0
}

// Stats aggregates completion progress over a plan.
type Stats struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}
