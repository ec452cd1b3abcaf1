package models

import "fmt"

// Complexity represents how demanding a topic is to learn.
type Complexity string

const (
	ComplexityEasy   Complexity = "easy"
	ComplexityMedium Complexity = "medium"
	ComplexityHard   Complexity = "hard"
)

// Complexities lists every valid Complexity in ascending difficulty.
var Complexities = []Complexity{ComplexityEasy, ComplexityMedium, ComplexityHard}

var complexityMultipliers = map[Complexity]float64{
	ComplexityEasy:   0.5,
	ComplexityMedium: 1,
	ComplexityHard:   2,
}

// ParseComplexity converts s into a Complexity, rejecting unknown values.
func ParseComplexity(s string) (Complexity, error) {
	c := Complexity(s)
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

// Validate returns an error wrapping ErrInvalidComplexity for unknown values.
func (c Complexity) Validate() error {
	if _, ok := complexityMultipliers[c]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidComplexity, string(c))
	}
	return nil
}

// Multiplier returns the study-time multiplier for c.
func (c Complexity) Multiplier() (float64, error) {
	m, ok := complexityMultipliers[c]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidComplexity, string(c))
	}
	return m, nil
}

// UnmarshalText implements encoding.TextUnmarshaler so corrupt files are
// rejected at load time.
func (c *Complexity) UnmarshalText(text []byte) error {
	parsed, err := ParseComplexity(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Priority represents how urgently a topic should be studied.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every valid Priority in ascending weight.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

var priorityWeights = map[Priority]int{
	PriorityLow:    1,
	PriorityMedium: 2,
	PriorityHigh:   3,
}

// ParsePriority converts s into a Priority, rejecting unknown values.
func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

// Validate returns an error wrapping ErrInvalidPriority for unknown values.
func (p Priority) Validate() error {
	if _, ok := priorityWeights[p]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, string(p))
	}
	return nil
}

// Weight returns the ranking weight for p (high=3, medium=2, low=1).
func (p Priority) Weight() (int, error) {
	w, ok := priorityWeights[p]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPriority, string(p))
	}
	return w, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Priority) UnmarshalText(text []byte) error {
	parsed, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Topic is a subject the user intends to study, broken into subtopics.
// Each subtopic receives its own learning, review and test schedule.
type Topic struct {
	ID             string     `yaml:"id" json:"id"`
	Title          string     `yaml:"title" json:"title"`
	Subtopics      []string   `yaml:"subtopics" json:"subtopics"`
	Complexity     Complexity `yaml:"complexity" json:"complexity"`
	Priority       Priority   `yaml:"priority" json:"priority"`
	EstimatedHours int        `yaml:"estimated_hours" json:"estimated_hours"`
	DateAdded      Date       `yaml:"date_added" json:"date_added"`
}
