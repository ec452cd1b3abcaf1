package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/valter-silva-au/study-buddy/pkg/models"
)

// ReviewIntervals are the fixed spaced-repetition offsets, in days after
// initial learning, for reviews 1 through 6.
var ReviewIntervals = [...]int{1, 3, 7, 14, 30, 90}

const (
	// testOffsetDays is the delay between initial learning and the active recall test.
	testOffsetDays = 2
	// testDurationMinutes is the fixed length of an active recall test.
	testDurationMinutes = 15
	// topicStaggerDays spaces out the first learning day of consecutive topics.
	topicStaggerDays = 2
)

// GeneratePlan produces the unordered task list for topics, anchored at today.
//
// For every non-blank subtopic it emits one Initial Learning task, one task per
// review interval and one Active Recall Test, in that order. Topics and their
// subtopics are emitted in input order. The input is never modified.
//
// An unknown complexity or priority on any topic fails the whole generation.
func GeneratePlan(topics []models.Topic, today models.Date) ([]models.Task, error) {
	tasksPerSubtopic := 2 + len(ReviewIntervals)
	plan := make([]models.Task, 0, countSubtopics(topics)*tasksPerSubtopic)

	for topicIndex, topic := range topics {
		multiplier, err := topic.Complexity.Multiplier()
		if err != nil {
			return nil, fmt.Errorf("generating plan for topic %q: %w", topic.Title, err)
		}
		if err := topic.Priority.Validate(); err != nil {
			return nil, fmt.Errorf("generating plan for topic %q: %w", topic.Title, err)
		}
		if len(topic.Subtopics) == 0 {
			continue
		}

		// Blanks still count towards the divisor; callers filter them out first.
		hoursPerSubtopic := float64(topic.EstimatedHours) / float64(len(topic.Subtopics)) * multiplier

		for subtopicIndex, subtopic := range topic.Subtopics {
			if strings.TrimSpace(subtopic) == "" {
				continue
			}

			base := models.Task{
				Topic:      topic.Title,
				Subtopic:   subtopic,
				Priority:   topic.Priority,
				Complexity: topic.Complexity,
			}
			key := fmt.Sprintf("%d-%d", topicIndex, subtopicIndex)
			learnDate := today.AddDays(topicIndex*topicStaggerDays + subtopicIndex)

			initial := base
			initial.ID = key + "-initial"
			initial.Type = models.TaskTypeInitialLearning
			initial.Date = learnDate
			initial.Duration = ceilMinutes(hoursPerSubtopic * 60)
			plan = append(plan, initial)

			for i, interval := range ReviewIntervals {
				review := base
				review.ID = fmt.Sprintf("%s-review-%d", key, i)
				review.Type = models.ReviewTaskType(i + 1)
				review.Date = learnDate.AddDays(interval)
				review.Duration = ceilMinutes(hoursPerSubtopic * 30)
				review.ReviewCount = i + 1
				plan = append(plan, review)
			}

			test := base
			test.ID = key + "-test"
			test.Type = models.TaskTypeActiveRecallTest
			test.Date = learnDate.AddDays(testOffsetDays)
			test.Duration = testDurationMinutes
			plan = append(plan, test)
		}
	}

	return plan, nil
}

func ceilMinutes(v float64) int {
	return int(math.Ceil(v))
}

func countSubtopics(topics []models.Topic) int {
	n := 0
	for _, t := range topics {
		n += len(t.Subtopics)
	}
	return n
}
