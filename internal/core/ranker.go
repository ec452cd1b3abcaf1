package core

import (
	"fmt"
	"sort"

	"github.com/valter-silva-au/study-buddy/pkg/models"
)

// DefaultUpcomingLimit is the number of tasks UpcomingTasks returns when no
// positive limit is given.
const DefaultUpcomingLimit = 5

// SortTasks returns a copy of tasks ordered by priority weight descending,
// then due date ascending. Ties keep their input order.
func SortTasks(tasks []models.Task) ([]models.Task, error) {
	weights := make(map[models.Priority]int, len(models.Priorities))
	for _, t := range tasks {
		if _, seen := weights[t.Priority]; seen {
			continue
		}
		w, err := t.Priority.Weight()
		if err != nil {
			return nil, fmt.Errorf("sorting task %s: %w", t.ID, err)
		}
		weights[t.Priority] = w
	}

	sorted := make([]models.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		wi, wj := weights[sorted[i].Priority], weights[sorted[j].Priority]
		if wi != wj {
			return wi > wj
		}
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted, nil
}

// TodaysTasks returns the tasks due exactly on today, in list order.
func TodaysTasks(tasks []models.Task, today models.Date) []models.Task {
	var result []models.Task
	for _, t := range tasks {
		if t.Date == today {
			result = append(result, t)
		}
	}
	return result
}

// UpcomingTasks returns the first limit tasks due after today, in list order.
// A non-positive limit means DefaultUpcomingLimit.
func UpcomingTasks(tasks []models.Task, today models.Date, limit int) []models.Task {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	var result []models.Task
	for _, t := range tasks {
		if len(result) == limit {
			break
		}
		if t.Date.After(today) {
			result = append(result, t)
		}
	}
	return result
}

// ComputeStats counts completed tasks. Percentage is rounded half up and is 0
// for an empty plan.
func ComputeStats(tasks []models.Task) models.Stats {
	s := models.Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
	}
	if s.Total > 0 {
		s.Percentage = (200*s.Completed + s.Total) / (2 * s.Total)
	}
	return s
}

// ToggleCompletion returns a copy of tasks with the completed flag of the task
// matching taskID inverted. An unknown id returns an unchanged copy.
func ToggleCompletion(tasks []models.Task, taskID string) []models.Task {
	result := make([]models.Task, len(tasks))
	copy(result, tasks)
	for i := range result {
		if result[i].ID == taskID {
			result[i].Completed = !result[i].Completed
			break
		}
	}
	return result
}

// MergeCompletion copies the completed flag from previous into a copy of
// regenerated for every task whose id, topic, subtopic and type are unchanged.
func MergeCompletion(previous, regenerated []models.Task) []models.Task {
	done := make(map[string]models.Task, len(previous))
	for _, t := range previous {
		if t.Completed {
			done[t.ID] = t
		}
	}

	result := make([]models.Task, len(regenerated))
	copy(result, regenerated)
	for i, t := range result {
		old, ok := done[t.ID]
		if !ok {
			continue
		}
		if old.Topic == t.Topic && old.Subtopic == t.Subtopic && old.Type == t.Type {
			result[i].Completed = true
		}
	}
	return result
}
