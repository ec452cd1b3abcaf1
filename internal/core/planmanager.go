package core

import (
	"fmt"
	"sync"
	"time"

	"github.com/valter-silva-au/study-buddy/pkg/models"
)

// PlanManager owns the current study plan. All mutations go through it so
// that regeneration and completion toggles are applied one at a time.
type PlanManager interface {
	Regenerate() ([]models.Task, error)
	Toggle(taskID string) (*models.Task, error)
	Tasks() ([]models.Task, error)
	Today() ([]models.Task, error)
	Upcoming(limit int) ([]models.Task, error)
	Stats() (models.Stats, error)
	Snapshot() (PlanSnapshot, error)
}

// PlanSnapshot is a consistent read of the plan and its derived views.
type PlanSnapshot struct {
	Today       models.Date
	GeneratedOn models.Date
	Tasks       []models.Task
	TodayTasks  []models.Task
	Upcoming    []models.Task
	Stats       models.Stats
}

// PlanOptions configures a PlanManager.
type PlanOptions struct {
	PreserveCompletion bool
	UpcomingLimit      int
	// Now supplies the current instant; its calendar day is "today".
	// Defaults to time.Now.
	Now func() time.Time
}

type planManager struct {
	mu     sync.Mutex
	topics TopicStore
	plans  PlanStore
	opts   PlanOptions
	events EventLogger
}

// NewPlanManager creates a PlanManager reading topics from topics and
// persisting the plan to plans. events may be nil.
func NewPlanManager(topics TopicStore, plans PlanStore, opts PlanOptions, events EventLogger) PlanManager {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &planManager{
		topics: topics,
		plans:  plans,
		opts:   opts,
		events: events,
	}
}

func (pm *planManager) today() models.Date {
	return models.DateOf(pm.opts.Now())
}

// Regenerate replaces the plan with a freshly generated and sorted one.
// Completion state is reset unless PreserveCompletion is set.
func (pm *planManager) Regenerate() ([]models.Task, error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if err := pm.topics.Load(); err != nil {
		return nil, fmt.Errorf("regenerating plan: %w", err)
	}
	if err := pm.plans.Load(); err != nil {
		return nil, fmt.Errorf("regenerating plan: %w", err)
	}

	topics := pm.topics.List()
	today := pm.today()

	generated, err := GeneratePlan(topics, today)
	if err != nil {
		return nil, fmt.Errorf("regenerating plan: %w", err)
	}
	sorted, err := SortTasks(generated)
	if err != nil {
		return nil, fmt.Errorf("regenerating plan: %w", err)
	}
	if pm.opts.PreserveCompletion {
		sorted = MergeCompletion(pm.plans.Tasks(), sorted)
	}

	pm.plans.Replace(sorted, today)
	if err := pm.plans.Save(); err != nil {
		return nil, fmt.Errorf("regenerating plan: %w", err)
	}

	logEvent(pm.events, EventPlanGenerated, map[string]any{
		"topics": len(topics),
		"tasks":  len(sorted),
		"today":  today.String(),
	})
	return sorted, nil
}

// Toggle flips the completed flag of taskID. An unknown id is a no-op and
// returns a nil task with no error.
func (pm *planManager) Toggle(taskID string) (*models.Task, error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if err := pm.plans.Load(); err != nil {
		return nil, fmt.Errorf("toggling task %s: %w", taskID, err)
	}

	tasks := pm.plans.Tasks()
	toggled := ToggleCompletion(tasks, taskID)

	var changed *models.Task
	for i := range toggled {
		if toggled[i].ID == taskID {
			t := toggled[i]
			changed = &t
			break
		}
	}
	if changed == nil {
		return nil, nil
	}

	pm.plans.Replace(toggled, pm.plans.GeneratedOn())
	if err := pm.plans.Save(); err != nil {
		return nil, fmt.Errorf("toggling task %s: %w", taskID, err)
	}

	eventType := EventTaskReopened
	if changed.Completed {
		eventType = EventTaskCompleted
	}
	logEvent(pm.events, eventType, map[string]any{
		"task_id":  changed.ID,
		"topic":    changed.Topic,
		"subtopic": changed.Subtopic,
		"type":     changed.Type,
		"duration": changed.Duration,
	})
	return changed, nil
}

func (pm *planManager) load() ([]models.Task, error) {
	if err := pm.plans.Load(); err != nil {
		return nil, fmt.Errorf("loading plan: %w", err)
	}
	return pm.plans.Tasks(), nil
}

func (pm *planManager) Tasks() ([]models.Task, error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return pm.load()
}

func (pm *planManager) Today() ([]models.Task, error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	tasks, err := pm.load()
	if err != nil {
		return nil, err
	}
	return TodaysTasks(tasks, pm.today()), nil
}

// Upcoming returns up to limit tasks due after today. A non-positive limit
// uses the configured limit.
func (pm *planManager) Upcoming(limit int) ([]models.Task, error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	tasks, err := pm.load()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = pm.opts.UpcomingLimit
	}
	return UpcomingTasks(tasks, pm.today(), limit), nil
}

func (pm *planManager) Stats() (models.Stats, error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	tasks, err := pm.load()
	if err != nil {
		return models.Stats{}, err
	}
	return ComputeStats(tasks), nil
}

func (pm *planManager) Snapshot() (PlanSnapshot, error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	tasks, err := pm.load()
	if err != nil {
		return PlanSnapshot{}, err
	}
	today := pm.today()
	return PlanSnapshot{
		Today:       today,
		GeneratedOn: pm.plans.GeneratedOn(),
		Tasks:       tasks,
		TodayTasks:  TodaysTasks(tasks, today),
		Upcoming:    UpcomingTasks(tasks, today, pm.opts.UpcomingLimit),
		Stats:       ComputeStats(tasks),
	}, nil
}
