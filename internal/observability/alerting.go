package observability

import (
	"fmt"
	"time"

	"github.com/valter-silva-au/study-buddy/pkg/models"
)

// AlertSeverity represents the urgency of an alert.
type AlertSeverity string

const (
	SeverityHigh   AlertSeverity = "high"
	SeverityMedium AlertSeverity = "medium"
	SeverityLow    AlertSeverity = "low"
)

// Alert conditions.
const (
	ConditionOverdue       = "task_overdue"
	ConditionOverloadedDay = "overloaded_day"
)

// Alert represents a triggered alert condition.
type Alert struct {
	ID          string        `json:"id"`
	Condition   string        `json:"condition"`
	Severity    AlertSeverity `json:"severity"`
	Message     string        `json:"message"`
	TriggeredAt time.Time     `json:"triggered_at"`
}

// AlertThresholds configures when alerts should fire.
type AlertThresholds struct {
	// DailyMinutes is the most incomplete work due today before an
	// overloaded_day alert fires. Zero disables the check.
	DailyMinutes int `yaml:"daily_minutes" json:"daily_minutes"`
}

// DefaultAlertThresholds returns the default alert thresholds.
func DefaultAlertThresholds() AlertThresholds {
	return AlertThresholds{DailyMinutes: 240}
}

// PlanReader provides read access to the current plan.
type PlanReader interface {
	Tasks() ([]models.Task, error)
}

// AlertEngine evaluates alert conditions against the current plan.
type AlertEngine interface {
	Evaluate() ([]Alert, error)
}

// alertEngine implements AlertEngine by reading the plan and checking thresholds.
type alertEngine struct {
	plan       PlanReader
	thresholds AlertThresholds
	now        func() time.Time
}

// NewAlertEngine creates a new AlertEngine over plan. now defaults to time.Now.
func NewAlertEngine(plan PlanReader, thresholds AlertThresholds, now func() time.Time) AlertEngine {
	if now == nil {
		now = time.Now
	}
	return &alertEngine{
		plan:       plan,
		thresholds: thresholds,
		now:        now,
	}
}

// Evaluate returns overdue alerts for every incomplete task due before today,
// in plan order, followed by at most one overloaded_day alert.
func (ae *alertEngine) Evaluate() ([]Alert, error) {
	tasks, err := ae.plan.Tasks()
	if err != nil {
		return nil, fmt.Errorf("reading plan for alerts: %w", err)
	}

	now := ae.now()
	today := models.DateOf(now)

	var alerts []Alert
	alerts = append(alerts, checkOverdue(tasks, today, now)...)
	if a := ae.checkOverloadedDay(tasks, today, now); a != nil {
		alerts = append(alerts, *a)
	}
	return alerts, nil
}

func checkOverdue(tasks []models.Task, today models.Date, now time.Time) []Alert {
	var alerts []Alert
	for _, t := range tasks {
		if t.Completed || !t.Date.Before(today) {
			continue
		}
		days := t.Date.DaysUntil(today)
		alerts = append(alerts, Alert{
			ID:          fmt.Sprintf("overdue-%s", t.ID),
			Condition:   ConditionOverdue,
			Severity:    severityForPriority(t.Priority),
			Message:     fmt.Sprintf("%s: %s - %s was due %s (%d day(s) ago)", t.Type, t.Topic, t.Subtopic, t.Date, days),
			TriggeredAt: now,
		})
	}
	return alerts
}

func (ae *alertEngine) checkOverloadedDay(tasks []models.Task, today models.Date, now time.Time) *Alert {
	if ae.thresholds.DailyMinutes <= 0 {
		return nil
	}
	minutes := 0
	for _, t := range tasks {
		if !t.Completed && t.Date == today {
			minutes += t.Duration
		}
	}
	if minutes <= ae.thresholds.DailyMinutes {
		return nil
	}
	return &Alert{
		ID:          fmt.Sprintf("overloaded-%s", today),
		Condition:   ConditionOverloadedDay,
		Severity:    SeverityMedium,
		Message:     fmt.Sprintf("%d minutes of study due today exceeds the %d minute limit", minutes, ae.thresholds.DailyMinutes),
		TriggeredAt: now,
	}
}

func severityForPriority(p models.Priority) AlertSeverity {
	switch p {
	case models.PriorityHigh:
		return SeverityHigh
	case models.PriorityMedium:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
