package core

// EventLogger is the subset of the observability event log that the topic
// and plan managers write to.
type EventLogger interface {
	LogEvent(eventType string, data map[string]any) error
}

// Event types emitted by core services.
const (
	EventTopicAdded    = "topic.added"
	EventTopicUpdated  = "topic.updated"
	EventTopicDeleted  = "topic.deleted"
	EventPlanGenerated = "plan.generated"
	EventTaskCompleted = "task.completed"
	EventTaskReopened  = "task.reopened"
)

// logEvent writes to logger when one is configured. Logging failures never
// fail the calling operation.
func logEvent(logger EventLogger, eventType string, data map[string]any) {
	if logger == nil {
		return
	}
	_ = logger.LogEvent(eventType, data)
}
