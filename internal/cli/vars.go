package cli

import (
	"github.com/valter-silva-au/study-buddy/internal/core"
	"github.com/valter-silva-au/study-buddy/internal/observability"
	"github.com/valter-silva-au/study-buddy/pkg/models"
)

// Service instances, set during app initialization in app.go.
var (
	TopicMgr core.TopicManager
	PlanMgr  core.PlanManager
	Config   *models.GlobalConfig
	BasePath string
)

// Files watched by the dashboard for live reload.
var (
	TopicsFilePath string
	PlanFilePath   string
)

// Observability service instances. They stay nil when the event log
// could not be opened.
var (
	EventLog    observability.EventLog
	AlertEngine observability.AlertEngine
	MetricsCalc observability.MetricsCalculator
)
