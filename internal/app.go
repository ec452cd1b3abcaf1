// Package internal provides the App struct that wires all components of the
// Study Buddy system together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/valter-silva-au/study-buddy/internal/cli"
	"github.com/valter-silva-au/study-buddy/internal/core"
	"github.com/valter-silva-au/study-buddy/internal/observability"
	"github.com/valter-silva-au/study-buddy/internal/storage"
	"github.com/valter-silva-au/study-buddy/pkg/models"
)

// App holds all service dependencies for the Study Buddy system.
type App struct {
	BasePath string

	// Configuration
	ConfigMgr core.ConfigurationManager
	Config    *models.GlobalConfig

	// Storage layer
	TopicStore storage.TopicStoreManager
	PlanStore  storage.PlanStoreManager

	// Core services
	IDGen         core.TopicIDGenerator
	TopicMgr      core.TopicManager
	PlanMgr       core.PlanManager
	WorkspaceInit core.WorkspaceInitializer

	// Observability
	EventLog    observability.EventLog
	AlertEngine observability.AlertEngine
	MetricsCalc observability.MetricsCalculator
}

// NewApp creates and wires all components of the Study Buddy system.
// basePath is the directory holding .studyconfig, topics.yaml and plan.yaml.
func NewApp(basePath string) (*App, error) {
	return newApp(basePath, time.Now)
}

func newApp(basePath string, now func() time.Time) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath)
	globalCfg, err := app.ConfigMgr.LoadGlobalConfig()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	app.Config = globalCfg

	// --- Storage layer ---
	app.TopicStore = storage.NewTopicStoreManager(basePath)
	app.PlanStore = storage.NewPlanStoreManager(basePath)

	// --- Observability ---
	eventLogPath := filepath.Join(basePath, observability.EventsFileName)
	app.EventLog, err = observability.NewJSONLEventLog(eventLogPath, observability.WithClock(now))
	if err != nil {
		// Non-fatal: disable the event log and metrics if the file can't be opened.
		app.EventLog = nil
	}
	var events core.EventLogger
	if app.EventLog != nil {
		events = app.EventLog
		app.MetricsCalc = observability.NewMetricsCalculator(app.EventLog)
	}

	// --- Core services ---
	app.IDGen, err = core.NewTopicIDGenerator(basePath, globalCfg.TopicID)
	if err != nil {
		app.closeEventLog()
		return nil, fmt.Errorf("creating topic id generator: %w", err)
	}
	app.TopicMgr = core.NewTopicManager(app.TopicStore, app.IDGen, globalCfg.Defaults, now, events)
	app.PlanMgr = core.NewPlanManager(app.TopicStore, app.PlanStore, core.PlanOptions{
		PreserveCompletion: globalCfg.Plan.PreserveCompletion,
		UpcomingLimit:      globalCfg.Plan.UpcomingLimit,
		Now:                now,
	}, events)
	app.WorkspaceInit = core.NewWorkspaceInitializer()

	thresholds := observability.DefaultAlertThresholds()
	thresholds.DailyMinutes = globalCfg.Alerts.DailyMinutes
	app.AlertEngine = observability.NewAlertEngine(app.PlanMgr, thresholds, now)

	// --- Wire CLI package-level variables ---
	cli.BasePath = basePath
	cli.Config = globalCfg
	cli.TopicMgr = app.TopicMgr
	cli.PlanMgr = app.PlanMgr
	cli.WorkspaceInit = app.WorkspaceInit
	cli.TopicsFilePath = app.TopicStore.FilePath()
	cli.PlanFilePath = app.PlanStore.FilePath()

	cli.EventLog = app.EventLog
	cli.AlertEngine = app.AlertEngine
	cli.MetricsCalc = app.MetricsCalc

	return app, nil
}

// Close releases resources held by the App, such as the event log file handle.
// It is safe to call Close on an App whose EventLog is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

func (a *App) closeEventLog() {
	if a.EventLog != nil {
		_ = a.EventLog.Close()
	}
}

// ResolveBasePath determines the Study Buddy data directory. It checks the
// STUDYBUDDY_HOME env var, then the nearest ancestor of the working directory
// containing .studyconfig, then falls back to the working directory.
func ResolveBasePath() string {
	if home := os.Getenv("STUDYBUDDY_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	cwd := dir
	for {
		if _, err := os.Stat(filepath.Join(dir, core.ConfigFileName)); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return cwd
}
