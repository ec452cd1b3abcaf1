package cli

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/valter-silva-au/study-buddy/internal/core"
	"github.com/valter-silva-au/study-buddy/internal/observability"
	"github.com/valter-silva-au/study-buddy/internal/storage"
	"github.com/valter-silva-au/study-buddy/pkg/models"
)

var testToday = models.NewDate(2024, time.January, 1)

func testClock() time.Time { return testToday.Time().Add(9 * time.Hour) }

// setupServices wires real managers over a temp directory into the package
// variables and restores the previous values when the test ends.
func setupServices(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	prevTopic, prevPlan, prevCfg, prevBase := TopicMgr, PlanMgr, Config, BasePath
	prevTopicsPath, prevPlanPath := TopicsFilePath, PlanFilePath
	prevLog, prevAlerts, prevMetrics, prevInit := EventLog, AlertEngine, MetricsCalc, WorkspaceInit
	t.Cleanup(func() {
		TopicMgr, PlanMgr, Config, BasePath = prevTopic, prevPlan, prevCfg, prevBase
		TopicsFilePath, PlanFilePath = prevTopicsPath, prevPlanPath
		EventLog, AlertEngine, MetricsCalc, WorkspaceInit = prevLog, prevAlerts, prevMetrics, prevInit
	})

	cfg := core.DefaultGlobalConfig()
	topics := storage.NewTopicStoreManager(dir)
	plan := storage.NewPlanStoreManager(dir)

	log, err := observability.NewJSONLEventLog(filepath.Join(dir, observability.EventsFileName), observability.WithClock(testClock))
	if err != nil {
		t.Fatalf("opening event log: %v", err)
	}
	t.Cleanup(func() { _ = log.Close() })

	idGen, err := core.NewTopicIDGenerator(dir, cfg.TopicID)
	if err != nil {
		t.Fatalf("creating id generator: %v", err)
	}

	TopicMgr = core.NewTopicManager(topics, idGen, cfg.Defaults, testClock, log)
	PlanMgr = core.NewPlanManager(topics, plan, core.PlanOptions{
		UpcomingLimit: cfg.Plan.UpcomingLimit,
		Now:           testClock,
	}, log)
	Config = cfg
	BasePath = dir
	TopicsFilePath = topics.FilePath()
	PlanFilePath = plan.FilePath()
	EventLog = log
	MetricsCalc = observability.NewMetricsCalculator(log)
	AlertEngine = observability.NewAlertEngine(PlanMgr, observability.AlertThresholds{DailyMinutes: cfg.Alerts.DailyMinutes}, testClock)
	WorkspaceInit = core.NewWorkspaceInitializer()
	return dir
}

// runCLI executes the root command with args and returns what it printed.
// Flag values are reset first since commands are package-level singletons.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRunCLI(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("sb %v: %v\n%s", args, err, out)
	}
	return out
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// addAlgebra adds a one-subtopic high-priority topic that yields an
// eight-task plan starting today.
func addAlgebra(t *testing.T) {
	t.Helper()
	mustRunCLI(t, "topic", "add", "Algebra", "--subtopics", "Linear Equations", "--priority", "high", "--hours", "2")
}
