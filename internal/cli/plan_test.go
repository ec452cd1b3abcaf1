package cli

import (
	"strings"
	"testing"
)

func TestPlanGenerate(t *testing.T) {
	setupServices(t)

	out := mustRunCLI(t, "plan", "generate")
	if out != "Generated 0 task(s); 0% complete (0/0).\n" {
		t.Errorf("empty plan output = %q", out)
	}

	addAlgebra(t)
	out = mustRunCLI(t, "plan", "generate")
	if out != "Generated 8 task(s); 0% complete (0/8).\n" {
		t.Errorf("generate output = %q", out)
	}
}

func TestPlanShow(t *testing.T) {
	setupServices(t)

	out := mustRunCLI(t, "plan", "show")
	if !strings.Contains(out, "No plan yet") {
		t.Errorf("expected no-plan message, got:\n%s", out)
	}

	addAlgebra(t)
	mustRunCLI(t, "plan", "generate")
	mustRunCLI(t, "done", "0-0-initial")

	out = mustRunCLI(t, "plan", "show")
	if strings.Contains(out, "0-0-initial") {
		t.Errorf("completed task should be hidden without --all:\n%s", out)
	}
	if !strings.Contains(out, "0-0-review-0") {
		t.Errorf("open task missing:\n%s", out)
	}

	out = mustRunCLI(t, "plan", "show", "--all")
	if !strings.Contains(out, "[x] 2024-01-01 0-0-initial") {
		t.Errorf("completed task should be listed with --all:\n%s", out)
	}
	// Tasks of equal priority are ordered by date.
	if strings.Index(out, "0-0-test") > strings.Index(out, "0-0-review-1") {
		t.Errorf("test on day 2 should precede review 2 on day 3:\n%s", out)
	}
}

func TestToday(t *testing.T) {
	setupServices(t)
	addAlgebra(t)
	mustRunCLI(t, "plan", "generate")

	out := mustRunCLI(t, "today")
	for _, want := range []string{
		"Today (2024-01-01)",
		"[ ] 2024-01-01 0-0-initial",
		"Initial Learning: Algebra - Linear Equations",
		"120 minute(s) remaining",
		"Upcoming",
		"0-0-review-0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("today output missing %q:\n%s", want, out)
		}
	}

	mustRunCLI(t, "done", "0-0-initial")
	out = mustRunCLI(t, "today")
	if !strings.Contains(out, "0 minute(s) remaining") {
		t.Errorf("completed work should not count as remaining:\n%s", out)
	}
}

func TestToday_NothingScheduled(t *testing.T) {
	setupServices(t)
	out := mustRunCLI(t, "today")
	if !strings.Contains(out, "Nothing scheduled for today.") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if strings.Contains(out, "Upcoming") {
		t.Errorf("empty plan should not print an Upcoming section:\n%s", out)
	}
}

func TestUpcoming(t *testing.T) {
	setupServices(t)
	addAlgebra(t)
	mustRunCLI(t, "plan", "generate")

	out := mustRunCLI(t, "upcoming")
	if got := strings.Count(out, "0-0-"); got != 5 {
		t.Errorf("default limit should show 5 tasks, got %d:\n%s", got, out)
	}
	if strings.Contains(out, "0-0-initial") {
		t.Errorf("today's task must not be upcoming:\n%s", out)
	}

	out = mustRunCLI(t, "upcoming", "-n", "2")
	if got := strings.Count(out, "0-0-"); got != 2 {
		t.Errorf("-n 2 should show 2 tasks, got %d:\n%s", got, out)
	}

	if _, err := runCLI(t, "upcoming", "--limit", "-1"); err == nil {
		t.Error("negative limit should be rejected")
	}
}

func TestUpcoming_Empty(t *testing.T) {
	setupServices(t)
	out := mustRunCLI(t, "upcoming")
	if out != "No upcoming tasks.\n" {
		t.Errorf("output = %q", out)
	}
}

func TestStats(t *testing.T) {
	setupServices(t)
	addAlgebra(t)
	mustRunCLI(t, "plan", "generate")

	out := mustRunCLI(t, "stats")
	if out != "[--------------------] 0% (0/8 tasks)\n" {
		t.Errorf("stats output = %q", out)
	}

	mustRunCLI(t, "done", "0-0-review-0")
	out = mustRunCLI(t, "stats")
	if out != "[##------------------] 13% (1/8 tasks)\n" {
		t.Errorf("stats output = %q", out)
	}
}

func TestDone_Toggles(t *testing.T) {
	setupServices(t)
	addAlgebra(t)
	mustRunCLI(t, "plan", "generate")

	out := mustRunCLI(t, "done", "0-0-test")
	if out != "Marked 0-0-test as completed: Active Recall Test: Algebra - Linear Equations\n" {
		t.Errorf("first toggle output = %q", out)
	}
	out = mustRunCLI(t, "done", "0-0-test")
	if out != "Marked 0-0-test as not completed: Active Recall Test: Algebra - Linear Equations\n" {
		t.Errorf("second toggle output = %q", out)
	}
}

func TestDone_UnknownID(t *testing.T) {
	setupServices(t)
	addAlgebra(t)
	mustRunCLI(t, "plan", "generate")

	out := mustRunCLI(t, "done", "9-9-initial")
	if out != "No task with id 9-9-initial; nothing changed.\n" {
		t.Errorf("output = %q", out)
	}
	stats, err := PlanMgr.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Completed != 0 {
		t.Errorf("unknown id must not change the plan, got %d completed", stats.Completed)
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		pct  int
		want string
	}{
		{0, "[----------]"},
		{13, "[#---------]"},
		{50, "[#####-----]"},
		{100, "[##########]"},
		{150, "[##########]"},
		{-5, "[----------]"},
	}
	for _, tt := range tests {
		if got := progressBar(tt.pct, 10); got != tt.want {
			t.Errorf("progressBar(%d) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}
