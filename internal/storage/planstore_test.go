package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valter-silva-au/study-buddy/pkg/models"
)

func samplePlan() []models.Task {
	d := models.NewDate(2024, time.January, 1)
	return []models.Task{
		{ID: "0-0-initial", Topic: "Algebra", Subtopic: "Linear Equations", Type: models.TaskTypeInitialLearning, Date: d, Duration: 120, Priority: models.PriorityHigh, Complexity: models.ComplexityMedium},
		{ID: "0-0-review-0", Topic: "Algebra", Subtopic: "Linear Equations", Type: models.ReviewTaskType(1), Date: d.AddDays(1), Duration: 60, Priority: models.PriorityHigh, Complexity: models.ComplexityMedium, ReviewCount: 1, Completed: true},
		{ID: "0-0-test", Topic: "Algebra", Subtopic: "Linear Equations", Type: models.TaskTypeActiveRecallTest, Date: d.AddDays(2), Duration: 15, Priority: models.PriorityHigh, Complexity: models.ComplexityMedium},
	}
}

func TestPlanStore_LoadMissingFile(t *testing.T) {
	store := NewPlanStoreManager(t.TempDir())
	require.NoError(t, store.Load())
	assert.Empty(t, store.Tasks())
	assert.True(t, store.GeneratedOn().IsZero())
}

func TestPlanStore_SaveAndReload(t *testing.T) {
	dir := t.TempDir()
	store := NewPlanStoreManager(dir)
	generatedOn := models.NewDate(2024, time.January, 1)

	store.Replace(samplePlan(), generatedOn)
	require.NoError(t, store.Save())

	raw, err := os.ReadFile(filepath.Join(dir, PlanFileName))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "generated_on: \"2024-01-01\"")
	assert.Contains(t, string(raw), "date: \"2024-01-02\"")

	reloaded := NewPlanStoreManager(dir)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, samplePlan(), reloaded.Tasks())
	assert.Equal(t, generatedOn, reloaded.GeneratedOn())
}

func TestPlanStore_ReplaceCopiesInput(t *testing.T) {
	store := NewPlanStoreManager(t.TempDir())
	tasks := samplePlan()
	store.Replace(tasks, models.NewDate(2024, time.January, 1))

	tasks[0].Completed = true
	assert.False(t, store.Tasks()[0].Completed)

	out := store.Tasks()
	out[1].Completed = false
	assert.True(t, store.Tasks()[1].Completed)
}

func TestPlanStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewPlanStoreManager(dir)
	store.Replace(samplePlan(), models.NewDate(2024, time.January, 1))
	require.NoError(t, store.Save())
	require.NoError(t, store.Save())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.Contains(e.Name(), ".tmp-"), "leftover temp file %s", e.Name())
	}
}

func TestPlanStore_RejectsBadDate(t *testing.T) {
	dir := t.TempDir()
	content := `version: "1.0"
tasks:
  - id: 0-0-initial
    topic: Algebra
    subtopic: Linear Equations
    type: Initial Learning
    date: "2024-13-45"
    duration: 120
    completed: false
    priority: high
    complexity: medium
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, PlanFileName), []byte(content), 0o600))

	err := NewPlanStoreManager(dir).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidDate)
}

func TestPlanStore_RejectsMissingTaskDate(t *testing.T) {
	tests := []struct {
		name string
		date string
	}{
		{"absent", ""},
		{"blank", "    date: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			content := "version: \"1.0\"\ntasks:\n  - id: 0-0-initial\n    topic: Algebra\n    type: Initial Learning\n" +
				tt.date + "    duration: 120\n    priority: high\n    complexity: medium\n"
			require.NoError(t, os.WriteFile(filepath.Join(dir, PlanFileName), []byte(content), 0o600))

			store := NewPlanStoreManager(dir)
			err := store.Load()
			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrInvalidDate)
			assert.Contains(t, err.Error(), "0-0-initial")
			assert.Empty(t, store.Tasks())
		})
	}
}
