package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/valter-silva-au/study-buddy/internal/core"
	"github.com/valter-silva-au/study-buddy/pkg/models"
)

func TestTopicAdd(t *testing.T) {
	setupServices(t)

	out := mustRunCLI(t, "topic", "add", "Biology",
		"--subtopics", "Cells, ,Genetics",
		"--complexity", "hard", "--priority", "low", "--hours", "6")

	if !strings.HasPrefix(out, "Added topic TOPIC-00001\n") {
		t.Errorf("unexpected output:\n%s", out)
	}
	for _, want := range []string{"Title:      Biology", "Subtopics:  Cells, Genetics", "Complexity: hard", "Priority:   low", "Hours:      6", "Added:      2024-01-01"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	topic, err := TopicMgr.GetTopic("TOPIC-00001")
	if err != nil {
		t.Fatalf("GetTopic: %v", err)
	}
	if topic.Complexity != models.ComplexityHard || len(topic.Subtopics) != 2 {
		t.Errorf("stored topic = %+v", topic)
	}
}

func TestTopicAdd_Defaults(t *testing.T) {
	setupServices(t)

	mustRunCLI(t, "topic", "add", "History", "--subtopics", "Rome")
	topic, err := TopicMgr.GetTopic("TOPIC-00001")
	if err != nil {
		t.Fatalf("GetTopic: %v", err)
	}
	if topic.Complexity != models.ComplexityMedium || topic.Priority != models.PriorityMedium || topic.EstimatedHours != 2 {
		t.Errorf("defaults not applied: %+v", topic)
	}
}

func TestTopicAdd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantMsg string
	}{
		{"missing subtopics", []string{"topic", "add", "Algebra"}, nil, "subtopics"},
		{"bad complexity", []string{"topic", "add", "Algebra", "--subtopics", "a", "--complexity", "brutal"}, models.ErrInvalidComplexity, "--complexity"},
		{"bad priority", []string{"topic", "add", "Algebra", "--subtopics", "a", "--priority", "asap"}, models.ErrInvalidPriority, "--priority"},
		{"blank title", []string{"topic", "add", "  ", "--subtopics", "a"}, core.ErrEmptyTitle, ""},
		{"no title", []string{"topic", "add", "--subtopics", "a"}, nil, "arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupServices(t)
			_, err := runCLI(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should mention %q", err, tt.wantMsg)
			}
			topics, _ := TopicMgr.ListTopics()
			if len(topics) != 0 {
				t.Errorf("nothing should be stored, got %d topic(s)", len(topics))
			}
		})
	}
}

func TestTopicEdit_OnlyChangesGivenFlags(t *testing.T) {
	setupServices(t)
	mustRunCLI(t, "topic", "add", "Biology", "--subtopics", "Cells", "--priority", "high", "--hours", "4")

	out := mustRunCLI(t, "topic", "edit", "TOPIC-00001", "--title", "Cell Biology", "--complexity", "easy")
	if !strings.HasPrefix(out, "Updated topic TOPIC-00001\n") {
		t.Errorf("unexpected output:\n%s", out)
	}

	topic, err := TopicMgr.GetTopic("TOPIC-00001")
	if err != nil {
		t.Fatalf("GetTopic: %v", err)
	}
	want := models.Topic{
		ID:             "TOPIC-00001",
		Title:          "Cell Biology",
		Subtopics:      []string{"Cells"},
		Complexity:     models.ComplexityEasy,
		Priority:       models.PriorityHigh,
		EstimatedHours: 4,
		DateAdded:      testToday,
	}
	if topic.Title != want.Title || topic.Complexity != want.Complexity || topic.Priority != want.Priority ||
		topic.EstimatedHours != want.EstimatedHours || topic.DateAdded != want.DateAdded || strings.Join(topic.Subtopics, ",") != "Cells" {
		t.Errorf("edited topic = %+v, want %+v", topic, want)
	}
}

func TestTopicEdit_NotFound(t *testing.T) {
	setupServices(t)
	_, err := runCLI(t, "topic", "edit", "TOPIC-00042", "--title", "x")
	if !errors.Is(err, core.ErrTopicNotFound) {
		t.Fatalf("expected ErrTopicNotFound, got %v", err)
	}
}

func TestTopicRmAndList(t *testing.T) {
	setupServices(t)

	out := mustRunCLI(t, "topic", "list")
	if !strings.Contains(out, "No topics yet") {
		t.Errorf("expected empty list message, got:\n%s", out)
	}

	mustRunCLI(t, "topic", "add", "Algebra", "--subtopics", "Linear Equations,Quadratics")
	mustRunCLI(t, "topic", "add", "History", "--subtopics", "Rome")

	out = mustRunCLI(t, "topic", "ls")
	if !strings.Contains(out, "TOPIC-00001") || !strings.Contains(out, "Algebra (Linear Equations, Quadratics)") {
		t.Errorf("list output missing Algebra:\n%s", out)
	}
	if strings.Index(out, "Algebra") > strings.Index(out, "History") {
		t.Errorf("topics should be listed in insertion order:\n%s", out)
	}

	out = mustRunCLI(t, "topic", "rm", "TOPIC-00001")
	if out != "Removed topic TOPIC-00001\n" {
		t.Errorf("rm output = %q", out)
	}
	if _, err := runCLI(t, "topic", "delete", "TOPIC-00001"); !errors.Is(err, core.ErrTopicNotFound) {
		t.Errorf("second delete: expected ErrTopicNotFound, got %v", err)
	}

	out = mustRunCLI(t, "topic", "list")
	if strings.Contains(out, "Algebra") || !strings.Contains(out, "History") {
		t.Errorf("unexpected list after rm:\n%s", out)
	}
}
