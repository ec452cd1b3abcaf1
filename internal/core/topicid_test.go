package core

import (
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"

	"github.com/valter-silva-au/study-buddy/pkg/models"
)

func TestGenerateTopicID_FirstID(t *testing.T) {
	dir := t.TempDir()
	gen := NewCounterTopicIDGenerator(dir, "TOPIC", 5)

	id, err := gen.GenerateTopicID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "TOPIC-00001" {
		t.Errorf("expected TOPIC-00001, got %s", id)
	}
}

func TestGenerateTopicID_IncrementsCounter(t *testing.T) {
	dir := t.TempDir()
	gen := NewCounterTopicIDGenerator(dir, "TOPIC", 5)

	for _, want := range []string{"TOPIC-00001", "TOPIC-00002", "TOPIC-00003"} {
		id, err := gen.GenerateTopicID()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != want {
			t.Errorf("expected %s, got %s", want, id)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, ".topic_counter"))
	if err != nil {
		t.Fatalf("failed to read counter file: %v", err)
	}
	if string(data) != "3" {
		t.Errorf("counter file = %q, want 3", string(data))
	}
}

func TestGenerateTopicID_ReadsExistingCounter(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".topic_counter"), []byte("41\n"), 0o600); err != nil {
		t.Fatalf("failed to write counter file: %v", err)
	}

	gen := NewCounterTopicIDGenerator(dir, "SUBJ", 0)
	id, err := gen.GenerateTopicID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "SUBJ-42" {
		t.Errorf("expected SUBJ-42, got %s", id)
	}
}

func TestGenerateTopicID_CorruptCounter(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".topic_counter"), []byte("many"), 0o600); err != nil {
		t.Fatalf("failed to write counter file: %v", err)
	}

	gen := NewCounterTopicIDGenerator(dir, "TOPIC", 5)
	if _, err := gen.GenerateTopicID(); err == nil {
		t.Fatal("expected error for corrupt counter file")
	}
}

func TestGenerateTopicID_ConcurrentCallsAreUnique(t *testing.T) {
	dir := t.TempDir()
	gen := NewCounterTopicIDGenerator(dir, "TOPIC", 5)

	const n = 20
	var (
		mu   sync.Mutex
		seen = make(map[string]bool, n)
		wg   sync.WaitGroup
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := gen.GenerateTopicID()
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if seen[id] {
				t.Errorf("duplicate id %s", id)
			}
			seen[id] = true
		}()
	}
	wg.Wait()

	if len(seen) != n {
		t.Errorf("expected %d unique ids, got %d", n, len(seen))
	}
}

func TestNewTopicIDGenerator_Strategies(t *testing.T) {
	dir := t.TempDir()

	gen, err := NewTopicIDGenerator(dir, models.TopicIDConfig{Strategy: models.TopicIDStrategyCounter, PadWidth: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id, err := gen.GenerateTopicID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "TOPIC-001" {
		t.Errorf("empty prefix should default to TOPIC, got %s", id)
	}

	gen, err = NewTopicIDGenerator(dir, models.TopicIDConfig{Strategy: models.TopicIDStrategyUUID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	uuidPattern := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	first, err := gen.GenerateTopicID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := gen.GenerateTopicID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !uuidPattern.MatchString(first) {
		t.Errorf("expected a v4 uuid, got %s", first)
	}
	if first == second {
		t.Error("expected distinct uuids")
	}

	if _, err := NewTopicIDGenerator(dir, models.TopicIDConfig{Strategy: "snowflake"}); err == nil {
		t.Error("expected error for unknown strategy")
	}
}
