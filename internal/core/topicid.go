package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/valter-silva-au/study-buddy/pkg/models"
)

// TopicIDGenerator defines the interface for generating unique topic IDs.
type TopicIDGenerator interface {
	GenerateTopicID() (string, error)
}

// NewTopicIDGenerator returns the generator selected by cfg.Strategy.
func NewTopicIDGenerator(basePath string, cfg models.TopicIDConfig) (TopicIDGenerator, error) {
	switch cfg.Strategy {
	case "", models.TopicIDStrategyCounter:
		prefix := cfg.Prefix
		if prefix == "" {
			prefix = "TOPIC"
		}
		return NewCounterTopicIDGenerator(basePath, prefix, cfg.PadWidth), nil
	case models.TopicIDStrategyUUID:
		return uuidTopicIDGenerator{}, nil
	default:
		return nil, fmt.Errorf("unknown topic id strategy %q", cfg.Strategy)
	}
}

// topicCounterFile holds the last issued counter value inside the base path.
const topicCounterFile = ".topic_counter"

// counterTopicIDGenerator persists a counter in a .topic_counter file on disk.
type counterTopicIDGenerator struct {
	basePath string
	prefix   string
	padWidth int
}

// NewCounterTopicIDGenerator creates a TopicIDGenerator that stores its
// counter in .topic_counter within basePath. padWidth controls the
// zero-padding of the numeric portion; 0 means no padding (e.g. TOPIC-1).
func NewCounterTopicIDGenerator(basePath, prefix string, padWidth int) TopicIDGenerator {
	return &counterTopicIDGenerator{
		basePath: basePath,
		prefix:   prefix,
		padWidth: padWidth,
	}
}

// GenerateTopicID increments the on-disk counter under an exclusive file lock
// and returns the formatted id. A missing counter file starts from 1.
func (g *counterTopicIDGenerator) GenerateTopicID() (string, error) {
	if err := os.MkdirAll(g.basePath, 0o750); err != nil {
		return "", fmt.Errorf("creating base path for topic counter: %w", err)
	}

	var counter int
	err := withFileLock(filepath.Join(g.basePath, topicCounterFile+".lock"), func() error {
		n, err := readCounter(filepath.Join(g.basePath, topicCounterFile))
		if err != nil {
			return err
		}
		counter = n + 1
		if err := os.WriteFile(filepath.Join(g.basePath, topicCounterFile), []byte(strconv.Itoa(counter)), 0o600); err != nil {
			return fmt.Errorf("writing topic counter file: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	if g.padWidth > 0 {
		return fmt.Sprintf("%s-%0*d", g.prefix, g.padWidth, counter), nil
	}
	return fmt.Sprintf("%s-%d", g.prefix, counter), nil
}

// readCounter returns the value stored at path, or 0 when it does not exist.
func readCounter(path string) (int, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading topic counter file: %w", err)
	}
	trimmed := strings.TrimSpace(string(data))
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parsing topic counter %q: %w", trimmed, err)
	}
	return n, nil
}

// uuidTopicIDGenerator returns random version 4 UUIDs.
type uuidTopicIDGenerator struct{}

func (uuidTopicIDGenerator) GenerateTopicID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generating topic uuid: %w", err)
	}
	return id.String(), nil
}
