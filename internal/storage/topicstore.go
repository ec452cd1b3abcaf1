package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/valter-silva-au/study-buddy/pkg/models"
	"gopkg.in/yaml.v3"
)

// TopicsFileName is the topic collection file inside the base path.
const TopicsFileName = "topics.yaml"

// TopicsFile represents the top-level structure of topics.yaml.
type TopicsFile struct {
	Version string         `yaml:"version"`
	Topics  []models.Topic `yaml:"topics"`
}

// TopicStoreManager defines the interface for the file-backed topic collection.
// Topics keep their insertion order; Put replaces a topic with the same id in place.
type TopicStoreManager interface {
	Load() error
	Save() error
	List() []models.Topic
	Get(id string) (models.Topic, bool)
	Put(topic models.Topic)
	Delete(id string) bool
	FilePath() string
}

type fileTopicStore struct {
	basePath string
	data     TopicsFile
}

// NewTopicStoreManager creates a TopicStoreManager backed by topics.yaml in
// the given base directory.
func NewTopicStoreManager(basePath string) TopicStoreManager {
	return &fileTopicStore{
		basePath: basePath,
		data:     TopicsFile{Version: "1.0"},
	}
}

func (s *fileTopicStore) FilePath() string {
	return filepath.Join(s.basePath, TopicsFileName)
}

func (s *fileTopicStore) List() []models.Topic {
	out := make([]models.Topic, len(s.data.Topics))
	for i, t := range s.data.Topics {
		out[i] = cloneTopic(t)
	}
	return out
}

func (s *fileTopicStore) Get(id string) (models.Topic, bool) {
	if i := s.indexOf(id); i >= 0 {
		return cloneTopic(s.data.Topics[i]), true
	}
	return models.Topic{}, false
}

func (s *fileTopicStore) Put(topic models.Topic) {
	topic = cloneTopic(topic)
	if i := s.indexOf(topic.ID); i >= 0 {
		s.data.Topics[i] = topic
		return
	}
	s.data.Topics = append(s.data.Topics, topic)
}

func (s *fileTopicStore) Delete(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.data.Topics = append(s.data.Topics[:i:i], s.data.Topics[i+1:]...)
	return true
}

func (s *fileTopicStore) indexOf(id string) int {
	for i, t := range s.data.Topics {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *fileTopicStore) Load() error {
	data, err := os.ReadFile(s.FilePath())
	if err != nil {
		if os.IsNotExist(err) {
			s.data = TopicsFile{Version: "1.0"}
			return nil
		}
		return fmt.Errorf("loading topics: %w", err)
	}

	var tf TopicsFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return fmt.Errorf("loading topics: parsing YAML: %w", err)
	}
	if tf.Version == "" {
		tf.Version = "1.0"
	}
	s.data = tf
	return nil
}

func (s *fileTopicStore) Save() error {
	if err := os.MkdirAll(s.basePath, 0o750); err != nil {
		return fmt.Errorf("saving topics: creating directory: %w", err)
	}
	data, err := yaml.Marshal(&s.data)
	if err != nil {
		return fmt.Errorf("saving topics: marshaling YAML: %w", err)
	}
	if err := writeFileAtomic(s.FilePath(), data); err != nil {
		return fmt.Errorf("saving topics: %w", err)
	}
	return nil
}

func cloneTopic(t models.Topic) models.Topic {
	if t.Subtopics != nil {
		t.Subtopics = append([]string(nil), t.Subtopics...)
	}
	return t
}
