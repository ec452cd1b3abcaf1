package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/valter-silva-au/study-buddy/pkg/models"
	"gopkg.in/yaml.v3"
)

// PlanFileName is the current plan file inside the base path.
const PlanFileName = "plan.yaml"

// PlanFile represents the top-level structure of plan.yaml.
type PlanFile struct {
	Version     string        `yaml:"version"`
	GeneratedOn models.Date   `yaml:"generated_on,omitempty"`
	Tasks       []models.Task `yaml:"tasks"`
}

// PlanStoreManager defines the interface for the file-backed study plan.
type PlanStoreManager interface {
	Load() error
	Save() error
	Tasks() []models.Task
	GeneratedOn() models.Date
	Replace(tasks []models.Task, generatedOn models.Date)
	FilePath() string
}

type filePlanStore struct {
	basePath string
	data     PlanFile
}

// NewPlanStoreManager creates a PlanStoreManager backed by plan.yaml in the
// given base directory.
func NewPlanStoreManager(basePath string) PlanStoreManager {
	return &filePlanStore{
		basePath: basePath,
		data:     PlanFile{Version: "1.0"},
	}
}

func (s *filePlanStore) FilePath() string {
	return filepath.Join(s.basePath, PlanFileName)
}

func (s *filePlanStore) Tasks() []models.Task {
	out := make([]models.Task, len(s.data.Tasks))
	copy(out, s.data.Tasks)
	return out
}

func (s *filePlanStore) GeneratedOn() models.Date {
	return s.data.GeneratedOn
}

func (s *filePlanStore) Replace(tasks []models.Task, generatedOn models.Date) {
	s.data.Tasks = make([]models.Task, len(tasks))
	copy(s.data.Tasks, tasks)
	s.data.GeneratedOn = generatedOn
}

func (s *filePlanStore) Load() error {
	data, err := os.ReadFile(s.FilePath())
	if err != nil {
		if os.IsNotExist(err) {
			s.data = PlanFile{Version: "1.0"}
			return nil
		}
		return fmt.Errorf("loading plan: %w", err)
	}

	var pf PlanFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return fmt.Errorf("loading plan: parsing YAML: %w", err)
	}
	for _, task := range pf.Tasks {
		if task.Date.IsZero() {
			return fmt.Errorf("loading plan: task %q: %w: missing date", task.ID, models.ErrInvalidDate)
		}
	}
	if pf.Version == "" {
		pf.Version = "1.0"
	}
	s.data = pf
	return nil
}

func (s *filePlanStore) Save() error {
	if err := os.MkdirAll(s.basePath, 0o750); err != nil {
		return fmt.Errorf("saving plan: creating directory: %w", err)
	}
	data, err := yaml.Marshal(&s.data)
	if err != nil {
		return fmt.Errorf("saving plan: marshaling YAML: %w", err)
	}
	if err := writeFileAtomic(s.FilePath(), data); err != nil {
		return fmt.Errorf("saving plan: %w", err)
	}
	return nil
}

// writeFileAtomic writes data to a temp file in the same directory and
// renames it over path, so watchers never observe a half-written file.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
