package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/valter-silva-au/study-buddy/pkg/models"
	"gopkg.in/yaml.v3"
)

// InitConfig holds the parameters for initializing a study workspace.
type InitConfig struct {
	BasePath   string
	Prefix     string
	IDStrategy string
}

// InitResult holds a summary of what was created vs. skipped.
type InitResult struct {
	Created []string
	Skipped []string
}

// WorkspaceInitializer prepares a directory for use as a study-buddy base path.
type WorkspaceInitializer interface {
	Init(config InitConfig) (*InitResult, error)
}

type workspaceInitializer struct{}

// NewWorkspaceInitializer creates a new WorkspaceInitializer.
func NewWorkspaceInitializer() WorkspaceInitializer {
	return &workspaceInitializer{}
}

const configHeader = `# study-buddy configuration.
# Values left out fall back to the built-in defaults.
`

// Init creates the base directory and a .studyconfig populated with defaults.
// Existing files are skipped and never overwritten. The written config is
// validated before it reaches disk.
func (wi *workspaceInitializer) Init(config InitConfig) (*InitResult, error) {
	if config.BasePath == "" {
		return nil, fmt.Errorf("initializing workspace: base path is required")
	}
	result := &InitResult{}

	created, err := ensureDir(config.BasePath)
	if err != nil {
		return nil, fmt.Errorf("initializing workspace: creating %s: %w", config.BasePath, err)
	}
	if created {
		result.Created = append(result.Created, config.BasePath)
	}

	cfg := DefaultGlobalConfig()
	if config.Prefix != "" {
		cfg.TopicID.Prefix = config.Prefix
	}
	if config.IDStrategy != "" {
		cfg.TopicID.Strategy = config.IDStrategy
	}
	if err := NewConfigurationManager(config.BasePath).ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("initializing workspace: %w", err)
	}

	path := filepath.Join(config.BasePath, ConfigFileName)
	err = writeFileIfNotExists(path, func() ([]byte, error) {
		return renderConfig(cfg)
	}, result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func renderConfig(cfg *models.GlobalConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return append([]byte(configHeader), data...), nil
}

// ensureDir creates a directory if it does not exist. Returns true if created.
func ensureDir(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(path, 0o750); err != nil {
		return false, err
	}
	return true, nil
}

// writeFileIfNotExists writes content from contentFn if the file does not exist.
// It records created/skipped in the result.
func writeFileIfNotExists(path string, contentFn func() ([]byte, error), result *InitResult) error {
	if _, err := os.Stat(path); err == nil {
		result.Skipped = append(result.Skipped, path)
		return nil
	}
	content, err := contentFn()
	if err != nil {
		return fmt.Errorf("initializing workspace: generating content for %s: %w", path, err)
	}
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return fmt.Errorf("initializing workspace: writing %s: %w", path, err)
	}
	result.Created = append(result.Created, path)
	return nil
}
