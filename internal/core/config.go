// Package core contains the business logic for study-buddy: plan generation
// and ranking, topic management, plan state, topic ids and configuration.
package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/viper"
	"github.com/valter-silva-au/study-buddy/pkg/models"
)

// ConfigFileName is the name of the YAML configuration file in the base path.
const ConfigFileName = ".studyconfig"

// validPrefixPattern matches uppercase alphanumeric prefixes between 1 and 10 characters.
var validPrefixPattern = regexp.MustCompile(`^[A-Z0-9]{1,10}$`)

// ConfigurationManager defines the interface for loading and validating the
// global configuration.
type ConfigurationManager interface {
	LoadGlobalConfig() (*models.GlobalConfig, error)
	ValidateConfig(cfg *models.GlobalConfig) error
}

// viperConfigManager implements ConfigurationManager using Viper for
// reading YAML configuration files.
type viperConfigManager struct {
	basePath string
}

// NewConfigurationManager creates a new ConfigurationManager that reads
// .studyconfig from basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// DefaultGlobalConfig returns a GlobalConfig populated with defaults.
func DefaultGlobalConfig() *models.GlobalConfig {
	return &models.GlobalConfig{
		Defaults: models.TopicDefaults{
			EstimatedHours: 2,
			Complexity:     models.ComplexityMedium,
			Priority:       models.PriorityMedium,
		},
		TopicID: models.TopicIDConfig{
			Strategy: models.TopicIDStrategyCounter,
			Prefix:   "TOPIC",
			PadWidth: 5,
		},
		Plan: models.PlanConfig{
			PreserveCompletion: false,
			UpcomingLimit:      DefaultUpcomingLimit,
		},
		Alerts: models.AlertConfig{
			DailyMinutes: 240,
		},
	}
}

// LoadGlobalConfig reads .studyconfig using Viper. If the file does not
// exist, defaults are returned. The loaded config is validated.
func (cm *viperConfigManager) LoadGlobalConfig() (*models.GlobalConfig, error) {
	cfg := DefaultGlobalConfig()

	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)

	v.SetDefault("defaults.estimated_hours", cfg.Defaults.EstimatedHours)
	v.SetDefault("defaults.complexity", string(cfg.Defaults.Complexity))
	v.SetDefault("defaults.priority", string(cfg.Defaults.Priority))
	v.SetDefault("topic_id.strategy", cfg.TopicID.Strategy)
	v.SetDefault("topic_id.prefix", cfg.TopicID.Prefix)
	v.SetDefault("topic_id.pad_width", cfg.TopicID.PadWidth)
	v.SetDefault("plan.preserve_completion", cfg.Plan.PreserveCompletion)
	v.SetDefault("plan.upcoming_limit", cfg.Plan.UpcomingLimit)
	v.SetDefault("alerts.daily_minutes", cfg.Alerts.DailyMinutes)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading %s: %w", ConfigFileName, err)
	}

	cfg.Defaults.EstimatedHours = v.GetInt("defaults.estimated_hours")
	cfg.Defaults.Complexity = models.Complexity(v.GetString("defaults.complexity"))
	cfg.Defaults.Priority = models.Priority(v.GetString("defaults.priority"))
	cfg.TopicID.Strategy = v.GetString("topic_id.strategy")
	cfg.TopicID.Prefix = v.GetString("topic_id.prefix")
	cfg.TopicID.PadWidth = v.GetInt("topic_id.pad_width")
	cfg.Plan.PreserveCompletion = v.GetBool("plan.preserve_completion")
	cfg.Plan.UpcomingLimit = v.GetInt("plan.upcoming_limit")
	cfg.Alerts.DailyMinutes = v.GetInt("alerts.daily_minutes")

	if err := cm.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateConfig checks cfg for invalid values and returns an error listing
// every problem found.
func (cm *viperConfigManager) ValidateConfig(cfg *models.GlobalConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string

	if cfg.Defaults.EstimatedHours <= 0 {
		errs = append(errs, fmt.Sprintf("defaults.estimated_hours must be positive, got %d", cfg.Defaults.EstimatedHours))
	}
	if err := cfg.Defaults.Complexity.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("defaults.complexity: %s (must be one of: easy, medium, hard)", err))
	}
	if err := cfg.Defaults.Priority.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("defaults.priority: %s (must be one of: low, medium, high)", err))
	}

	switch cfg.TopicID.Strategy {
	case models.TopicIDStrategyCounter:
		if !validPrefixPattern.MatchString(cfg.TopicID.Prefix) {
			errs = append(errs, fmt.Sprintf("topic_id.prefix %q is invalid, must match [A-Z0-9]{1,10}", cfg.TopicID.Prefix))
		}
		if cfg.TopicID.PadWidth < 0 || cfg.TopicID.PadWidth > 10 {
			errs = append(errs, fmt.Sprintf("topic_id.pad_width %d is invalid, must be between 0 and 10", cfg.TopicID.PadWidth))
		}
	case models.TopicIDStrategyUUID:
	default:
		errs = append(errs, fmt.Sprintf("topic_id.strategy %q is invalid, must be counter or uuid", cfg.TopicID.Strategy))
	}

	if cfg.Plan.UpcomingLimit < 0 {
		errs = append(errs, fmt.Sprintf("plan.upcoming_limit must be non-negative, got %d", cfg.Plan.UpcomingLimit))
	}
	if cfg.Alerts.DailyMinutes < 0 {
		errs = append(errs, fmt.Sprintf("alerts.daily_minutes must be non-negative, got %d", cfg.Alerts.DailyMinutes))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
