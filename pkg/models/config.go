package models

// Topic ID strategies.
const (
	TopicIDStrategyCounter = "counter"
	TopicIDStrategyUUID    = "uuid"
)

// TopicDefaults holds the values applied to topic input fields left empty.
type TopicDefaults struct {
	EstimatedHours int        `yaml:"estimated_hours" mapstructure:"estimated_hours"`
	Complexity     Complexity `yaml:"complexity" mapstructure:"complexity"`
	Priority       Priority   `yaml:"priority" mapstructure:"priority"`
}

// TopicIDConfig controls how topic ids are generated.
type TopicIDConfig struct {
	Strategy string `yaml:"strategy" mapstructure:"strategy"`
	Prefix   string `yaml:"prefix" mapstructure:"prefix"`
	PadWidth int    `yaml:"pad_width" mapstructure:"pad_width"`
}

// PlanConfig controls plan regeneration and derived views.
type PlanConfig struct {
	// PreserveCompletion carries completed flags across regenerations for
	// tasks whose id, topic, subtopic and type are unchanged.
	PreserveCompletion bool `yaml:"preserve_completion" mapstructure:"preserve_completion"`
	UpcomingLimit      int  `yaml:"upcoming_limit" mapstructure:"upcoming_limit"`
}

// AlertConfig holds thresholds for plan alerts.
type AlertConfig struct {
	DailyMinutes int `yaml:"daily_minutes" mapstructure:"daily_minutes"`
}

// GlobalConfig holds system-wide settings read from .studyconfig via Viper.
type GlobalConfig struct {
	Defaults TopicDefaults `yaml:"defaults" mapstructure:"defaults"`
	TopicID  TopicIDConfig `yaml:"topic_id" mapstructure:"topic_id"`
	Plan     PlanConfig    `yaml:"plan" mapstructure:"plan"`
	Alerts   AlertConfig   `yaml:"alerts" mapstructure:"alerts"`
}
