package config

import "time"

// Config is everything a detection run needs. It is loaded once by the CLI and
// injected into the detector's collaborators.
type Config struct {
	ResourceURL            string        `yaml:"resource_url"             env:"RESOURCE_URL"             validate:"required,weburl"`
	VersionInfoURL         string        `yaml:"version_info_url"         env:"VERSION_INFO_URL"         validate:"required,weburl"`
	NotificationWebhookURL string        `yaml:"notification_webhook_url" env:"NOTIFICATION_WEBHOOK_URL" validate:"omitempty,weburl"`
	JobTriggerCommand      string        `yaml:"job_trigger_command"      env:"JOB_TRIGGER_COMMAND"      validate:"required"`
	StatePath              string        `yaml:"state_path"               env:"STATE_PATH"               validate:"required"`
	HTTPTimeout            time.Duration `yaml:"http_timeout"             env:"HTTP_TIMEOUT"             validate:"gt=0"`

	Trigger TriggerConfig `yaml:"trigger" envPrefix:"TRIGGER_"`
	Notify  NotifyConfig  `yaml:"notify"  envPrefix:"NOTIFY_"`
	Lock    LockConfig    `yaml:"lock"    envPrefix:"LOCK_"`
	Log     LogConfig     `yaml:"log"     envPrefix:"LOG_"`
}

type TriggerConfig struct {
	// Wait runs the command to completion instead of detaching it.
	Wait    bool          `yaml:"wait"    env:"WAIT"`
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT" validate:"gt=0"`
}

type NotifyConfig struct {
	Username  string `yaml:"username"   env:"USERNAME"`
	Channel   string `yaml:"channel"    env:"CHANNEL"`
	OnFailure bool   `yaml:"on_failure" env:"ON_FAILURE"`
}

type LockConfig struct {
	Enabled bool `yaml:"enabled" env:"ENABLED"`
}

type LogConfig struct {
	File       string `yaml:"file"        env:"FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb" env:"MAX_SIZE_MB" validate:"gte=1"`
	MaxBackups int    `yaml:"max_backups" env:"MAX_BACKUPS" validate:"gte=0"`
}

const (
	DefaultVersionInfoURL = "https://lapis.cov-spectrum.org/gisaid/v1/sample/info"
	DefaultStatePath      = "~/.local/state/sourcewatch/state.json"
)

func Default() Config {
	return Config{
		VersionInfoURL: DefaultVersionInfoURL,
		StatePath:      DefaultStatePath,
		HTTPTimeout:    30 * time.Second,
		Trigger: TriggerConfig{
			Timeout: 30 * time.Minute,
		},
		Log: LogConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// LockPath is the flock file guarding the state file when locking is enabled.
func (c Config) LockPath() string {
	return c.StatePath + ".lock"
}
