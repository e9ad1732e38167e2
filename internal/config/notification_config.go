package config

import "time"

// NotificationConfig defines configuration for notifications
type NotificationConfig struct {
	Backend           string   `json:"notification_backend,omitempty" yaml:"notification_backend,omitempty" validate:"omitempty,backend"`
	DiscordWebhookURL string   `json:"discord_webhook_url,omitempty" yaml:"discord_webhook_url,omitempty" validate:"omitempty,url"`
	MentionRoleIDs    []string `json:"mention_role_ids,omitempty" yaml:"mention_role_ids,omitempty"`
	SoundDir          string   `json:"sound_dir,omitempty" yaml:"sound_dir,omitempty"`
	SoundThrottleMs   int      `json:"sound_throttle_ms,omitempty" yaml:"sound_throttle_ms,omitempty" validate:"omitempty,min=0"`
}

// NewDefaultNotificationConfig creates default notification configuration
func NewDefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		Backend:         DefaultNotificationBackend,
		MentionRoleIDs:  []string{},
		SoundDir:        DefaultNotificationSoundDir,
		SoundThrottleMs: DefaultNotificationThrottleMs,
	}
}

func (nc NotificationConfig) SoundThrottle() time.Duration {
	return time.Duration(nc.SoundThrottleMs) * time.Millisecond
}
