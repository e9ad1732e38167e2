package config

import "github.com/aleister1102/commitsentry/internal/models"

// MonitorConfig seeds the persisted monitor configuration on first start.
type MonitorConfig struct {
	Enabled              bool     `json:"enabled" yaml:"enabled"`
	CheckIntervalMinutes int      `json:"check_interval_minutes,omitempty" yaml:"check_interval_minutes,omitempty" validate:"omitempty,min=1"`
	MonitoredFolders     []string `json:"monitored_folders,omitempty" yaml:"monitored_folders,omitempty" validate:"omitempty,dive,required"`
	NotifyForAllFolders  bool     `json:"notify_for_all_folders" yaml:"notify_for_all_folders"`
	SelectedSound        string   `json:"selected_sound,omitempty" yaml:"selected_sound,omitempty" validate:"omitempty,sound"`
	SoundEnabled         bool     `json:"sound_enabled" yaml:"sound_enabled"`
}

// NewDefaultMonitorConfig creates default monitor configuration
func NewDefaultMonitorConfig() MonitorConfig {
	d := models.DefaultMonitorConfiguration()
	return MonitorConfig{
		Enabled:              d.Enabled,
		CheckIntervalMinutes: d.CheckIntervalMinutes,
		MonitoredFolders:     []string{},
		NotifyForAllFolders:  d.NotifyForAllFolders,
		SelectedSound:        d.SelectedSound,
		SoundEnabled:         d.SoundEnabled,
	}
}

// ToModel converts the file representation into the engine's configuration.
func (mc MonitorConfig) ToModel() models.MonitorConfiguration {
	folders := make([]string, len(mc.MonitoredFolders))
	copy(folders, mc.MonitoredFolders)
	return models.MonitorConfiguration{
		Enabled:              mc.Enabled,
		CheckIntervalMinutes: mc.CheckIntervalMinutes,
		MonitoredFolders:     folders,
		NotifyForAllFolders:  mc.NotifyForAllFolders,
		SelectedSound:        mc.SelectedSound,
		SoundEnabled:         mc.SoundEnabled,
	}
}

// ToPartial expresses the whole section as an update, used when the file changes at runtime.
func (mc MonitorConfig) ToPartial() models.PartialMonitorConfiguration {
	m := mc.ToModel()
	return models.PartialMonitorConfiguration{
		Enabled:              &m.Enabled,
		CheckIntervalMinutes: &m.CheckIntervalMinutes,
		MonitoredFolders:     &m.MonitoredFolders,
		NotifyForAllFolders:  &m.NotifyForAllFolders,
		SelectedSound:        &m.SelectedSound,
		SoundEnabled:         &m.SoundEnabled,
	}
}
