package models

import "slices"

const (
	// MinCheckIntervalMinutes is the smallest polling interval the engine accepts.
	MinCheckIntervalMinutes = 1
	// DefaultCheckIntervalMinutes is used when no interval was ever configured.
	DefaultCheckIntervalMinutes = 5
)

// MonitorConfiguration is the user-controlled monitoring setup. It is owned by the
// host application and only read by the engine.
type MonitorConfiguration struct {
	Enabled              bool     `json:"enabled"`
	CheckIntervalMinutes int      `json:"check_interval_minutes"`
	MonitoredFolders     []string `json:"monitored_folders"`
	NotifyForAllFolders  bool     `json:"notify_for_all_folders"`
	SelectedSound        string   `json:"selected_sound"`
	SoundEnabled         bool     `json:"sound_enabled"`
}

// PartialMonitorConfiguration carries an update where nil fields are left untouched.
type PartialMonitorConfiguration struct {
	Enabled              *bool     `json:"enabled,omitempty"`
	CheckIntervalMinutes *int      `json:"check_interval_minutes,omitempty"`
	MonitoredFolders     *[]string `json:"monitored_folders,omitempty"`
	NotifyForAllFolders  *bool     `json:"notify_for_all_folders,omitempty"`
	SelectedSound        *string   `json:"selected_sound,omitempty"`
	SoundEnabled         *bool     `json:"sound_enabled,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (p PartialMonitorConfiguration) IsEmpty() bool {
	return p.Enabled == nil && p.CheckIntervalMinutes == nil && p.MonitoredFolders == nil &&
		p.NotifyForAllFolders == nil && p.SelectedSound == nil && p.SoundEnabled == nil
}

// Apply returns a copy of c with every non-nil field of p applied.
func (c MonitorConfiguration) Apply(p PartialMonitorConfiguration) MonitorConfiguration {
	out := c
	out.MonitoredFolders = slices.Clone(c.MonitoredFolders)
	if p.Enabled != nil {
		out.Enabled = *p.Enabled
	}
	if p.CheckIntervalMinutes != nil {
		out.CheckIntervalMinutes = *p.CheckIntervalMinutes
	}
	if p.MonitoredFolders != nil {
		out.MonitoredFolders = slices.Clone(*p.MonitoredFolders)
	}
	if p.NotifyForAllFolders != nil {
		out.NotifyForAllFolders = *p.NotifyForAllFolders
	}
	if p.SelectedSound != nil {
		out.SelectedSound = *p.SelectedSound
	}
	if p.SoundEnabled != nil {
		out.SoundEnabled = *p.SoundEnabled
	}
	return out
}

// Normalize clamps the interval, drops empty and duplicate folders (keeping the first
// occurrence) and fills an empty sound with the default. The second return value is
// true when the interval had to be clamped.
func (c MonitorConfiguration) Normalize() (MonitorConfiguration, bool) {
	out := c
	clamped := false
	if out.CheckIntervalMinutes < MinCheckIntervalMinutes {
		out.CheckIntervalMinutes = MinCheckIntervalMinutes
		clamped = true
	}

	seen := make(map[string]struct{}, len(c.MonitoredFolders))
	folders := make([]string, 0, len(c.MonitoredFolders))
	for _, folder := range c.MonitoredFolders {
		if folder == "" {
			continue
		}
		if _, ok := seen[folder]; ok {
			continue
		}
		seen[folder] = struct{}{}
		folders = append(folders, folder)
	}
	out.MonitoredFolders = folders

	if out.SelectedSound == "" {
		out.SelectedSound = DefaultSound
	}
	return out, clamped
}

// HasTargets reports whether a cycle has anything to evaluate.
func (c MonitorConfiguration) HasTargets() bool {
	return c.NotifyForAllFolders || len(c.MonitoredFolders) > 0
}

// DefaultMonitorConfiguration is the configuration used before the user changed anything.
func DefaultMonitorConfiguration() MonitorConfiguration {
	return MonitorConfiguration{
		Enabled:              false,
		CheckIntervalMinutes: DefaultCheckIntervalMinutes,
		MonitoredFolders:     []string{},
		NotifyForAllFolders:  false,
		SelectedSound:        DefaultSound,
		SoundEnabled:         true,
	}
}
