package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aleister1102/commitsentry/internal/common/errorwrapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultGlobalConfig(t *testing.T) {
	cfg := NewDefaultGlobalConfig()

	assert.Equal(t, "upstream", cfg.RepositoryConfig.Remote)
	assert.Equal(t, "master", cfg.RepositoryConfig.Branch)
	assert.Equal(t, "packages/libs", cfg.RepositoryConfig.FolderBasePath)
	assert.Equal(t, 8000, cfg.EngineConfig.FetchTimeoutMs)
	assert.Equal(t, 60, cfg.EngineConfig.MaxCommitsPerCycle)
	assert.Equal(t, 3, cfg.EngineConfig.BatchSize)
	assert.Equal(t, 300, cfg.EngineConfig.BatchDelayMs)
	assert.Equal(t, 2000, cfg.NotificationConfig.SoundThrottleMs)
	assert.Equal(t, "pop-alert", cfg.MonitorConfig.SelectedSound)
	require.NoError(t, ValidateConfig(cfg))
}

func TestLoadGlobalConfig_NoConfigFile(t *testing.T) {
	testChdir(t, t.TempDir())
	t.Setenv(ConfigPathEnv, "")

	cfg, err := LoadGlobalConfig("")

	require.NoError(t, err)
	assert.Equal(t, NewDefaultGlobalConfig(), cfg)
}

func TestLoadGlobalConfig_NonExistentFile(t *testing.T) {
	cfg, err := LoadGlobalConfig("/nonexistent/config.json")

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file does not exist")
	assert.ErrorIs(t, err, errorwrapper.ErrInvalidConfiguration)
}

func TestLoadGlobalConfig_JSONFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.json")
	configData := `{
		"log_config": {"log_level": "debug"},
		"engine_config": {"batch_size": 5},
		"monitor_config": {"enabled": true, "monitored_folders": ["ui-kit"]}
	}`
	require.NoError(t, os.WriteFile(configFile, []byte(configData), 0644))

	cfg, err := LoadGlobalConfig(configFile)

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogConfig.LogLevel)
	assert.Equal(t, 5, cfg.EngineConfig.BatchSize)
	assert.Equal(t, 300, cfg.EngineConfig.BatchDelayMs)
	assert.True(t, cfg.MonitorConfig.Enabled)
	assert.Equal(t, []string{"ui-kit"}, cfg.MonitorConfig.MonitoredFolders)
}

func TestLoadGlobalConfig_YAMLFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	configData := `
repository_config:
  repo_path: /src/monorepo
  branch: main
notification_config:
  notification_backend: console
  sound_throttle_ms: 500
`
	require.NoError(t, os.WriteFile(configFile, []byte(configData), 0644))

	cfg, err := LoadGlobalConfig(configFile)

	require.NoError(t, err)
	assert.Equal(t, "/src/monorepo", cfg.RepositoryConfig.RepoPath)
	assert.Equal(t, "main", cfg.RepositoryConfig.Branch)
	assert.Equal(t, "upstream", cfg.RepositoryConfig.Remote)
	assert.Equal(t, BackendConsole, cfg.NotificationConfig.Backend)
	assert.Equal(t, 500, cfg.NotificationConfig.SoundThrottleMs)
}

func TestGetConfigPath_Env(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("{}"), 0644))
	t.Setenv(ConfigPathEnv, configFile)

	assert.Equal(t, configFile, GetConfigPath(""))
}

func TestSaveGlobalConfig_RoundTripsThroughLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := NewDefaultGlobalConfig()
	cfg.MonitorConfig.MonitoredFolders = []string{"forms", "charts"}

	require.NoError(t, SaveGlobalConfig(cfg, path))
	loaded, err := LoadGlobalConfig(path)

	require.NoError(t, err)
	assert.Equal(t, cfg.MonitorConfig.MonitoredFolders, loaded.MonitorConfig.MonitoredFolders)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GlobalConfig)
		wantErr string
	}{
		{
			name:    "unknown log level",
			mutate:  func(c *GlobalConfig) { c.LogConfig.LogLevel = "loud" },
			wantErr: "LogConfig.LogLevel",
		},
		{
			name:    "unknown backend",
			mutate:  func(c *GlobalConfig) { c.NotificationConfig.Backend = "pager" },
			wantErr: "NotificationConfig.Backend",
		},
		{
			name:    "unknown match mode",
			mutate:  func(c *GlobalConfig) { c.EngineConfig.FolderMatchMode = "regex" },
			wantErr: "EngineConfig.FolderMatchMode",
		},
		{
			name:    "unknown sound",
			mutate:  func(c *GlobalConfig) { c.MonitorConfig.SelectedSound = "airhorn" },
			wantErr: "MonitorConfig.SelectedSound",
		},
		{
			name:    "empty folder entry",
			mutate:  func(c *GlobalConfig) { c.MonitorConfig.MonitoredFolders = []string{"ok", ""} },
			wantErr: "MonitoredFolders",
		},
		{
			name:    "discord without webhook",
			mutate:  func(c *GlobalConfig) { c.NotificationConfig.Backend = BackendDiscord },
			wantErr: "discord_webhook_url",
		},
		{
			name: "discord with webhook",
			mutate: func(c *GlobalConfig) {
				c.NotificationConfig.Backend = BackendDiscord
				c.NotificationConfig.DiscordWebhookURL = "https://discord.com/api/webhooks/1/abc"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultGlobalConfig()
			tt.mutate(cfg)

			err := ValidateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, errorwrapper.ErrInvalidConfiguration)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMonitorConfig_ToPartial(t *testing.T) {
	mc := NewDefaultMonitorConfig()
	mc.MonitoredFolders = []string{"a"}

	p := mc.ToPartial()
	require.NotNil(t, p.MonitoredFolders)
	assert.Equal(t, []string{"a"}, *p.MonitoredFolders)
	assert.Equal(t, mc.CheckIntervalMinutes, *p.CheckIntervalMinutes)
}

// testChdir changes the working directory to dir for the duration of the
// test and restores it afterwards (equivalent of testing.T.Chdir, Go 1.24+).
func testChdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
