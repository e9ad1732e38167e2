package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/aleister1102/commitsentry/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs a fresh command tree with args and captures its output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	_, err := root.ExecuteC()
	return buf.String(), err
}

func writeTestConfig(t *testing.T, monitorSection string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "log_config:\n  log_level: error\n" +
		"repository_config:\n  repo_path: " + dir + "\n  fetch_remote: false\n" +
		"notification_config:\n  notification_backend: console\n" +
		"storage_config:\n  sqlite_db_path: " + filepath.Join(dir, "db", "test.db") + "\n" +
		monitorSection
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestConfigShow_SeedsFromFile(t *testing.T) {
	cfgPath := writeTestConfig(t, "monitor_config:\n  check_interval_minutes: 15\n  monitored_folders: [ui-kit]\n  selected_sound: happy-bells\n  sound_enabled: true\n")

	out, err := executeCommand(t, "--config", cfgPath, "config", "show", "--json")
	require.NoError(t, err)

	var shown models.MonitorConfiguration
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, 15, shown.CheckIntervalMinutes)
	assert.Equal(t, []string{"ui-kit"}, shown.MonitoredFolders)
	assert.Equal(t, "happy-bells", shown.SelectedSound)
}

func TestConfigSet_PersistsPartialUpdate(t *testing.T) {
	cfgPath := writeTestConfig(t, "")

	_, err := executeCommand(t, "--config", cfgPath, "config", "set", "--folders", "ui-kit,utils", "--interval", "0")
	require.NoError(t, err)

	out, err := executeCommand(t, "--config", cfgPath, "config", "show", "--json")
	require.NoError(t, err)

	var shown models.MonitorConfiguration
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, []string{"ui-kit", "utils"}, shown.MonitoredFolders)
	assert.Equal(t, models.MinCheckIntervalMinutes, shown.CheckIntervalMinutes)
	assert.False(t, shown.Enabled)
}

func TestConfigSet_RejectsUnknownSound(t *testing.T) {
	cfgPath := writeTestConfig(t, "")

	_, err := executeCommand(t, "--config", cfgPath, "config", "set", "--sound", "airhorn")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown sound")
}

func TestConfigSet_RequiresAFlag(t *testing.T) {
	cfgPath := writeTestConfig(t, "")

	_, err := executeCommand(t, "--config", cfgPath, "config", "set")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to change")
}

func TestHistoryAndLedger_Empty(t *testing.T) {
	cfgPath := writeTestConfig(t, "")

	out, err := executeCommand(t, "--config", cfgPath, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "no cycles recorded")

	out, err = executeCommand(t, "--config", cfgPath, "ledger")
	require.NoError(t, err)
	assert.Contains(t, out, "0 of 0 notified commits")
}

func TestStatus_NeverChecked(t *testing.T) {
	cfgPath := writeTestConfig(t, "")

	out, err := executeCommand(t, "--config", cfgPath, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "never")
	assert.Contains(t, out, "upstream/master")
}

func TestCheck_NoFoldersSucceedsWithoutGit(t *testing.T) {
	cfgPath := writeTestConfig(t, "")

	out, err := executeCommand(t, "--config", cfgPath, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "notified 0")

	out, err = executeCommand(t, "--config", cfgPath, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "IDLE")
}

func TestMissingConfigFileFails(t *testing.T) {
	_, err := executeCommand(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file does not exist")
}
