package datastore

import (
	"context"
	"encoding/json"

	"github.com/aleister1102/commitsentry/internal/common/errorwrapper"
	"github.com/aleister1102/commitsentry/internal/models"
)

// MonitorConfigurationKey is the KV key the monitor configuration persists under.
const MonitorConfigurationKey = "monitor-configuration"

// ConfigurationStore persists the user's MonitorConfiguration as JSON.
type ConfigurationStore struct {
	store models.KeyValueStore
}

func NewConfigurationStore(store models.KeyValueStore) *ConfigurationStore {
	return &ConfigurationStore{store: store}
}

// Load returns the stored configuration, or ok=false if none was ever saved.
func (s *ConfigurationStore) Load(ctx context.Context) (models.MonitorConfiguration, bool, error) {
	raw, ok, err := s.store.Get(ctx, MonitorConfigurationKey)
	if err != nil || !ok {
		return models.MonitorConfiguration{}, false, err
	}

	cfg := models.DefaultMonitorConfiguration()
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return models.MonitorConfiguration{}, false, errorwrapper.WrapError(err, "failed to decode monitor configuration")
	}
	return cfg, true, nil
}

// Save stores cfg, replacing the previous configuration.
func (s *ConfigurationStore) Save(ctx context.Context, cfg models.MonitorConfiguration) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return errorwrapper.WrapError(err, "failed to encode monitor configuration")
	}
	return s.store.Set(ctx, MonitorConfigurationKey, string(data))
}

// LoadOrSeed returns the stored configuration, saving and returning seed when none exists.
func (s *ConfigurationStore) LoadOrSeed(ctx context.Context, seed models.MonitorConfiguration) (models.MonitorConfiguration, error) {
	cfg, ok, err := s.Load(ctx)
	if err != nil {
		return models.MonitorConfiguration{}, err
	}
	if ok {
		return cfg, nil
	}
	if err := s.Save(ctx, seed); err != nil {
		return models.MonitorConfiguration{}, err
	}
	return seed, nil
}
