package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/custodia-labs/curio-cli/internal/core/domain"
	"github.com/custodia-labs/curio-cli/internal/core/ports/driven"
	"github.com/custodia-labs/curio-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyAPIBaseURL        = "api.base_url"
	KeyAPITimeout        = "api.timeout_seconds"
	KeyAPIRateLimit      = "api.rate_limit"
	KeyAPIBurst          = "api.burst"
	KeyDefaultCollection = "collection.default"
	KeyConsistencyCheck  = "bulk.consistency_check"
	KeyHistoryEnabled    = "history.enabled"
)

// settingKind is the value type stored under a key.
type settingKind int

const (
	kindString settingKind = iota
	kindInt
	kindFloat
	kindBool
)

var settingKinds = map[string]settingKind{
	KeyAPIBaseURL:        kindString,
	KeyAPITimeout:        kindInt,
	KeyAPIRateLimit:      kindFloat,
	KeyAPIBurst:          kindInt,
	KeyDefaultCollection: kindString,
	KeyConsistencyCheck:  kindBool,
	KeyHistoryEnabled:    kindBool,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings, filling defaults for unset keys.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		API: domain.APISettings{
			BaseURL:   s.getString(KeyAPIBaseURL, defaults.API.BaseURL),
			Timeout:   time.Duration(s.getInt(KeyAPITimeout, int(defaults.API.Timeout/time.Second))) * time.Second,
			RateLimit: s.getFloat(KeyAPIRateLimit, defaults.API.RateLimit),
			Burst:     s.getInt(KeyAPIBurst, defaults.API.Burst),
		},
		Collection: domain.CollectionSettings{
			Default: s.getString(KeyDefaultCollection, defaults.Collection.Default),
		},
		Bulk: domain.BulkSettings{
			ConsistencyCheck: s.getBool(KeyConsistencyCheck, defaults.Bulk.ConsistencyCheck),
			HistoryEnabled:   s.getBool(KeyHistoryEnabled, defaults.Bulk.HistoryEnabled),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{KeyAPIBaseURL, settings.API.BaseURL},
		{KeyAPITimeout, int(settings.API.Timeout / time.Second)},
		{KeyAPIRateLimit, settings.API.RateLimit},
		{KeyAPIBurst, settings.API.Burst},
		{KeyDefaultCollection, settings.Collection.Default},
		{KeyConsistencyCheck, settings.Bulk.ConsistencyCheck},
		{KeyHistoryEnabled, settings.Bulk.HistoryEnabled},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return s.configStore.Save()
}

// Set parses value according to the key's type, stores it and persists.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var parsed any
	switch kind {
	case kindString:
		parsed = value
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		parsed = n
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidInput, key)
		}
		parsed = f
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		parsed = b
	}

	if key == KeyAPIBaseURL {
		if err := (domain.APISettings{BaseURL: value}).Validate(); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return s.configStore.Save()
}

// Keys returns the settable config keys in display order.
func (s *SettingsService) Keys() []string {
	return []string{
		KeyAPIBaseURL,
		KeyAPITimeout,
		KeyAPIRateLimit,
		KeyAPIBurst,
		KeyDefaultCollection,
		KeyConsistencyCheck,
		KeyHistoryEnabled,
	}
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Validate checks the current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// Helper methods

func (s *SettingsService) getString(key, defaultVal string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
