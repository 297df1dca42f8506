package domain

import (
	"errors"
	"net/url"
	"time"
)

// Default application settings.
const (
	DefaultAPIBaseURL  = "http://localhost:8000"
	DefaultAPITimeout  = 60 * time.Second
	DefaultRateLimit   = 2.0
	DefaultRateBurst   = 4
	DefaultHistorySize = 20
)

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	API        APISettings
	Collection CollectionSettings
	Bulk       BulkSettings
}

// APISettings configures the remote record store connection.
type APISettings struct {
	// BaseURL is the backend root, without the /admin suffix.
	BaseURL string

	// Timeout bounds each non-bulk request. Zero disables it.
	Timeout time.Duration

	// RateLimit is the sustained request rate per second (0 disables throttling).
	RateLimit float64

	// Burst is the number of requests allowed above the sustained rate.
	Burst int
}

// Validate checks the API settings are usable.
func (a APISettings) Validate() error {
	if a.BaseURL == "" {
		return errors.New("api base URL is not set")
	}
	u, err := url.Parse(a.BaseURL)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("api base URL must use http or https")
	}
	if u.Host == "" {
		return errors.New("api base URL has no host")
	}
	return nil
}

// CollectionSettings configures collection defaults.
type CollectionSettings struct {
	// Default is the collection used when a command omits one.
	Default string
}

// BulkSettings configures the bulk dispatcher.
type BulkSettings struct {
	// ConsistencyCheck flags results whose counts do not match the selection.
	ConsistencyCheck bool

	// HistoryEnabled records dispatched runs locally.
	HistoryEnabled bool
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			BaseURL:   DefaultAPIBaseURL,
			Timeout:   DefaultAPITimeout,
			RateLimit: DefaultRateLimit,
			Burst:     DefaultRateBurst,
		},
		Collection: CollectionSettings{
			Default: DefaultCollection,
		},
		Bulk: BulkSettings{
			ConsistencyCheck: true,
			HistoryEnabled:   true,
		},
	}
}

// Validate checks the settings are usable.
func (s *AppSettings) Validate() error {
	return s.API.Validate()
}
