package driven

// ConfigStore provides access to application configuration.
// Keys are dot-separated ("api.base_url"); implementations map them onto
// nested tables on disk and convert types on read.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string value, or "" when missing or mistyped.
	GetString(key string) string

	// GetInt retrieves an integer value, or 0 when missing or mistyped.
	GetInt(key string) int

	// GetFloat retrieves a numeric value, or 0 when missing or mistyped.
	GetFloat(key string) float64

	// GetBool retrieves a boolean value, or false when missing or mistyped.
	GetBool(key string) bool

	// Keys returns every stored key, sorted.
	Keys() []string

	// Set stores a configuration value in memory. Call Save to persist.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage, replacing in-memory values.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
