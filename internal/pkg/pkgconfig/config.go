package pkgconfig

// Config is the read-only view of application configuration.
//
// Implementations decide where values come from (file, env, remote);
// callers only see typed getters.
type Config interface {
	// GetInt returns the value for key as int64.
	GetInt(key string) int64
	// GetBool returns the value for key as bool.
	GetBool(key string) bool
	// GetFloat returns the value for key as float64.
	GetFloat(key string) float64
	// GetString returns the value for key as string.
	GetString(key string) string
	// GetBinary returns the value for key as raw bytes.
	GetBinary(key string) []byte
	// GetArray returns the value for key as a list of strings.
	GetArray(key string) []string
	// GetMap returns the value for key as a string-to-string map.
	GetMap(key string) map[string]string
	// Close releases any resources held by the configuration source.
	Close() error
}
