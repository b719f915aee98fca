package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// MaxRecordLimit caps the ?limit= of record listings.
	MaxRecordLimit int `mapstructure:"max_record_limit" default:"1000"`
}

// DefaultRecordLimit is used when a listing request carries no limit.
const DefaultRecordLimit = 100

// RecordLimit clamps a requested listing size to the configured bounds.
func (c Config) RecordLimit(requested int) int {
	max := c.MaxRecordLimit
	if max <= 0 {
		max = DefaultRecordLimit
	}
	switch {
	case requested <= 0:
		if DefaultRecordLimit < max {
			return DefaultRecordLimit
		}
		return max
	case requested > max:
		return max
	default:
		return requested
	}
}
