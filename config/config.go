// Package config holds the small option surface the conversion subsystem
// reads (spec §6 "Configuration surface"), grounded on
// github.com/jackc/pgx/v5/pgconn's option-struct style (pgconn.Config).
package config

import "time"

// Config is plumbed into the resolver chain and the timestamp converter
// only; nothing else in this module consults it, so there is no hidden
// global configuration lookup on the encode/decode hot path.
type Config struct {
	// EnableInfinityConversions gates conversion between PostgreSQL's
	// timestamp +/-infinity sentinels and the application's max/min time
	// value. When false, decoding those sentinel bytes yields
	// converr.InvalidWireData instead (spec §6).
	EnableInfinityConversions bool

	// DefaultCommandTimeout bounds how long a blocking parameter write may
	// take before the caller gives up; the converters themselves do not
	// enforce it, the command pipeline does (out of scope, spec §1).
	DefaultCommandTimeout time.Duration

	// MaxPoolSize is the per-pooled-object cap option (DefaultMaxPoolSize
	// in Default()). Nothing in this module reads it: the sync.Pool backing
	// paramwriter.Capture buffers has no size cap, and a zero value is not
	// replaced by the default.
	MaxPoolSize int
}

// DefaultMaxPoolSize matches spec §6's stated default.
const DefaultMaxPoolSize = 128

// Default returns the zero-value-safe default configuration.
func Default() Config {
	return Config{
		EnableInfinityConversions: false,
		DefaultCommandTimeout:     0,
		MaxPoolSize:               DefaultMaxPoolSize,
	}
}
