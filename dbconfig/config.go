// Package dbconfig loads the small set of tunables spec.md leaves as
// "design defaults": the table limit, string length limit, hash index
// bucket count, and log level gate. Grounded on steveyegge-beads'
// direct dependency on github.com/spf13/viper.
package dbconfig

import (
	"strings"

	"github.com/spf13/viper"
)

// Design defaults per spec §3 invariant 6 and §4.4.
const (
	DefaultMaxTables     = 64
	DefaultMaxStringLen  = 255
	DefaultIndexBuckets  = 64
	DefaultLogLevel      = "INFO"
)

// Config is the resolved set of tunables.
type Config struct {
	MaxTables    int
	MaxStringLen int
	IndexBuckets int
	LogLevel     string
}

// Load resolves Config from (in order of increasing precedence):
// compiled-in defaults, an optional machdb.{yaml,json,toml} config
// file on the current path, and MACHDB_-prefixed environment
// variables (MACHDB_MAX_TABLES, MACHDB_MAX_STRING_LEN,
// MACHDB_INDEX_BUCKETS, MACHDB_LOG_LEVEL).
func Load() Config {
	v := viper.New()
	v.SetDefault("max_tables", DefaultMaxTables)
	v.SetDefault("max_string_len", DefaultMaxStringLen)
	v.SetDefault("index_buckets", DefaultIndexBuckets)
	v.SetDefault("log_level", DefaultLogLevel)

	v.SetEnvPrefix("MACHDB")
	v.AutomaticEnv()

	v.SetConfigName("machdb")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // absence of a config file is not an error

	return Config{
		MaxTables:    v.GetInt("max_tables"),
		MaxStringLen: v.GetInt("max_string_len"),
		IndexBuckets: v.GetInt("index_buckets"),
		LogLevel:     strings.ToUpper(v.GetString("log_level")),
	}
}

// Default returns Config populated with compiled-in defaults only,
// bypassing environment/file lookup — used by NewEngine and by tests
// that want deterministic limits.
func Default() Config {
	return Config{
		MaxTables:    DefaultMaxTables,
		MaxStringLen: DefaultMaxStringLen,
		IndexBuckets: DefaultIndexBuckets,
		LogLevel:     DefaultLogLevel,
	}
}
