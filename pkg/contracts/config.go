package contracts

import "time"

type Config interface {
	Has(key string) bool

	Get(key string) any

	GetString(key string, defaultVal ...string) string

	GetInt(key string, defaultVal ...int) int

	GetBool(key string, defaultVal ...bool) bool

	GetDuration(key string, defaultVal ...time.Duration) time.Duration

	GetStringSlice(key string, separator ...string) []string

	// GetMapSlice returns a list of nested sections, e.g. the entries of
	// a YAML sequence of mappings.
	GetMapSlice(key string) []Config

	GetSub(key string) (Config, bool)

	All() map[string]any
}
