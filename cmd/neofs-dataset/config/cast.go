package config

import (
	"strings"
	"time"

	"github.com/spf13/cast"
)

func panicOnErr(err error) {
	if err != nil {
		panic(err)
	}
}

// String reads configuration value
// from c by name and casts it to string.
//
// Panics if value can not be casted.
func String(c *Config, name string) string {
	x, err := cast.ToStringE(c.Value(name))
	panicOnErr(err)

	return x
}

// StringSafe reads configuration value
// from c by name and casts it to string.
//
// Returns "" if value can not be casted.
func StringSafe(c *Config, name string) string {
	return cast.ToString(c.Value(name))
}

// Int reads configuration value
// from c by name and casts it to int.
//
// Panics if value can not be casted.
func Int(c *Config, name string) int {
	x, err := cast.ToIntE(c.Value(name))
	panicOnErr(err)

	return x
}

// IntSafe reads configuration value
// from c by name and casts it to int.
//
// Returns 0 if value can not be casted.
func IntSafe(c *Config, name string) int {
	return cast.ToInt(c.Value(name))
}

// IntSlice reads configuration value from c by name and casts it to []int.
// Strings (e.g. from ENV) are split by white spaces.
//
// Panics if value can not be casted.
func IntSlice(c *Config, name string) []int {
	x, err := toIntSlice(c.Value(name))
	panicOnErr(err)

	return x
}

// IntSliceSafe reads configuration value from c by name and casts it to
// []int.
//
// Returns nil if value can not be casted.
func IntSliceSafe(c *Config, name string) []int {
	x, err := toIntSlice(c.Value(name))
	if err != nil {
		return nil
	}

	return x
}

func toIntSlice(v any) ([]int, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		return cast.ToIntSliceE(strings.Fields(x))
	default:
		return cast.ToIntSliceE(v)
	}
}

// Uint32 reads configuration value
// from c by name and casts it to uint32.
//
// Panics if value can not be casted.
func Uint32(c *Config, name string) uint32 {
	x, err := cast.ToUint32E(c.Value(name))
	panicOnErr(err)

	return x
}

// Uint32Safe reads configuration value
// from c by name and casts it to uint32.
//
// Returns 0 if value can not be casted.
func Uint32Safe(c *Config, name string) uint32 {
	return cast.ToUint32(c.Value(name))
}

// Bool reads configuration value
// from c by name and casts it to bool.
//
// Panics if value can not be casted.
func Bool(c *Config, name string) bool {
	x, err := cast.ToBoolE(c.Value(name))
	panicOnErr(err)

	return x
}

// BoolSafe reads configuration value
// from c by name and casts it to bool.
//
// Returns false if value can not be casted.
func BoolSafe(c *Config, name string) bool {
	return cast.ToBool(c.Value(name))
}

// Duration reads configuration value
// from c by name and casts it to time.Duration.
//
// Panics if value can not be casted.
func Duration(c *Config, name string) time.Duration {
	x, err := cast.ToDurationE(c.Value(name))
	panicOnErr(err)

	return x
}

// DurationSafe reads configuration value
// from c by name and casts it to time.Duration.
//
// Returns 0 if value can not be casted.
func DurationSafe(c *Config, name string) time.Duration {
	return cast.ToDuration(c.Value(name))
}
