package config

// Sub returns subsection of the Config by name.
func (x *Config) Sub(name string) *Config {
	return &Config{
		v:    x.v,
		path: append(x.path[:len(x.path):len(x.path)], name),
	}
}

// Value returns configuration value by name.
//
// Result can be casted to a particular type
// via corresponding function (e.g. IntSlice).
// Note: casting via Go `.()` operator is not
// recommended.
func (x *Config) Value(name string) any {
	return x.v.Get(x.key(name))
}

// IsSet checks whether the value is set by any source.
func (x *Config) IsSet(name string) bool {
	return x.v.IsSet(x.key(name))
}
