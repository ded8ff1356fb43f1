package config

import "fmt"

// Options wraps a map[string]any for type-safe value extraction.
// All accessor methods return default values if the key is missing
// or the value cannot be converted to the requested type.
type Options struct {
	data map[string]any
}

// NewOptions creates Options from the given map.
// If data is nil, empty Options are returned.
func NewOptions(data map[string]any) Options {
	if data == nil {
		data = make(map[string]any)
	}
	return Options{data: data}
}

// String returns the string value for key, or defaultVal if missing or not a string.
func (o Options) String(key, defaultVal string) string {
	if s, ok := o.data[key].(string); ok {
		return s
	}
	return defaultVal
}

// Bool returns the boolean value for key, or defaultVal if missing or not a bool.
func (o Options) Bool(key string, defaultVal bool) bool {
	if b, ok := o.data[key].(bool); ok {
		return b
	}
	return defaultVal
}

// Float returns the float64 value for key, or defaultVal if missing or not numeric.
//
// Accepts float64, float32, int, int64 and uint64.
func (o Options) Float(key string, defaultVal float64) float64 {
	switch v := o.data[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	}
	return defaultVal
}

// Int returns the integer value for key, or defaultVal if missing or not
// convertible. Floats are accepted only without a fractional part.
func (o Options) Int(key string, defaultVal int) int {
	switch v := o.data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		if v == float64(int(v)) {
			return int(v)
		}
	}
	return defaultVal
}

// Has returns true if the key exists.
func (o Options) Has(key string) bool {
	_, ok := o.data[key]
	return ok
}

// RequireString returns the string value for key or an error naming the key.
func (o Options) RequireString(key string) (string, error) {
	s, ok := o.data[key].(string)
	if !ok || s == "" {
		return "", fmt.Errorf("option %q: required string", key)
	}
	return s, nil
}
