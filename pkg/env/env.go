// Package env reads raw process environment values for the few settings
// that must resolve before the envconfig tree is loaded, such as the
// logger's output format.
package env

import "os"

// Get returns the named variable, or fallback when it is unset or blank.
func Get(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}
