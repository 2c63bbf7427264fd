package env

import (
	"os"
	"strings"
)

// Get returns the named environment variable, or fallback when it is unset
// or blank.
func Get(key, fallback string) string {
	val, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(val) == "" {
		return fallback
	}
	return val
}
