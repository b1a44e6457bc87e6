package env

import (
	"os"
	"strings"
)

// Get returns the trimmed value of key or fallback when it is unset or blank.
func Get(key, fallback string) string {
	return FirstOf(fallback, key)
}

// FirstOf returns the first non-blank value among keys, in order.
func FirstOf(fallback string, keys ...string) string {
	for _, key := range keys {
		if val := strings.TrimSpace(os.Getenv(key)); val != "" {
			return val
		}
	}
	return fallback
}
