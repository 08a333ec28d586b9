package env

import "os"

// Get returns the value of the given environment variable or a fallback.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// Port prefers the platform-injected PORT over the configured fallback.
func Port(fallback string) string {
	return Get("PORT", fallback)
}
