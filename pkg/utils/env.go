package utils

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Getenv retrieves the value of the environment variable named by the key.
// If the variable is not present or its value is empty, Getenv returns the fallback string.
func Getenv(key, fallback string) string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	return value
}

// GetenvBool accepts 1/true/yes/on (case-insensitive) as true.
func GetenvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	switch strings.ToLower(value) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}

// GetenvDuration parses values such as "24h" or "90m"; invalid values fall back.
func GetenvDuration(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

// GetenvInt returns fallback when the variable is unset or not an integer.
func GetenvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
