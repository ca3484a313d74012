package config

import (
	"os"
	"strconv"
	"time"
)

// Env access is confined to this package; everything else receives its
// settings through Config.

func envString(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if result, err := time.ParseDuration(value); err == nil {
			return result
		}
	}
	return defaultVal
}

func envUint64(key string, defaultVal uint64) uint64 {
	if value, exists := os.LookupEnv(key); exists {
		if result, err := strconv.ParseUint(value, 10, 64); err == nil {
			return result
		}
	}
	return defaultVal
}

func envBool(key string, defaultVal bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if result, err := strconv.ParseBool(value); err == nil {
			return result
		}
	}
	return defaultVal
}
