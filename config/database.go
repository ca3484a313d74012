package config

import "time"

type DatabaseConfig struct {
	URI             string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	DatabaseName    string
	RetryWrites     bool
}

func LoadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URI:             envString("MONGO_URI", "mongodb://localhost:27017"),
		MaxPoolSize:     envUint64("MONGO_MAX_POOL_SIZE", 100),
		MinPoolSize:     envUint64("MONGO_MIN_POOL_SIZE", 10),
		MaxConnIdleTime: envDuration("MONGO_MAX_CONN_IDLE_TIME", time.Minute),
		DatabaseName:    envString("MONGO_DB", "codearena"),
		RetryWrites:     envBool("MONGO_RETRY_WRITES", true),
	}
}
