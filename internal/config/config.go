// Package config collects the server's environment configuration in one
// place. Handlers that talk to Strava still read their own credentials from
// the environment; this covers what main needs to wire the process.
package config

import "os"

type Config struct {
	Port      string
	RedisURL  string
	NudgeCron string
}

// Load reads the process configuration, applying defaults where the
// environment is silent. DATABASE_URL is read by the database package itself.
func Load() Config {
	return Config{
		Port:      getEnv("PORT", "8080"),
		RedisURL:  getEnv("REDIS_URL", "redis://localhost:6379"),
		NudgeCron: getEnv("NUDGE_CRON", "0 18 * * 0"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
