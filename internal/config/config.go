package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	DataDir      string // base directory for collected payloads
	Port         string
	MaxBodyMB    int64 // request body cap; sessions embed whole frames, so it runs large
	RatePerMin   int   // per-client upload limit, 0 disables
	RateBurst    int
	HistoryLimit int // upload registry size
}

// FromEnv reads configuration from the environment, falling back to defaults
// suitable for running on the collection machine.
func FromEnv() *Config {
	return &Config{
		DataDir:      envString("SC_DATA_DIR", "collected_data"),
		Port:         envString("SC_PORT", "5000"),
		MaxBodyMB:    envInt("SC_MAX_BODY_MB", 50),
		RatePerMin:   int(envInt("SC_RATE_PER_MIN", 0)),
		RateBurst:    int(envInt("SC_RATE_BURST", 10)),
		HistoryLimit: int(envInt("SC_HISTORY_LIMIT", 200)),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}
