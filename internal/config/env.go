package config

import "os"

// applyEnv lets PEAK_DB_PATH, PEAK_LOG_PATH and PEAK_TICK_INTERVAL override
// the file.
func applyEnv(cfg *Config) {
	if val := os.Getenv("PEAK_DB_PATH"); val != "" {
		cfg.DBPath = val
	}
	if val := os.Getenv("PEAK_LOG_PATH"); val != "" {
		cfg.LogPath = val
	}
	setDuration(&cfg.TickInterval, os.Getenv("PEAK_TICK_INTERVAL"))
}
