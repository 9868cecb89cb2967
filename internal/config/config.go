package config

import "github.com/joho/godotenv"

// Config holds runtime configuration for the server.
type Config struct {
	Port            string
	Source          string
	ActiveLeagues   []string
	LeaguesFile     string
	RefreshInterval Duration
	ESPN            ESPNConfig
	Metrics         MetricsConfig
}

// Load reads configuration from environment variables with sensible
// defaults. A .env file in the working directory is applied first when
// present; a missing file is not an error.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:            envOrDefault(envPort, defaultPort),
		Source:          envOrDefault(envSource, defaultSource),
		ActiveLeagues:   listEnvOrDefault(envActiveLeagues, defaultActiveLeagues()),
		LeaguesFile:     envOrDefault(envLeaguesFile, ""),
		RefreshInterval: durationEnvOrDefault(envRefreshInterval, defaultRefreshInterval),
		ESPN:            loadESPN(),
		Metrics:         loadMetrics(),
	}
}
