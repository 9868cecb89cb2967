package config

import "time"

const (
	envESPNBaseURL = "ESPN_BASE_URL"
	envESPNTimeout = "ESPN_TIMEOUT"
	envESPNRetries = "ESPN_MAX_RETRIES"

	defaultESPNBaseURL = "https://site.api.espn.com"
	defaultESPNTimeout = 10 * Duration(time.Second)
	defaultESPNRetries = 3
)

// ESPNConfig controls how we talk to the upstream scoreboard API.
type ESPNConfig struct {
	BaseURL    string
	Timeout    Duration
	MaxRetries int
}

func loadESPN() ESPNConfig {
	return ESPNConfig{
		BaseURL:    envOrDefault(envESPNBaseURL, defaultESPNBaseURL),
		Timeout:    durationEnvOrDefault(envESPNTimeout, defaultESPNTimeout),
		MaxRetries: intEnvOrDefault(envESPNRetries, defaultESPNRetries),
	}
}
