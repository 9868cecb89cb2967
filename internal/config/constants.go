package config

import "time"

const (
	envPort            = "PORT"
	envSource          = "SOURCE"
	envActiveLeagues   = "ACTIVE_LEAGUES"
	envLeaguesFile     = "LEAGUES_FILE"
	envRefreshInterval = "REFRESH_INTERVAL"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort   = "4000"
	defaultSource = "espn"
	// Live scores update on the upstream roughly once a minute; refreshing
	// faster mostly burns quota.
	defaultRefreshInterval = Duration(time.Minute)
	defaultMetricsPort     = "9090"
)

func defaultActiveLeagues() []string {
	return []string{"nfl", "ncaaf", "ncaam", "nba"}
}
