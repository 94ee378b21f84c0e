package config

import "github.com/joho/godotenv"

// Config holds runtime configuration for the server.
type Config struct {
	Port        string
	DataDir     string
	Timezone    string
	Logging     LoggingConfig
	HTTP        HTTPConfig
	Maintenance MaintenanceConfig
	Metrics     MetricsConfig
}

// LoggingConfig controls the process logger.
type LoggingConfig struct {
	Level  string
	Format string
}

// MaintenanceConfig controls the scheduled title renumbering job.
type MaintenanceConfig struct {
	Enabled  bool
	Schedule string // robfig/cron spec, e.g. "@daily" or "0 3 * * *"
}

// Load reads configuration from environment variables with sensible defaults.
// Values from an optional dotenv file fill in variables that are not already set.
func Load() Config {
	loadDotenv(envOrDefault(envDotenvPath, defaultDotenvPath))

	return Config{
		Port:     envOrDefault(envPort, defaultPort),
		DataDir:  envOrDefault(envDataDir, defaultDataDir),
		Timezone: envOrDefault(envTimezone, ""),
		Logging: LoggingConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
		HTTP: loadHTTP(),
		Maintenance: MaintenanceConfig{
			Enabled:  boolEnvOrDefault(envMaintenanceOn, defaultMaintenanceEnabled),
			Schedule: envOrDefault(envMaintenanceSched, defaultMaintenanceSchedule),
		},
		Metrics: loadMetrics(),
	}
}

// loadDotenv never overrides variables already present in the environment.
func loadDotenv(path string) bool {
	if path == "" {
		return false
	}
	return godotenv.Load(path) == nil
}
