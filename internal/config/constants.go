package config

const (
	envPort             = "PORT"
	envDataDir          = "DATA_DIR"
	envTimezone         = "TEAM_TIMEZONE"
	envDotenvPath       = "DOTENV_PATH"
	envMaintenanceOn    = "MAINTENANCE_ENABLED"
	envMaintenanceSched = "MAINTENANCE_SCHEDULE"
	envMetricsPort      = "METRICS_PORT"
	envMetricsOn        = "METRICS_ENABLED"
	envOtelEndpoint     = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService      = "OTEL_SERVICE_NAME"
	envOtelInsecure     = "OTEL_EXPORTER_OTLP_INSECURE"
	envLogLevel         = "LOG_LEVEL"
	envLogFormat        = "LOG_FORMAT"
	envHTTPReadTimeout  = "HTTP_READ_TIMEOUT"
	envHTTPWriteTimeout = "HTTP_WRITE_TIMEOUT"
	envHTTPIdleTimeout  = "HTTP_IDLE_TIMEOUT"
	envShutdownTimeout  = "SHUTDOWN_TIMEOUT"

	defaultPort                = "4000"
	defaultDataDir             = "data"
	defaultDotenvPath          = ".env"
	defaultMetricsPort         = "9090"
	defaultServiceName         = "team-ledger"
	defaultMaintenanceSchedule = "@daily"
	defaultMaintenanceEnabled  = true
	defaultLogLevel            = "info"
	defaultLogFormat           = "text"
)
