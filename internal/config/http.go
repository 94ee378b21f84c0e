package config

import "time"

// HTTPConfig bounds the API server. Zero values fall back to the server defaults.
type HTTPConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

func loadHTTP() HTTPConfig {
	return HTTPConfig{
		ReadTimeout:     durationEnvOrDefault(envHTTPReadTimeout, 0),
		WriteTimeout:    durationEnvOrDefault(envHTTPWriteTimeout, 0),
		IdleTimeout:     durationEnvOrDefault(envHTTPIdleTimeout, 0),
		ShutdownTimeout: durationEnvOrDefault(envShutdownTimeout, 0),
	}
}
