package providers

import "time"

const (
	// shutdownTimeout is the maximum time to wait for graceful shutdown of services.
	shutdownTimeout = 30 * time.Second

	// gaugeTimeout bounds the store query behind the messages_stored gauge.
	gaugeTimeout = 2 * time.Second
)
