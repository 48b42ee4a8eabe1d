package implementation

import (
	"context"
	"time"
)

const defaultQueryTimeout = 5 * time.Second

// Collection and table names shared by both stores
const (
	devicesCollection  = "devices"
	readingsCollection = "readings"
	usersCollection    = "users"
)

func queryTimeout(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return defaultQueryTimeout
	}
	return timeout
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, queryTimeout(timeout))
}

