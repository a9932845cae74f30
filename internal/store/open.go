package store

import (
	"context"

	"go.uber.org/zap"
)

// Open returns a retrying Postgres store when databaseURL is set and an
// in-memory store otherwise. The returned func releases the connections.
func Open(ctx context.Context, databaseURL string, logger *zap.Logger) (Store, func(), error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if databaseURL == "" {
		logger.Info("using in-memory store")
		return NewMemoryStore(), func() {}, nil
	}

	pg, pool, err := OpenPostgres(ctx, databaseURL)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("connected to postgres store")

	return WithRetry(pg, DefaultRetryPolicy(), logger), pool.Close, nil
}
