package database

import (
	"carepulse-service/internal/app/contracts"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// EnsureIndexes creates the indexes of every repository that owns some.
// Repositories without indexes are skipped.
func EnsureIndexes(ctx context.Context, logger *zap.Logger, repositories ...interface{}) error {
	for _, repository := range repositories {
		ensurer, ok := repository.(contracts.IndexEnsurer)
		if !ok {
			continue
		}
		if err := ensurer.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("ensure indexes for %T: %w", repository, err)
		}
		logger.Info("Indexes ensured", zap.String("repository", fmt.Sprintf("%T", repository)))
	}
	return nil
}
