package submission

import (
	"carepulse-service/internal/app/contracts"
	"carepulse-service/internal/pkg/constvars"
	"carepulse-service/internal/pkg/exceptions"
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const releaseTimeout = constvars.BusyReleaseTimeoutInSeconds * time.Second

var (
	submissionGuardInstance contracts.SubmissionGuard
	onceSubmissionGuard     sync.Once
)

type submissionGuard struct {
	Locker  contracts.LockerService
	Log     *zap.Logger
	BusyTTL time.Duration
}

func NewSubmissionGuard(locker contracts.LockerService, logger *zap.Logger, busyTTL time.Duration) contracts.SubmissionGuard {
	onceSubmissionGuard.Do(func() {
		submissionGuardInstance = &submissionGuard{
			Locker:  locker,
			Log:     logger,
			BusyTTL: busyTTL,
		}
	})
	return submissionGuardInstance
}

func busyKey(instanceID string) string {
	return constvars.RedisKeyFormBusyPrefix + instanceID
}

// Acquire marks the form instance busy. The release func is safe to call
// more than once and keeps working after ctx is cancelled.
func (g *submissionGuard) Acquire(ctx context.Context, instanceID string) (func(), error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	key := busyKey(instanceID)

	acquired, owner, err := g.Locker.TryLock(ctx, key, g.BusyTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		g.Log.Info("submissionGuard.Acquire form instance busy",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingFormInstanceIDKey, instanceID),
		)
		return nil, exceptions.ErrSubmissionInProgress(nil, instanceID)
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
			defer cancel()

			if err := g.Locker.Unlock(releaseCtx, key, owner); err != nil {
				g.Log.Error("submissionGuard.release error calling Locker.Unlock",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingFormInstanceIDKey, instanceID),
					zap.Error(err),
				)
			}
		})
	}
	return release, nil
}

func (g *submissionGuard) IsBusy(ctx context.Context, instanceID string) (bool, error) {
	return g.Locker.IsLocked(ctx, busyKey(instanceID))
}
