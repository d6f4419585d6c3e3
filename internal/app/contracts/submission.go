package contracts

import "context"

// SubmissionGuard is the busy flag of a form instance. Acquire fails while
// another submission of the same instance is in flight; the returned release
// func must be called exactly once.
type SubmissionGuard interface {
	Acquire(ctx context.Context, instanceID string) (release func(), err error)
	IsBusy(ctx context.Context, instanceID string) (bool, error)
}
