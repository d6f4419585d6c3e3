package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeEnsurer struct {
	calls int
	err   error
}

func (f *fakeEnsurer) EnsureIndexes(ctx context.Context) error {
	f.calls++
	return f.err
}

func TestEnsureIndexes(t *testing.T) {
	first, second := &fakeEnsurer{}, &fakeEnsurer{}

	err := EnsureIndexes(context.Background(), zap.NewNop(), first, "not a repository", second)

	assert.NoError(t, err)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)

	failing := &fakeEnsurer{err: errors.New("duplicate values")}
	err = EnsureIndexes(context.Background(), zap.NewNop(), failing, first)

	assert.ErrorContains(t, err, "duplicate values")
	assert.Equal(t, 1, first.calls)
}
