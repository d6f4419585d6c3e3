package forms

import (
	"carepulse-service/internal/pkg/constvars"
	"carepulse-service/internal/pkg/dto/requests"
	"carepulse-service/internal/pkg/dto/responses"
	"carepulse-service/internal/pkg/exceptions"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errBusy = exceptions.ErrSubmissionInProgress(nil, "instance-1")

func validIntake() IntakeSchema {
	return IntakeSchema{Name: "Jane Doe", Email: "jane@example.com", Phone: "+14155552671"}
}

func TestIntakeForm_Submit(t *testing.T) {
	t.Run("passes identity fields unchanged and navigates to registration", func(t *testing.T) {
		identities := new(MockIdentityUsecase)
		guard := newFakeGuard()
		form := &IntakeForm{IdentityUsecase: identities, Guard: guard, Log: zap.NewNop()}

		identities.On("CreateIdentity", mock.Anything, &requests.CreateIdentity{
			Name:  "Jane Doe",
			Email: "jane@example.com",
			Phone: "+14155552671",
		}).Return(&responses.Identity{ID: "u1", Name: "Jane Doe"}, nil).Once()

		effects := &recordingEffects{}
		identity, err := form.Submit(context.Background(), "instance-1", validIntake(), effects)

		require.NoError(t, err)
		assert.Equal(t, "u1", identity.ID)
		assert.Equal(t, []string{"/patients/u1/register"}, effects.navigations)
		assert.Equal(t, 1, guard.released)
		identities.AssertExpectations(t)
	})

	t.Run("invalid input never reaches the backend and releases busy", func(t *testing.T) {
		identities := new(MockIdentityUsecase)
		guard := newFakeGuard()
		form := &IntakeForm{IdentityUsecase: identities, Guard: guard, Log: zap.NewNop()}

		values := validIntake()
		values.Phone = "12345"
		_, err := form.Submit(context.Background(), "instance-1", values, &recordingEffects{})

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
		assert.Contains(t, customErr.Fields, "phone")
		assert.False(t, guard.busy["instance-1"])
		identities.AssertNotCalled(t, "CreateIdentity", mock.Anything, mock.Anything)
	})

	t.Run("backend failure is surfaced and busy is released", func(t *testing.T) {
		identities := new(MockIdentityUsecase)
		guard := newFakeGuard()
		form := &IntakeForm{IdentityUsecase: identities, Guard: guard, Log: zap.NewNop()}

		identities.On("CreateIdentity", mock.Anything, mock.Anything).Return(nil, errors.New("mongo down")).Once()

		effects := &recordingEffects{}
		_, err := form.Submit(context.Background(), "instance-1", validIntake(), effects)

		assert.EqualError(t, err, "mongo down")
		assert.Empty(t, effects.navigations)
		assert.False(t, guard.busy["instance-1"])
		assert.Equal(t, 1, guard.released)
	})

	t.Run("a busy instance rejects a second submit", func(t *testing.T) {
		identities := new(MockIdentityUsecase)
		guard := newFakeGuard()
		guard.busy["instance-1"] = true
		form := &IntakeForm{IdentityUsecase: identities, Guard: guard, Log: zap.NewNop()}

		_, err := form.Submit(context.Background(), "instance-1", validIntake(), &recordingEffects{})

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
		identities.AssertNotCalled(t, "CreateIdentity", mock.Anything, mock.Anything)
	})
}

func TestIntakeForm_View(t *testing.T) {
	form := &IntakeForm{Log: zap.NewNop()}

	view := form.View("token", false, IntakeSchema{Email: "jane@example.com"})

	assert.Equal(t, constvars.FormKindIntake, view.Kind)
	assert.Equal(t, []string{"name", "email", "phone"}, view.FieldNames())
	assert.Equal(t, "jane@example.com", view.Sections[0].Fields[1].Value)
	assert.Equal(t, constvars.ButtonLabelGetStarted, view.Submit.Label)
	assert.True(t, view.Submit.Accepts())

	busy := form.View("token", true, IntakeSchema{})
	assert.False(t, busy.Submit.Accepts())
}
