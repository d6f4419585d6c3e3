package forms

import (
	"carepulse-service/internal/app/models"
	"carepulse-service/internal/pkg/constvars"
	"carepulse-service/internal/pkg/dto/requests"
	"carepulse-service/internal/pkg/dto/responses"
	"carepulse-service/internal/pkg/exceptions"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func bookingValues() AppointmentValues {
	return AppointmentValues{
		PrimaryPhysician: "Leila Cameron",
		Schedule:         "2026-11-02T09:30:00Z",
		Reason:           "Annual check-up",
		Note:             "Prefers mornings",
	}
}

func TestAppointmentModes(t *testing.T) {
	tests := []struct {
		mode    string
		label   string
		status  models.AppointmentStatus
		variant ButtonVariant
		fields  []string
	}{
		{constvars.AppointmentModeCreate, "Create Appointment", models.AppointmentStatusPending, ButtonVariantPrimary, []string{"primaryPhysician", "reason", "note", "schedule"}},
		{constvars.AppointmentModeSchedule, "Schedule Appointment", models.AppointmentStatusScheduled, ButtonVariantPrimary, []string{"primaryPhysician", "reason", "note", "schedule"}},
		{constvars.AppointmentModeCancel, "Cancel Appointment", models.AppointmentStatusCancelled, ButtonVariantDanger, []string{"cancellationReason"}},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			mode, err := ParseAppointmentMode(tt.mode)
			require.NoError(t, err)

			assert.Equal(t, tt.mode, mode.Name())
			assert.Equal(t, tt.label, mode.ButtonLabel())
			assert.Equal(t, tt.status, mode.Status())
			assert.Equal(t, tt.variant, mode.Variant())

			var names []string
			for _, field := range mode.Fields(AppointmentValues{}) {
				names = append(names, field.Name)
			}
			assert.Equal(t, tt.fields, names)
		})
	}

	t.Run("unknown mode is rejected", func(t *testing.T) {
		_, err := ParseAppointmentMode("reschedule")

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})
}

func TestSchemaFor(t *testing.T) {
	t.Run("each mode gets its own schema type", func(t *testing.T) {
		schema, err := SchemaFor(CreateMode{}, bookingValues())
		require.NoError(t, err)
		assert.IsType(t, CreateAppointmentSchema{}, schema)

		schema, err = SchemaFor(ScheduleMode{}, bookingValues())
		require.NoError(t, err)
		assert.IsType(t, ScheduleAppointmentSchema{}, schema)

		schema, err = SchemaFor(CancelMode{}, AppointmentValues{CancellationReason: "Feeling better"})
		require.NoError(t, err)
		assert.IsType(t, CancelAppointmentSchema{}, schema)
	})

	t.Run("cancel does not require a physician or schedule", func(t *testing.T) {
		_, err := SchemaFor(CancelMode{}, AppointmentValues{CancellationReason: "Travelling"})
		assert.NoError(t, err)
	})

	t.Run("cancel requires a reason", func(t *testing.T) {
		_, err := SchemaFor(CancelMode{}, bookingValues())

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Contains(t, customErr.Fields, "cancellationReason")
	})

	t.Run("create requires physician, schedule and reason", func(t *testing.T) {
		_, err := SchemaFor(CreateMode{}, AppointmentValues{CancellationReason: "ignored"})

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Contains(t, customErr.Fields, "primaryPhysician")
		assert.Contains(t, customErr.Fields, "schedule")
		assert.Contains(t, customErr.Fields, "reason")
	})

	t.Run("datetime-local schedule is accepted", func(t *testing.T) {
		values := bookingValues()
		values.Schedule = "2026-11-02T09:30"

		schema, err := SchemaFor(ScheduleMode{}, values)

		require.NoError(t, err)
		assert.Equal(t, 9, schema.(ScheduleAppointmentSchema).Schedule.Hour())
	})
}

func TestAppointmentForm_Submit(t *testing.T) {
	t.Run("create navigates to success with the appointment id and closes the modal", func(t *testing.T) {
		appointments := new(MockAppointmentUsecase)
		guard := newFakeGuard()
		form := &AppointmentForm{AppointmentUsecase: appointments, Guard: guard, Log: zap.NewNop()}

		appointments.On("CreateAppointment", mock.Anything, mock.MatchedBy(func(request *requests.CreateAppointment) bool {
			return request.UserID == "u1" &&
				request.PatientID == "p1" &&
				request.PrimaryPhysician == "Leila Cameron" &&
				request.Status == models.AppointmentStatusPending &&
				request.Reason == "Annual check-up"
		})).Return(&responses.Appointment{ID: "abc123", Status: "pending"}, nil).Once()

		effects := &recordingEffects{}
		target := AppointmentTarget{InstanceID: "i1", UserID: "u1", PatientID: "p1", Mode: CreateMode{}}
		appointment, err := form.Submit(context.Background(), target, bookingValues(), effects)

		require.NoError(t, err)
		assert.Equal(t, "abc123", appointment.ID)
		assert.Equal(t, []string{"/patients/u1/new-appointment/success?appointmentId=abc123"}, effects.navigations)
		assert.Equal(t, []bool{false}, effects.modal)
		assert.Equal(t, 1, effects.resets)
		appointments.AssertExpectations(t)
	})

	t.Run("schedule updates and only closes the modal", func(t *testing.T) {
		appointments := new(MockAppointmentUsecase)
		form := &AppointmentForm{AppointmentUsecase: appointments, Guard: newFakeGuard(), Log: zap.NewNop()}

		appointments.On("UpdateAppointment", mock.Anything, mock.MatchedBy(func(request *requests.UpdateAppointment) bool {
			update := request.Update
			return request.AppointmentID == "a1" &&
				request.Type == constvars.AppointmentModeSchedule &&
				update.Status == models.AppointmentStatusScheduled &&
				update.PrimaryPhysician != nil && *update.PrimaryPhysician == "Leila Cameron" &&
				update.Schedule != nil && update.Schedule.Equal(time.Date(2026, 11, 2, 9, 30, 0, 0, time.UTC)) &&
				update.CancellationReason == nil
		})).Return(&responses.Appointment{ID: "a1", Status: "scheduled"}, nil).Once()

		effects := &recordingEffects{}
		target := AppointmentTarget{InstanceID: "i2", UserID: "u1", AppointmentID: "a1", Mode: ScheduleMode{}}
		_, err := form.Submit(context.Background(), target, bookingValues(), effects)

		require.NoError(t, err)
		assert.Empty(t, effects.navigations)
		assert.Equal(t, []bool{false}, effects.modal)
		assert.Zero(t, effects.resets)
		appointments.AssertExpectations(t)
	})

	t.Run("cancel carries only status and reason", func(t *testing.T) {
		appointments := new(MockAppointmentUsecase)
		form := &AppointmentForm{AppointmentUsecase: appointments, Guard: newFakeGuard(), Log: zap.NewNop()}

		appointments.On("UpdateAppointment", mock.Anything, mock.MatchedBy(func(request *requests.UpdateAppointment) bool {
			update := request.Update
			return request.Type == constvars.AppointmentModeCancel &&
				update.Status == models.AppointmentStatusCancelled &&
				update.CancellationReason != nil && *update.CancellationReason == "Feeling better" &&
				update.PrimaryPhysician == nil &&
				update.Schedule == nil &&
				update.Reason == nil &&
				update.Note == nil
		})).Return(&responses.Appointment{ID: "a1", Status: "cancelled"}, nil).Once()

		effects := &recordingEffects{}
		values := bookingValues()
		values.CancellationReason = "Feeling better"
		target := AppointmentTarget{InstanceID: "i3", UserID: "u1", AppointmentID: "a1", Mode: CancelMode{}}
		_, err := form.Submit(context.Background(), target, values, effects)

		require.NoError(t, err)
		assert.Empty(t, effects.navigations)
		assert.Equal(t, []bool{false}, effects.modal)
		appointments.AssertExpectations(t)
	})

	t.Run("failure releases busy and leaves the modal open", func(t *testing.T) {
		appointments := new(MockAppointmentUsecase)
		guard := newFakeGuard()
		form := &AppointmentForm{AppointmentUsecase: appointments, Guard: guard, Log: zap.NewNop()}

		appointments.On("CreateAppointment", mock.Anything, mock.Anything).Return(nil, errors.New("insert failed")).Once()

		effects := &recordingEffects{}
		target := AppointmentTarget{InstanceID: "i4", UserID: "u1", PatientID: "p1", Mode: CreateMode{}}
		_, err := form.Submit(context.Background(), target, bookingValues(), effects)

		assert.EqualError(t, err, "insert failed")
		assert.Empty(t, effects.modal)
		assert.Empty(t, effects.navigations)
		assert.False(t, guard.busy["i4"])
		assert.Equal(t, 1, guard.released)

		// the instance accepts a retry
		appointments.On("CreateAppointment", mock.Anything, mock.Anything).Return(&responses.Appointment{ID: "abc123"}, nil).Once()
		_, err = form.Submit(context.Background(), target, bookingValues(), effects)
		assert.NoError(t, err)
	})

	t.Run("a busy instance rejects a second submit", func(t *testing.T) {
		appointments := new(MockAppointmentUsecase)
		guard := newFakeGuard()
		guard.busy["i5"] = true
		form := &AppointmentForm{AppointmentUsecase: appointments, Guard: guard, Log: zap.NewNop()}

		target := AppointmentTarget{InstanceID: "i5", UserID: "u1", Mode: CreateMode{}}
		_, err := form.Submit(context.Background(), target, bookingValues(), &recordingEffects{})

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
		appointments.AssertNotCalled(t, "CreateAppointment", mock.Anything, mock.Anything)
	})
}

func TestDefaultAppointmentValues(t *testing.T) {
	now := time.Date(2026, 10, 18, 14, 5, 0, 0, time.Local)
	assert.Equal(t, "2026-10-18T14:05", DefaultAppointmentValues(nil, now).Schedule)

	stored := &responses.Appointment{PrimaryPhysician: "Evan Peter", Reason: "Follow-up", Schedule: now, CancellationReason: "n/a"}
	values := DefaultAppointmentValues(stored, time.Time{})
	assert.Equal(t, "Evan Peter", values.PrimaryPhysician)
	assert.Equal(t, "Follow-up", values.Reason)
	assert.Equal(t, "2026-10-18T14:05", values.Schedule)
}
