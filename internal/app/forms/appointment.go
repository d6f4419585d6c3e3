package forms

import (
	"carepulse-service/internal/app/contracts"
	"carepulse-service/internal/pkg/constvars"
	"carepulse-service/internal/pkg/dto/requests"
	"carepulse-service/internal/pkg/dto/responses"
	"carepulse-service/internal/pkg/exceptions"
	"carepulse-service/internal/pkg/utils"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// AppointmentTarget is everything bound to an appointment form instance when
// it was issued.
type AppointmentTarget struct {
	InstanceID    string
	UserID        string
	PatientID     string
	AppointmentID string
	Mode          AppointmentMode
}

type AppointmentForm struct {
	AppointmentUsecase contracts.AppointmentUsecase
	Guard              contracts.SubmissionGuard
	Log                *zap.Logger
}

func NewAppointmentForm(appointmentUsecase contracts.AppointmentUsecase, guard contracts.SubmissionGuard, logger *zap.Logger) *AppointmentForm {
	return &AppointmentForm{
		AppointmentUsecase: appointmentUsecase,
		Guard:              guard,
		Log:                logger,
	}
}

// DefaultAppointmentValues pre-fills a form from the stored appointment.
// Without one the schedule defaults to now.
func DefaultAppointmentValues(appointment *responses.Appointment, now time.Time) AppointmentValues {
	if appointment == nil {
		return AppointmentValues{
			Schedule: now.In(time.Local).Format(constvars.ScheduleDateTimeLayout),
		}
	}
	return AppointmentValues{
		PrimaryPhysician:   appointment.PrimaryPhysician,
		Schedule:           appointment.Schedule.In(time.Local).Format(constvars.ScheduleDateTimeLayout),
		Reason:             appointment.Reason,
		Note:               appointment.Note,
		CancellationReason: appointment.CancellationReason,
	}
}

func (f *AppointmentForm) View(token string, busy bool, mode AppointmentMode, values AppointmentValues) View {
	view := View{
		Kind:     constvars.FormKindAppointment,
		Mode:     mode.Name(),
		Token:    token,
		Enctype:  constvars.MIMEApplicationForm,
		Sections: []Section{{Fields: mode.Fields(values)}},
		Submit:   NewSubmitButton(mode.ButtonLabel(), busy, mode.Variant()),
	}
	if _, ok := mode.(CreateMode); ok {
		view.Title = "New Appointment 👋"
		view.Description = "Request a new appointment in 10 seconds."
	}
	return view
}

func (f *AppointmentForm) Submit(ctx context.Context, target AppointmentTarget, values AppointmentValues, effects SubmitEffects) (*responses.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	if target.Mode == nil {
		return nil, exceptions.ErrUnknownAppointmentMode(errors.New("form instance has no mode"), "")
	}
	f.Log.Info("AppointmentForm.Submit called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFormInstanceIDKey, target.InstanceID),
		zap.String(constvars.LoggingFormModeKey, target.Mode.Name()),
		zap.String(constvars.LoggingUserIDKey, target.UserID),
	)

	release, err := f.Guard.Acquire(ctx, target.InstanceID)
	if err != nil {
		return nil, err
	}
	defer release()

	schema, err := SchemaFor(target.Mode, values)
	if err != nil {
		f.Log.Info("AppointmentForm.Submit rejected invalid input",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	status := target.Mode.Status()

	var appointment *responses.Appointment
	switch schema := schema.(type) {
	case CreateAppointmentSchema:
		appointment, err = f.AppointmentUsecase.CreateAppointment(ctx, &requests.CreateAppointment{
			UserID:           target.UserID,
			PatientID:        target.PatientID,
			PrimaryPhysician: schema.PrimaryPhysician,
			Schedule:         schema.Schedule,
			Reason:           schema.Reason,
			Note:             schema.Note,
			Status:           status,
		})
		if err != nil {
			f.Log.Error("AppointmentForm.Submit error calling AppointmentUsecase.CreateAppointment",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}
		effects.ResetFields()
		effects.NavigateTo(fmt.Sprintf(constvars.PathAppointmentSuccessFormat, target.UserID, appointment.ID))
		effects.SetOpen(false)

	case ScheduleAppointmentSchema:
		appointment, err = f.update(ctx, target, requests.AppointmentUpdate{
			PrimaryPhysician: &schema.PrimaryPhysician,
			Schedule:         &schema.Schedule,
			Reason:           &schema.Reason,
			Note:             &schema.Note,
			Status:           status,
		})
		if err != nil {
			return nil, err
		}
		effects.SetOpen(false)

	case CancelAppointmentSchema:
		appointment, err = f.update(ctx, target, requests.AppointmentUpdate{
			Status:             status,
			CancellationReason: &schema.CancellationReason,
		})
		if err != nil {
			return nil, err
		}
		effects.SetOpen(false)
	}

	utils.LogFormEvent(f.Log, "appointment_submitted", requestID,
		zap.String(constvars.LoggingFormInstanceIDKey, target.InstanceID),
		zap.String(constvars.LoggingFormModeKey, target.Mode.Name()),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.String(constvars.LoggingAppointmentStatusKey, status.String()),
	)
	return appointment, nil
}

func (f *AppointmentForm) update(ctx context.Context, target AppointmentTarget, update requests.AppointmentUpdate) (*responses.Appointment, error) {
	appointment, err := f.AppointmentUsecase.UpdateAppointment(ctx, &requests.UpdateAppointment{
		UserID:        target.UserID,
		AppointmentID: target.AppointmentID,
		Update:        update,
		Type:          target.Mode.Name(),
	})
	if err != nil {
		f.Log.Error("AppointmentForm.Submit error calling AppointmentUsecase.UpdateAppointment",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingAppointmentIDKey, target.AppointmentID),
			zap.Error(err),
		)
		return nil, err
	}
	return appointment, nil
}
