package appointments

import (
	"carepulse-service/internal/app/contracts"
	"carepulse-service/internal/app/models"
	"carepulse-service/internal/pkg/constvars"
	"carepulse-service/internal/pkg/dto/requests"
	"carepulse-service/internal/pkg/dto/responses"
	"carepulse-service/internal/pkg/exceptions"
	"carepulse-service/internal/pkg/utils"
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

type appointmentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	IdentityRepository    contracts.IdentityRepository
	NotificationPublisher contracts.NotificationPublisher
	Log                   *zap.Logger
}

var (
	appointmentUsecaseInstance contracts.AppointmentUsecase
	onceAppointmentUsecase     sync.Once
)

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	identityRepository contracts.IdentityRepository,
	notificationPublisher contracts.NotificationPublisher,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	onceAppointmentUsecase.Do(func() {
		appointmentUsecaseInstance = &appointmentUsecase{
			AppointmentRepository: appointmentRepository,
			IdentityRepository:    identityRepository,
			NotificationPublisher: notificationPublisher,
			Log:                   logger,
		}
	})
	return appointmentUsecaseInstance
}

func (uc *appointmentUsecase) CreateAppointment(ctx context.Context, request *requests.CreateAppointment) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CreateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, request.UserID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
	)

	entityAppointment := &models.Appointment{
		UserID:           request.UserID,
		PatientID:        request.PatientID,
		PrimaryPhysician: request.PrimaryPhysician,
		Schedule:         request.Schedule,
		Reason:           request.Reason,
		Note:             request.Note,
		Status:           request.Status,
	}
	entityAppointment.SetCreatedAt()

	appointmentID, err := uc.AppointmentRepository.CreateAppointment(ctx, entityAppointment)
	if err != nil {
		uc.Log.Error("appointmentUsecase.CreateAppointment error calling AppointmentRepository.CreateAppointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	entityAppointment.ID = appointmentID

	uc.Log.Info("appointmentUsecase.CreateAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingAppointmentStatusKey, entityAppointment.Status.String()),
	)
	return toAppointmentResponse(entityAppointment), nil
}

func (uc *appointmentUsecase) UpdateAppointment(ctx context.Context, request *requests.UpdateAppointment) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.UpdateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
		zap.String(constvars.LoggingFormModeKey, request.Type),
	)

	if _, err := uc.findOwnedAppointment(ctx, request.AppointmentID, request.UserID); err != nil {
		return nil, err
	}

	updated, err := uc.AppointmentRepository.UpdateAppointment(ctx, request.AppointmentID, buildUpdateDocument(request.Update))
	if err != nil {
		uc.Log.Error("appointmentUsecase.UpdateAppointment error calling AppointmentRepository.UpdateAppointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if updated == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil, request.AppointmentID)
	}

	uc.notifyPatient(ctx, request.Type, updated)

	uc.Log.Info("appointmentUsecase.UpdateAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, updated.ID),
		zap.String(constvars.LoggingAppointmentStatusKey, updated.Status.String()),
	)
	return toAppointmentResponse(updated), nil
}

func (uc *appointmentUsecase) FindByID(ctx context.Context, request *requests.FindAppointment) (*responses.Appointment, error) {
	appointment, err := uc.findOwnedAppointment(ctx, request.AppointmentID, request.UserID)
	if err != nil {
		return nil, err
	}
	return toAppointmentResponse(appointment), nil
}

func (uc *appointmentUsecase) findOwnedAppointment(ctx context.Context, appointmentID, userID string) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.findOwnedAppointment error calling AppointmentRepository.FindByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil, appointmentID)
	}
	if appointment.UserID != userID {
		return nil, exceptions.ErrAppointmentOwnerMismatch(nil, appointmentID, userID)
	}
	return appointment, nil
}

// notifyPatient queues the SMS for schedule and cancel updates. Failures are
// logged only; the appointment is already updated.
func (uc *appointmentUsecase) notifyPatient(ctx context.Context, mode string, appointment *models.Appointment) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	var content string
	switch mode {
	case constvars.AppointmentModeSchedule:
		content = fmt.Sprintf("Greetings from CarePulse. Your appointment is confirmed for %s with Dr. %s",
			utils.FormatNotificationTime(appointment.Schedule), appointment.PrimaryPhysician)
	case constvars.AppointmentModeCancel:
		content = fmt.Sprintf("We regret to inform that your appointment for %s is cancelled. Reason: %s",
			utils.FormatNotificationTime(appointment.Schedule), appointment.CancellationReason)
	default:
		return
	}

	identity, err := uc.IdentityRepository.FindByID(ctx, appointment.UserID)
	if err != nil || identity == nil {
		uc.Log.Warn("appointmentUsecase.notifyPatient recipient not found",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUserIDKey, appointment.UserID),
			zap.Error(err),
		)
		return
	}

	err = uc.NotificationPublisher.PublishSMS(ctx, &requests.SMSNotification{
		Type:      mode,
		UserID:    appointment.UserID,
		Phone:     identity.Phone,
		Content:   content,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		uc.Log.Error("appointmentUsecase.notifyPatient error calling NotificationPublisher.PublishSMS",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
	}
}

func buildUpdateDocument(update requests.AppointmentUpdate) map[string]interface{} {
	document := map[string]interface{}{
		"status":    update.Status,
		"updatedAt": time.Now(),
	}
	if update.PrimaryPhysician != nil {
		document["primaryPhysician"] = *update.PrimaryPhysician
	}
	if update.Schedule != nil {
		document["schedule"] = *update.Schedule
	}
	if update.Reason != nil {
		document["reason"] = *update.Reason
	}
	if update.Note != nil {
		document["note"] = *update.Note
	}
	if update.CancellationReason != nil {
		document["cancellationReason"] = *update.CancellationReason
	}
	return document
}

func toAppointmentResponse(appointment *models.Appointment) *responses.Appointment {
	return &responses.Appointment{
		ID:                 appointment.ID,
		UserID:             appointment.UserID,
		PatientID:          appointment.PatientID,
		PrimaryPhysician:   appointment.PrimaryPhysician,
		Schedule:           appointment.Schedule,
		Reason:             appointment.Reason,
		Note:               appointment.Note,
		Status:             appointment.Status.String(),
		CancellationReason: appointment.CancellationReason,
		CreatedAt:          appointment.CreatedAt,
		UpdatedAt:          appointment.UpdatedAt,
	}
}
