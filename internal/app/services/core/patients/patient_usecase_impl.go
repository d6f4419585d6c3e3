package patients

import (
	"carepulse-service/internal/app/config"
	"carepulse-service/internal/app/contracts"
	"carepulse-service/internal/app/models"
	"carepulse-service/internal/pkg/constvars"
	"carepulse-service/internal/pkg/dto/requests"
	"carepulse-service/internal/pkg/dto/responses"
	"carepulse-service/internal/pkg/exceptions"
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const documentCleanupTimeout = 5 * time.Second

type patientUsecase struct {
	PatientRepository contracts.PatientRepository
	MinioStorage      contracts.Storage
	InternalConfig    *config.InternalConfig
	Log               *zap.Logger
}

var (
	patientUsecaseInstance contracts.PatientUsecase
	oncePatientUsecase     sync.Once
)

func NewPatientUsecase(
	patientRepository contracts.PatientRepository,
	minioStorage contracts.Storage,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PatientUsecase {
	oncePatientUsecase.Do(func() {
		patientUsecaseInstance = &patientUsecase{
			PatientRepository: patientRepository,
			MinioStorage:      minioStorage,
			InternalConfig:    internalConfig,
			Log:               logger,
		}
	})
	return patientUsecaseInstance
}

func (uc *patientUsecase) CreateProfile(ctx context.Context, request *requests.CreateProfile) (*responses.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.CreateProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, request.UserID),
	)

	existing, err := uc.PatientRepository.FindByUserID(ctx, request.UserID)
	if err != nil {
		uc.Log.Error("patientUsecase.CreateProfile error calling PatientRepository.FindByUserID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrPatientAlreadyRegistered(nil, request.UserID)
	}

	entityPatient := buildPatientModel(request)

	if request.Document != nil {
		objectName, err := uc.uploadIdentificationDocument(ctx, request.Document)
		if err != nil {
			return nil, err
		}
		entityPatient.IdentificationDocumentID = objectName
	}

	patientID, err := uc.PatientRepository.CreatePatient(ctx, entityPatient)
	if err != nil {
		uc.Log.Error("patientUsecase.CreateProfile error calling PatientRepository.CreatePatient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if entityPatient.IdentificationDocumentID != "" {
			uc.removeIdentificationDocument(ctx, entityPatient.IdentificationDocumentID)
		}
		return nil, err
	}
	entityPatient.ID = patientID

	uc.Log.Info("patientUsecase.CreateProfile succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)
	return uc.toPatientResponse(ctx, entityPatient), nil
}

func (uc *patientUsecase) FindByUserID(ctx context.Context, userID string) (*responses.Patient, error) {
	patient, err := uc.PatientRepository.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, nil
	}
	return uc.toPatientResponse(ctx, patient), nil
}

func (uc *patientUsecase) uploadIdentificationDocument(ctx context.Context, document *requests.DocumentPayload) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	bucketName := uc.InternalConfig.Minio.BucketName

	objectName, err := uc.MinioStorage.UploadFile(ctx, document.Content, document.ContentType, document.FileName, bucketName)
	if err != nil {
		uc.Log.Error("patientUsecase.uploadIdentificationDocument error calling MinioStorage.UploadFile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBucketNameKey, bucketName),
			zap.String(constvars.LoggingFileNameKey, document.FileName),
			zap.Error(err),
		)
		return "", err
	}

	uc.Log.Info("patientUsecase.uploadIdentificationDocument succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectNameKey, objectName),
		zap.Int64(constvars.LoggingFileSizeKey, document.Size),
	)
	return objectName, nil
}

// removeIdentificationDocument deletes an upload whose profile was never stored.
// It keeps running after the request context is cancelled.
func (uc *patientUsecase) removeIdentificationDocument(ctx context.Context, objectName string) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	bucketName := uc.InternalConfig.Minio.BucketName

	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), documentCleanupTimeout)
	defer cancel()

	if err := uc.MinioStorage.DeleteFile(cleanupCtx, bucketName, objectName); err != nil {
		uc.Log.Error("patientUsecase.removeIdentificationDocument error calling MinioStorage.DeleteFile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBucketNameKey, bucketName),
			zap.String(constvars.LoggingObjectNameKey, objectName),
			zap.Error(err),
		)
		return
	}

	uc.Log.Info("patientUsecase.removeIdentificationDocument succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectNameKey, objectName),
	)
}

// documentURL presigns a fresh download link for the stored document.
func (uc *patientUsecase) documentURL(ctx context.Context, objectName string) string {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	bucketName := uc.InternalConfig.Minio.BucketName
	expiry := time.Duration(uc.InternalConfig.Minio.PreSignedUrlObjectExpiryTimeInHours) * time.Hour

	url, err := uc.MinioStorage.GetObjectUrlWithExpiryTime(ctx, bucketName, objectName, expiry)
	if err != nil {
		uc.Log.Warn("patientUsecase.documentURL error calling MinioStorage.GetObjectUrlWithExpiryTime",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectNameKey, objectName),
			zap.Error(err),
		)
		return ""
	}
	return url
}

func buildPatientModel(request *requests.CreateProfile) *models.Patient {
	entityPatient := &models.Patient{
		UserID:                 request.UserID,
		Name:                   request.Name,
		Email:                  request.Email,
		Phone:                  request.Phone,
		BirthDate:              request.BirthDate,
		Gender:                 request.Gender,
		Address:                request.Address,
		Occupation:             request.Occupation,
		EmergencyContactName:   request.EmergencyContactName,
		EmergencyContactNumber: request.EmergencyContactNumber,
		PrimaryPhysician:       request.PrimaryPhysician,
		InsuranceProvider:      request.InsuranceProvider,
		InsurancePolicyNumber:  request.InsurancePolicyNumber,
		Allergies:              request.Allergies,
		CurrentMedication:      request.CurrentMedication,
		FamilyMedicalHistory:   request.FamilyMedicalHistory,
		PastMedicalHistory:     request.PastMedicalHistory,
		IdentificationType:     request.IdentificationType,
		IdentificationNumber:   request.IdentificationNumber,
		TreatmentConsent:       request.TreatmentConsent,
		DisclosureConsent:      request.DisclosureConsent,
		PrivacyConsent:         request.PrivacyConsent,
	}
	entityPatient.SetCreatedAt()
	return entityPatient
}

func (uc *patientUsecase) toPatientResponse(ctx context.Context, patient *models.Patient) *responses.Patient {
	response := &responses.Patient{
		ID:                       patient.ID,
		UserID:                   patient.UserID,
		Name:                     patient.Name,
		Email:                    patient.Email,
		Phone:                    patient.Phone,
		BirthDate:                patient.BirthDate,
		Gender:                   patient.Gender,
		PrimaryPhysician:         patient.PrimaryPhysician,
		IdentificationType:       patient.IdentificationType,
		IdentificationDocumentID: patient.IdentificationDocumentID,
		CreatedAt:                patient.CreatedAt,
	}
	if patient.IdentificationDocumentID != "" {
		response.IdentificationDocumentURL = uc.documentURL(ctx, patient.IdentificationDocumentID)
	}
	return response
}
