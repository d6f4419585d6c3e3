package contracts

import (
	"carepulse-service/internal/app/models"
	"carepulse-service/internal/pkg/dto/requests"
	"carepulse-service/internal/pkg/dto/responses"
	"context"
)

type PatientUsecase interface {
	CreateProfile(ctx context.Context, request *requests.CreateProfile) (*responses.Patient, error)
	FindByUserID(ctx context.Context, userID string) (*responses.Patient, error)
}

type PatientRepository interface {
	CreatePatient(ctx context.Context, entityPatient *models.Patient) (string, error)
	FindByUserID(ctx context.Context, userID string) (*models.Patient, error)
}
