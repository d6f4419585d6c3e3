package contracts

import (
	"carepulse-service/internal/app/models"
	"carepulse-service/internal/pkg/dto/requests"
	"carepulse-service/internal/pkg/dto/responses"
	"context"
)

type IdentityUsecase interface {
	CreateIdentity(ctx context.Context, request *requests.CreateIdentity) (*responses.Identity, error)
	FindByID(ctx context.Context, userID string) (*responses.Identity, error)
}

type IdentityRepository interface {
	CreateIdentity(ctx context.Context, entityIdentity *models.Identity) (string, error)
	FindByID(ctx context.Context, identityID string) (*models.Identity, error)
	FindByEmail(ctx context.Context, email string) (*models.Identity, error)
}

// IndexEnsurer is implemented by repositories that own collection indexes.
type IndexEnsurer interface {
	EnsureIndexes(ctx context.Context) error
}
