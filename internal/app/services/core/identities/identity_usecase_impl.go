package identities

import (
	"carepulse-service/internal/app/contracts"
	"carepulse-service/internal/app/models"
	"carepulse-service/internal/pkg/constvars"
	"carepulse-service/internal/pkg/dto/requests"
	"carepulse-service/internal/pkg/dto/responses"
	"carepulse-service/internal/pkg/exceptions"
	"context"
	"sync"

	"go.uber.org/zap"
)

type identityUsecase struct {
	IdentityRepository contracts.IdentityRepository
	Log                *zap.Logger
}

var (
	identityUsecaseInstance contracts.IdentityUsecase
	onceIdentityUsecase     sync.Once
)

func NewIdentityUsecase(identityRepository contracts.IdentityRepository, logger *zap.Logger) contracts.IdentityUsecase {
	onceIdentityUsecase.Do(func() {
		identityUsecaseInstance = &identityUsecase{
			IdentityRepository: identityRepository,
			Log:                logger,
		}
	})
	return identityUsecaseInstance
}

// CreateIdentity returns the stored identity when the email is already
// known, so a returning patient keeps the same user id.
func (uc *identityUsecase) CreateIdentity(ctx context.Context, request *requests.CreateIdentity) (*responses.Identity, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("identityUsecase.CreateIdentity called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEmailKey, request.Email),
	)

	existing, err := uc.IdentityRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		uc.Log.Error("identityUsecase.CreateIdentity error calling IdentityRepository.FindByEmail",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if existing != nil {
		uc.Log.Info("identityUsecase.CreateIdentity identity already exists",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUserIDKey, existing.ID),
		)
		return toIdentityResponse(existing), nil
	}

	entityIdentity := &models.Identity{
		Name:  request.Name,
		Email: request.Email,
		Phone: request.Phone,
	}
	entityIdentity.SetCreatedAt()

	identityID, err := uc.IdentityRepository.CreateIdentity(ctx, entityIdentity)
	if err != nil {
		uc.Log.Error("identityUsecase.CreateIdentity error calling IdentityRepository.CreateIdentity",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	entityIdentity.ID = identityID

	uc.Log.Info("identityUsecase.CreateIdentity succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, identityID),
	)
	return toIdentityResponse(entityIdentity), nil
}

func (uc *identityUsecase) FindByID(ctx context.Context, userID string) (*responses.Identity, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	identity, err := uc.IdentityRepository.FindByID(ctx, userID)
	if err != nil {
		uc.Log.Error("identityUsecase.FindByID error calling IdentityRepository.FindByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUserIDKey, userID),
			zap.Error(err),
		)
		return nil, err
	}
	if identity == nil {
		return nil, exceptions.ErrIdentityNotFound(nil, userID)
	}
	return toIdentityResponse(identity), nil
}

func toIdentityResponse(identity *models.Identity) *responses.Identity {
	return &responses.Identity{
		ID:        identity.ID,
		Name:      identity.Name,
		Email:     identity.Email,
		Phone:     identity.Phone,
		CreatedAt: identity.CreatedAt,
	}
}
