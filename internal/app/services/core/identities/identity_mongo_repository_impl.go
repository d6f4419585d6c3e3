package identities

import (
	"carepulse-service/internal/app/contracts"
	"carepulse-service/internal/app/models"
	"carepulse-service/internal/pkg/constvars"
	"carepulse-service/internal/pkg/exceptions"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type IdentityMongoRepository struct {
	Collection *mongo.Collection
}

func NewIdentityMongoRepository(db *mongo.Client, dbName string) contracts.IdentityRepository {
	return &IdentityMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionIdentities),
	}
}

// EnsureIndexes makes email unique so concurrent intake submissions cannot
// create two identities for one address.
func (repo *IdentityMongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := repo.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (repo *IdentityMongoRepository) CreateIdentity(ctx context.Context, entityIdentity *models.Identity) (string, error) {
	result, err := repo.Collection.InsertOne(ctx, entityIdentity)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			existing, findErr := repo.FindByEmail(ctx, entityIdentity.Email)
			if findErr == nil && existing != nil {
				return existing.ID, nil
			}
		}
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (repo *IdentityMongoRepository) FindByID(ctx context.Context, identityID string) (*models.Identity, error) {
	var identity models.Identity
	objectID, err := primitive.ObjectIDFromHex(identityID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	err = repo.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&identity)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &identity, nil
}

func (repo *IdentityMongoRepository) FindByEmail(ctx context.Context, email string) (*models.Identity, error) {
	var identity models.Identity
	err := repo.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&identity)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &identity, nil
}
