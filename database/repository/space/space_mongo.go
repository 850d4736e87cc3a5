package spaceRepo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"spacehive/database"
	"spacehive/models"
	"spacehive/utils"
)

type MongoSpaceRepo struct {
	coll        *mongo.Collection
	partnerColl *mongo.Collection
}

func NewMongoSpaceRepo() *MongoSpaceRepo {
	db := database.MongoClient.Database(database.DatabaseName())
	repo := &MongoSpaceRepo{
		coll:        db.Collection("spaces"),
		partnerColl: db.Collection("partners"),
	}
	repo.ensureIndexes()
	return repo
}

func (r *MongoSpaceRepo) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	spaceIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "partner_id", Value: 1}, {Key: "status", Value: 1}},
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, spaceIndexes); err != nil {
		utils.GetLogger().Error("Failed to create space indexes", zap.Error(err))
	}

	partnerIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
		},
	}
	if _, err := r.partnerColl.Indexes().CreateMany(ctx, partnerIndexes); err != nil {
		utils.GetLogger().Error("Failed to create partner indexes", zap.Error(err))
	}
}

func (r *MongoSpaceRepo) GetByID(ctx context.Context, id string) (*models.Space, error) {
	var space models.Space
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&space)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFound("space", id)
		}
		return nil, utils.Internal("failed to fetch space", err)
	}
	return &space, nil
}

func (r *MongoSpaceRepo) ListByPartner(ctx context.Context, partnerID string) ([]models.Space, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"partner_id": partnerID})
	if err != nil {
		return nil, utils.Internal("failed to list spaces", err)
	}
	defer cursor.Close(ctx)

	var spaces []models.Space
	if err := cursor.All(ctx, &spaces); err != nil {
		return nil, utils.Internal("failed to decode spaces", err)
	}
	return spaces, nil
}

func (r *MongoSpaceRepo) GetPartner(ctx context.Context, partnerID string) (*models.Partner, error) {
	var partner models.Partner
	err := r.partnerColl.FindOne(ctx, bson.M{"id": partnerID}).Decode(&partner)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFound("partner", partnerID)
		}
		return nil, utils.Internal("failed to fetch partner", err)
	}
	return &partner, nil
}

func (r *MongoSpaceRepo) GetPartnerByUser(ctx context.Context, userID string) (*models.Partner, error) {
	var partner models.Partner
	err := r.partnerColl.FindOne(ctx, bson.M{"user_id": userID}).Decode(&partner)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFound("partner account for user", userID)
		}
		return nil, utils.Internal("failed to fetch partner by user", err)
	}
	return &partner, nil
}
