package userRepo

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

// UserRepository provides read access to user accounts.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type MongoUserRepo struct {
	coll *mongo.Collection
}

func NewMongoUserRepo() *MongoUserRepo {
	db := database.MongoClient.Database(database.DatabaseName())
	repo := &MongoUserRepo{coll: db.Collection("users")}
	repo.ensureIndexes()
	return repo
}

func (r *MongoUserRepo) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		utils.GetLogger().Error("Failed to create user indexes", zap.Error(err))
	}
}

func (r *MongoUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFound("user", id)
		}
		return nil, utils.Internal("failed to fetch user", err)
	}
	return &user, nil
}
