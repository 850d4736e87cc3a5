package couponRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"spacehive/database"
	"spacehive/utils"
)

type MongoCouponRepo struct {
	coll           *mongo.Collection
	redemptionColl *mongo.Collection
}

// NewMongoCouponRepo returns a Mongo-backed coupon repository using the
// globally initialized client.
func NewMongoCouponRepo() *MongoCouponRepo {
	db := database.MongoClient.Database(database.DatabaseName())
	repo := &MongoCouponRepo{
		coll:           db.Collection("coupons"),
		redemptionColl: db.Collection("coupon_redemptions"),
	}
	repo.ensureIndexes()
	return repo
}

func newContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func (r *MongoCouponRepo) ensureIndexes() {
	ctx, cancel := newContext()
	defer cancel()

	couponIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "partner_id", Value: 1}, {Key: "status", Value: 1}},
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, couponIndexes); err != nil {
		utils.GetLogger().Error("Failed to create coupon indexes", zap.Error(err))
	}

	redemptionIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "coupon_id", Value: 1}, {Key: "user_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "booking_id", Value: 1}},
		},
	}
	if _, err := r.redemptionColl.Indexes().CreateMany(ctx, redemptionIndexes); err != nil {
		utils.GetLogger().Error("Failed to create coupon redemption indexes", zap.Error(err))
	}
}
