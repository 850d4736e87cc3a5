package couponRepo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"spacehive/models"
	"spacehive/utils"
)

func (r *MongoCouponRepo) Create(ctx context.Context, coupon *models.Coupon) error {
	now := time.Now()
	coupon.CreatedAt = now
	coupon.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, coupon); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.Conflict("Coupon code already exists")
		}
		return utils.Internal("failed to insert coupon", err)
	}
	return nil
}

func (r *MongoCouponRepo) GetByID(ctx context.Context, id string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&coupon)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFound("coupon", id)
		}
		return nil, utils.Internal("failed to fetch coupon", err)
	}
	return &coupon, nil
}

func (r *MongoCouponRepo) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.coll.FindOne(ctx, bson.M{"code": code}).Decode(&coupon)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFound("coupon", code)
		}
		return nil, utils.Internal("failed to fetch coupon", err)
	}
	return &coupon, nil
}

func (r *MongoCouponRepo) SetStatus(ctx context.Context, id, status string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		return utils.Internal("failed to update coupon status", err)
	}
	if res.MatchedCount == 0 {
		return utils.NotFound("coupon", id)
	}
	return nil
}
