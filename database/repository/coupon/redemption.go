package couponRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"spacehive/models"
	"spacehive/utils"
)

// TryRedeem bumps the usage counter and writes the redemption record
// in one transaction. The filter on usage_count is what serializes
// concurrent redemptions of the same coupon: only the request whose
// observed count is still current commits, everyone else gets false
// and must re-read.
func (r *MongoCouponRepo) TryRedeem(ctx context.Context, redemption *models.CouponRedemption, observedCount int) (bool, error) {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return false, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	swapped := false
	txnFn := func(sc mongo.SessionContext) error {
		res, err := r.coll.UpdateOne(sc,
			bson.M{"code": redemption.Code, "usage_count": observedCount},
			bson.M{
				"$inc": bson.M{"usage_count": 1},
				"$set": bson.M{"updated_at": time.Now()},
			},
		)
		if err != nil {
			return fmt.Errorf("usage increment failed: %w", err)
		}
		if res.ModifiedCount == 0 {
			return nil
		}

		redemption.RedeemedAt = time.Now()
		if _, err := r.redemptionColl.InsertOne(sc, redemption); err != nil {
			return fmt.Errorf("redemption insert failed: %w", err)
		}
		swapped = true
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		if !swapped {
			_ = sc.AbortTransaction(sc)
			return nil
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return false, utils.Internal("failed to redeem coupon", err)
	}
	return swapped, nil
}

func (r *MongoCouponRepo) AttachBooking(ctx context.Context, redemptionID, bookingID string) error {
	res, err := r.redemptionColl.UpdateOne(ctx,
		bson.M{"id": redemptionID},
		bson.M{"$set": bson.M{"booking_id": bookingID}},
	)
	if err != nil {
		return utils.Internal("failed to attach booking to redemption", err)
	}
	if res.MatchedCount == 0 {
		return utils.NotFound("coupon redemption", redemptionID)
	}
	return nil
}

func (r *MongoCouponRepo) CountUserRedemptions(ctx context.Context, couponID, userID string) (int, error) {
	count, err := r.redemptionColl.CountDocuments(ctx, bson.M{
		"coupon_id": couponID,
		"user_id":   userID,
	})
	if err != nil {
		return 0, utils.Internal("failed to count user redemptions", err)
	}
	return int(count), nil
}

func (r *MongoCouponRepo) ListRedemptions(ctx context.Context, couponID string) ([]models.CouponRedemption, error) {
	opts := options.Find().SetSort(bson.D{{Key: "redeemed_at", Value: -1}})
	cursor, err := r.redemptionColl.Find(ctx, bson.M{"coupon_id": couponID}, opts)
	if err != nil {
		return nil, utils.Internal("failed to list coupon redemptions", err)
	}
	defer cursor.Close(ctx)

	var redemptions []models.CouponRedemption
	if err := cursor.All(ctx, &redemptions); err != nil {
		return nil, utils.Internal("failed to decode coupon redemptions", err)
	}
	return redemptions, nil
}
