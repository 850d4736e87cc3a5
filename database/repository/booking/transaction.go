package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"spacehive/models"
	"spacehive/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	lockTTL          = 10 * time.Second
	lockRetries      = 5
	lockRetryBackoff = 50 * time.Millisecond
)

// spaceLock is a short-lived advisory lock document. Its _id is derived
// from the space id, so a duplicate-key error on insert means another
// request is currently creating a booking for the same space.
type spaceLock struct {
	ID        string    `bson:"_id"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}

func (r *MongoBookingRepo) acquireSpaceLock(ctx context.Context, spaceID string) (string, error) {
	lockID := "space:" + spaceID
	for attempt := 0; attempt < lockRetries; attempt++ {
		now := time.Now().UTC()
		_, err := r.lockColl.InsertOne(ctx, spaceLock{
			ID:        lockID,
			ExpiresAt: now.Add(lockTTL),
			CreatedAt: now,
		})
		if err == nil {
			return lockID, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("failed to acquire space lock: %w", err)
		}
		time.Sleep(lockRetryBackoff * time.Duration(attempt+1))
	}
	return "", utils.Conflict("Space is currently being booked, please retry")
}

func (r *MongoBookingRepo) releaseSpaceLock(ctx context.Context, lockID string) error {
	_, err := r.lockColl.DeleteOne(ctx, bson.M{"_id": lockID})
	return err
}

// CreateIfAvailable runs the overlap check and the insert as one unit
// under a per-space advisory lock, closing the check-then-insert race
// between concurrent requests for the same space.
func (r *MongoBookingRepo) CreateIfAvailable(ctx context.Context, booking *models.Booking) ([]models.Booking, error) {
	opCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	lockID, err := r.acquireSpaceLock(opCtx, booking.SpaceID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := r.releaseSpaceLock(context.Background(), lockID); releaseErr != nil {
			utils.GetLogger().Sugar().Warnf("failed to release space lock %s: %v", lockID, releaseErr)
		}
	}()

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(opCtx)

	var conflicts []models.Booking
	txnFn := func(sc mongo.SessionContext) error {
		cursor, err := r.coll.Find(sc, conflictFilter(booking.SpaceID, booking.StartDateTime, booking.EndDateTime, ""))
		if err != nil {
			return fmt.Errorf("conflict query failed: %w", err)
		}
		if err := cursor.All(sc, &conflicts); err != nil {
			return fmt.Errorf("conflict decode failed: %w", err)
		}
		if len(conflicts) > 0 {
			return utils.Conflict("Space is not available for the requested time slot")
		}

		now := time.Now().UTC()
		booking.CreatedAt = now
		booking.UpdatedAt = now
		if _, err := r.coll.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(opCtx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if len(conflicts) > 0 {
			return conflicts, err
		}
		return nil, err
	}

	return nil, nil
}
