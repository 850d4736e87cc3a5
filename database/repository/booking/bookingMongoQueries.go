package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"spacehive/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// conflictFilter builds the standard half-open interval overlap filter:
// existing.start < requested.end AND existing.end > requested.start,
// cancelled bookings excluded.
func conflictFilter(spaceID string, start, end time.Time, excludeID string) bson.M {
	filter := bson.M{
		"space_id":        spaceID,
		"status":          bson.M{"$ne": models.BookingStatusCancelled},
		"start_date_time": bson.M{"$lt": end},
		"end_date_time":   bson.M{"$gt": start},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	return filter
}

// FindConflicting returns all non-cancelled bookings overlapping the
// requested interval on the given space.
func (r *MongoBookingRepo) FindConflicting(ctx context.Context, spaceID string, start, end time.Time, excludeID string) ([]models.Booking, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(opCtx, conflictFilter(spaceID, start, end, excludeID))
	if err != nil {
		return nil, fmt.Errorf("failed to query conflicting bookings: %w", err)
	}
	defer cursor.Close(opCtx)

	var conflicts []models.Booking
	if err := cursor.All(opCtx, &conflicts); err != nil {
		return nil, fmt.Errorf("failed to decode conflicting bookings: %w", err)
	}
	return conflicts, nil
}

// List returns bookings matching the query filters, newest first,
// together with the total match count.
func (r *MongoBookingRepo) List(ctx context.Context, query models.BookingQuery) ([]models.Booking, int64, error) {
	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if query.UserID != "" {
		filter["user_id"] = query.UserID
	}
	if query.SpaceID != "" {
		filter["space_id"] = query.SpaceID
	}
	if query.PartnerID != "" {
		filter["partner_id"] = query.PartnerID
	}
	if query.Status != "" {
		filter["status"] = query.Status
	}

	total, err := r.coll.CountDocuments(opCtx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if query.Limit > 0 {
		opts.SetLimit(query.Limit)
	}
	if query.Offset > 0 {
		opts.SetSkip(query.Offset)
	}

	cursor, err := r.coll.Find(opCtx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(opCtx)

	var bookings []models.Booking
	if err := cursor.All(opCtx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, total, nil
}

// Latest returns the most recently created bookings.
func (r *MongoBookingRepo) Latest(ctx context.Context, limit int64) ([]models.Booking, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(opCtx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest bookings: %w", err)
	}
	defer cursor.Close(opCtx)

	var bookings []models.Booking
	if err := cursor.All(opCtx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode latest bookings: %w", err)
	}
	return bookings, nil
}
