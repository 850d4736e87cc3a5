package models

import "time"

// Space statuses.
const (
	SpaceStatusActive   = "active"
	SpaceStatusInactive = "inactive"
)

// Space is a bookable resource owned by a partner.
type Space struct {
	ID         string    `bson:"id" json:"id"`
	PartnerID  string    `bson:"partner_id" json:"partnerId"`
	Name       string    `bson:"name" json:"name"`
	SpaceType  string    `bson:"space_type" json:"spaceType"`
	Status     string    `bson:"status" json:"status"`
	Capacity   int       `bson:"capacity" json:"capacity"`
	HourlyRate float64   `bson:"hourly_rate" json:"hourlyRate"`
	Currency   string    `bson:"currency" json:"currency"`
	Address    string    `bson:"address,omitempty" json:"address,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updatedAt"`
}

// Partner is a space owner on the platform.
type Partner struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	Name      string    `bson:"name" json:"name"`
	FCMToken  string    `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
