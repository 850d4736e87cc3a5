package models

import "time"

// User is an end-user account as seen by the booking core.
type User struct {
	ID        string    `bson:"id" json:"id"`
	Email     string    `bson:"email" json:"email"`
	FirstName string    `bson:"first_name" json:"firstName"`
	LastName  string    `bson:"last_name" json:"lastName"`
	FCMToken  string    `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Actor identifies who is performing an operation. Partner-owned
// operations resolve PartnerIDs from the partner accounts linked to the
// acting user.
type Actor struct {
	UserID string `json:"userId"`
	Role   string `json:"role,omitempty"`
}
