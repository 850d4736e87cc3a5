package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"

	spaceRepo "spacehive/database/repository/space"
	userRepo "spacehive/database/repository/user"
	"spacehive/utils"
)

// Gateway defines methods for sending FCM pushes to the two audiences
// of a booking.
type Gateway interface {
	SendUserPush(ctx context.Context, userID, title, body string, data map[string]string) error
	SendPartnerPush(ctx context.Context, partnerID, title, body string, data map[string]string) error
}

// FCMGateway is the production implementation backed by Firebase
// Cloud Messaging.
type FCMGateway struct {
	users    userRepo.UserRepository
	partners spaceRepo.SpaceRepository
}

func NewFCMGateway(users userRepo.UserRepository, partners spaceRepo.SpaceRepository) (*FCMGateway, error) {
	if users == nil || partners == nil {
		return nil, fmt.Errorf("notification gateway initialization error: user or space repository is nil")
	}
	return &FCMGateway{users: users, partners: partners}, nil
}

// SendUserPush looks up a user's FCM token and sends a push.
func (g *FCMGateway) SendUserPush(ctx context.Context, userID, title, body string, data map[string]string) error {
	u, err := g.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("SendUserPush: could not find user %s: %w", userID, err)
	}
	if u.FCMToken == "" {
		return fmt.Errorf("SendUserPush: user %s has no FCM token", userID)
	}

	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["role"]; !ok {
		data["role"] = "user"
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendUserPush: failed to send FCM message: %w", err)
	}
	return nil
}

// SendPartnerPush sends a high-priority push to the partner's device.
func (g *FCMGateway) SendPartnerPush(ctx context.Context, partnerID, title, body string, data map[string]string) error {
	p, err := g.partners.GetPartner(ctx, partnerID)
	if err != nil {
		return fmt.Errorf("SendPartnerPush: could not find partner %s: %w", partnerID, err)
	}
	if p.FCMToken == "" {
		return fmt.Errorf("SendPartnerPush: partner %s has no FCM token", partnerID)
	}

	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["role"]; !ok {
		data["role"] = "partner"
	}

	msg := &messaging.Message{
		Token: p.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendPartnerPush: failed to send FCM message: %w", err)
	}
	return nil
}
