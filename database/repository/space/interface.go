package spaceRepo

import (
	"context"

	"spacehive/models"
)

// SpaceRepository provides read access to spaces and the partner
// accounts that own them.
type SpaceRepository interface {
	GetByID(ctx context.Context, id string) (*models.Space, error)
	ListByPartner(ctx context.Context, partnerID string) ([]models.Space, error)
	GetPartner(ctx context.Context, partnerID string) (*models.Partner, error)
	GetPartnerByUser(ctx context.Context, userID string) (*models.Partner, error)
}
