package booking

import (
	"context"
	"time"

	"spacehive/models"
)

// UserDirectory resolves user accounts for booking actors.
type UserDirectory interface {
	Get(ctx context.Context, userID string) (*models.User, error)
}

// SpaceCatalog resolves spaces and their owning partners. A space with
// no resolvable partner is a data-integrity error, never an empty id.
type SpaceCatalog interface {
	Get(ctx context.Context, spaceID string) (*models.Space, error)
	ResolvePartnerID(ctx context.Context, spaceID string) (string, error)
	PartnerForUser(ctx context.Context, userID string) (*models.Partner, error)
}

// PricingEngine computes the final base price for a reservation window
// starting from the space's listed rate.
type PricingEngine interface {
	Calculate(ctx context.Context, spaceID string, start, end time.Time, basePrice, durationHours float64) (float64, error)
}

// Publisher dispatches booking events to the reactor bus.
type Publisher interface {
	Publish(event models.BookingEvent)
}
