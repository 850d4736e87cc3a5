package booking

import (
	"context"
	"time"
)

// peak hours carry a surcharge on the hourly rate.
const (
	peakStartHour   = 17
	peakEndHour     = 21
	peakMultiplier  = 1.2
	weekendMultiple = 1.1
)

// DefaultPricingEngine prices a window off the space's hourly rate,
// with modest peak-hour and weekend adjustments.
type DefaultPricingEngine struct{}

func NewDefaultPricingEngine() *DefaultPricingEngine {
	return &DefaultPricingEngine{}
}

func (e *DefaultPricingEngine) Calculate(_ context.Context, _ string, start, _ time.Time, basePrice, durationHours float64) (float64, error) {
	price := basePrice * durationHours

	if h := start.Hour(); h >= peakStartHour && h < peakEndHour {
		price *= peakMultiplier
	}
	if wd := start.Weekday(); wd == time.Saturday || wd == time.Sunday {
		price *= weekendMultiple
	}
	return price, nil
}
