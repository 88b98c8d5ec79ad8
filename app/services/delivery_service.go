package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ComandaApp/app/cache"
	"ComandaApp/app/models"
)

// ErrUnknownArea is returned when a delivery quote names a zone the
// price list doesn't cover.
var ErrUnknownArea = fmt.Errorf("unknown delivery area")

// DeliveryService serves delivery zone pricing from a short-lived cache
// and handles the admin zone price editor.
type DeliveryService struct {
	backend Backend
	cache   *cache.TTL[[]models.DeliveryArea]
}

// NewDeliveryService creates a delivery service caching backend fetches
// for ttl.
func NewDeliveryService(backend Backend, ttl time.Duration, clock cache.Clock) *DeliveryService {
	return &DeliveryService{
		backend: backend,
		cache:   cache.New(ttl, clock, backend.FetchDeliveryAreas),
	}
}

// GetAreas returns the delivery zone price list.
func (s *DeliveryService) GetAreas(ctx context.Context) ([]models.DeliveryArea, error) {
	areas, err := s.cache.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching delivery areas: %w", err)
	}
	return areas, nil
}

// Quote returns the delivery fee for a zone, matched case-insensitively.
func (s *DeliveryService) Quote(ctx context.Context, area string) (int, error) {
	areas, err := s.GetAreas(ctx)
	if err != nil {
		return 0, err
	}

	want := strings.ToLower(strings.TrimSpace(area))
	for _, a := range areas {
		if strings.ToLower(a.Name) == want {
			return a.Fee, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownArea, area)
}

// SaveArea writes a zone fee through to the backend and invalidates the
// cache.
func (s *DeliveryService) SaveArea(ctx context.Context, area models.DeliveryArea) error {
	if area.Name == "" {
		return fmt.Errorf("area name is required")
	}
	if area.Fee < 0 {
		return fmt.Errorf("area fee cannot be negative")
	}

	if err := s.backend.SaveDeliveryArea(ctx, area); err != nil {
		return fmt.Errorf("error saving delivery area: %w", err)
	}
	s.cache.Invalidate()
	return nil
}
