package services

import (
	"context"
	"fmt"
	"time"

	"ComandaApp/app/cache"
	"ComandaApp/app/models"
)

// MenuService serves the customer menu from a short-lived cache and
// handles the admin availability toggle.
type MenuService struct {
	backend Backend
	cache   *cache.TTL[[]models.MenuItem]
}

// NewMenuService creates a menu service caching backend fetches for ttl.
func NewMenuService(backend Backend, ttl time.Duration, clock cache.Clock) *MenuService {
	return &MenuService{
		backend: backend,
		cache:   cache.New(ttl, clock, backend.FetchMenu),
	}
}

// GetMenu returns all menu items, available or not. The admin
// availability dashboard needs the full list.
func (s *MenuService) GetMenu(ctx context.Context) ([]models.MenuItem, error) {
	items, err := s.cache.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching menu: %w", err)
	}
	return items, nil
}

// GetAvailableMenu returns only the items customers can order.
func (s *MenuService) GetAvailableMenu(ctx context.Context) ([]models.MenuItem, error) {
	items, err := s.GetMenu(ctx)
	if err != nil {
		return nil, err
	}

	available := make([]models.MenuItem, 0, len(items))
	for _, it := range items {
		if it.Available {
			available = append(available, it)
		}
	}
	return available, nil
}

// SetAvailability writes an availability toggle through to the backend
// and drops the cache so the next menu fetch shows the change.
func (s *MenuService) SetAvailability(ctx context.Context, id int, available bool) error {
	if err := s.backend.UpdateMenuAvailability(ctx, id, available); err != nil {
		return fmt.Errorf("error updating availability: %w", err)
	}
	s.cache.Invalidate()
	return nil
}
