package services

import (
	"context"
	"fmt"
	"strings"

	"ComandaApp/app/models"
)

// ClientService backs the admin client-records dashboard.
type ClientService struct {
	backend Backend
}

// NewClientService creates a client records service.
func NewClientService(backend Backend) *ClientService {
	return &ClientService{backend: backend}
}

// List returns all client records, optionally filtered by a search term
// matched against name and phone.
func (s *ClientService) List(ctx context.Context, search string) ([]models.Client, error) {
	clients, err := s.backend.FetchClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching clients: %w", err)
	}

	if search == "" {
		return clients, nil
	}

	term := strings.ToLower(search)
	filtered := make([]models.Client, 0, len(clients))
	for _, c := range clients {
		if strings.Contains(strings.ToLower(c.Name), term) || strings.Contains(c.Phone, search) {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// Save writes a client record through to the backend.
func (s *ClientService) Save(ctx context.Context, client models.Client) error {
	if client.Name == "" && client.Phone == "" {
		return fmt.Errorf("client needs at least a name or a phone")
	}
	if err := s.backend.SaveClient(ctx, client); err != nil {
		return fmt.Errorf("error saving client: %w", err)
	}
	return nil
}
