package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"ComandaApp/app/models"
)

func TestQuote(t *testing.T) {
	backend := newFakeBackend()
	backend.areas = []models.DeliveryArea{
		{Name: "Laureles", Fee: 5000},
		{Name: "El Poblado", Fee: 8000},
	}
	svc := NewDeliveryService(backend, time.Minute, nil)
	ctx := context.Background()

	tests := []struct {
		area    string
		wantFee int
		wantErr bool
	}{
		{"Laureles", 5000, false},
		{"laureles", 5000, false},
		{"  EL POBLADO  ", 8000, false},
		{"Marte", 0, true},
	}

	for _, tt := range tests {
		fee, err := svc.Quote(ctx, tt.area)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownArea) {
				t.Errorf("Quote(%q) err = %v, want ErrUnknownArea", tt.area, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Quote(%q): %v", tt.area, err)
			continue
		}
		if fee != tt.wantFee {
			t.Errorf("Quote(%q) = %d, want %d", tt.area, fee, tt.wantFee)
		}
	}

	if backend.fetchAreasCalls != 1 {
		t.Errorf("backend fetched %d times, want 1 (cached)", backend.fetchAreasCalls)
	}
}

func TestSaveArea(t *testing.T) {
	backend := newFakeBackend()
	svc := NewDeliveryService(backend, time.Hour, nil)
	ctx := context.Background()

	if err := svc.SaveArea(ctx, models.DeliveryArea{Fee: 5000}); err == nil {
		t.Error("nameless area should be rejected")
	}
	if err := svc.SaveArea(ctx, models.DeliveryArea{Name: "Laureles", Fee: -1}); err == nil {
		t.Error("negative fee should be rejected")
	}
	if len(backend.savedAreas) != 0 {
		t.Fatal("invalid areas should not reach the backend")
	}

	if err := svc.SaveArea(ctx, models.DeliveryArea{Name: "Laureles", Fee: 5000}); err != nil {
		t.Fatalf("SaveArea: %v", err)
	}
	if len(backend.savedAreas) != 1 {
		t.Errorf("backend received %d areas, want 1", len(backend.savedAreas))
	}

	// The next read must refetch and see the new zone.
	backend.areas = []models.DeliveryArea{{Name: "Laureles", Fee: 5000}}
	fee, err := svc.Quote(ctx, "Laureles")
	if err != nil {
		t.Fatalf("Quote after save: %v", err)
	}
	if fee != 5000 {
		t.Errorf("fee after save = %d, want 5000", fee)
	}
}
