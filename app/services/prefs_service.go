package services

import (
	"errors"
	"fmt"

	"ComandaApp/app/models"

	"gorm.io/gorm"
)

// PrefsService stores the checkout convenience fields (name, phone,
// address, zone) per anonymous session so returning customers find the
// form prefilled.
type PrefsService struct {
	db *gorm.DB
}

// NewPrefsService creates a prefs service on the convenience store.
func NewPrefsService(db *gorm.DB) *PrefsService {
	return &PrefsService{db: db}
}

// Get returns the stored prefs for a session, or an empty record when
// the session is new.
func (s *PrefsService) Get(sessionID string) (models.SessionPrefs, error) {
	var prefs models.SessionPrefs
	err := s.db.First(&prefs, "session_id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.SessionPrefs{SessionID: sessionID}, nil
	}
	if err != nil {
		return prefs, fmt.Errorf("error fetching session prefs: %w", err)
	}
	return prefs, nil
}

// Save upserts the prefs for a session.
func (s *PrefsService) Save(prefs models.SessionPrefs) error {
	if prefs.SessionID == "" {
		return fmt.Errorf("session id is required")
	}
	if err := s.db.Save(&prefs).Error; err != nil {
		return fmt.Errorf("error saving session prefs: %w", err)
	}
	return nil
}
