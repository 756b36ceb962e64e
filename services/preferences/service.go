// Package preferences persists per-profile display and playback settings.
package preferences

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"marquee/internal/store"
	"marquee/models"
)

var ErrProfileIDRequired = errors.New("profile id is required")

const preferencesStoreKey = "preferences"

// Service manages per-profile preferences. Profiles without saved
// preferences get the defaults.
type Service struct {
	mu    sync.RWMutex
	store store.Store
	prefs map[string]models.Preferences
}

func NewService(st store.Store) (*Service, error) {
	svc := &Service{
		store: st,
		prefs: make(map[string]models.Preferences),
	}
	if raw, ok := st.Get(preferencesStoreKey); ok {
		if err := json.Unmarshal([]byte(raw), &svc.prefs); err != nil {
			return nil, fmt.Errorf("decode preferences: %w", err)
		}
	}
	return svc, nil
}

// Get returns the profile's saved preferences, or the defaults when none
// have been saved yet.
func (s *Service) Get(profileID string) models.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.prefs[profileID]; ok {
		return p
	}
	return models.DefaultPreferences()
}

// Set replaces the profile's preferences and persists them.
func (s *Service) Set(profileID string, prefs models.Preferences) error {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return ErrProfileIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous, had := s.prefs[profileID]
	s.prefs[profileID] = prefs

	data, err := json.Marshal(s.prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := s.store.Set(preferencesStoreKey, string(data)); err != nil {
		if had {
			s.prefs[profileID] = previous
		} else {
			delete(s.prefs, profileID)
		}
		return fmt.Errorf("persist preferences: %w", err)
	}
	return nil
}
