// Package profiles manages viewing profiles. Watch state and preferences
// are keyed by profile id.
package profiles

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"marquee/internal/store"
	"marquee/models"
)

var (
	ErrNameRequired = errors.New("profile name is required")
	ErrNotFound     = errors.New("profile not found")
	ErrLastProfile  = errors.New("cannot delete the last profile")
)

const profilesStoreKey = "profiles"

// Service manages the profile registry. A default profile is created on
// first run so the rest of the system always has a profile to key on.
type Service struct {
	mu       sync.RWMutex
	store    store.Store
	profiles map[string]models.Profile
}

// NewService loads the registry from st, creating the default profile when
// none exist.
func NewService(st store.Store) (*Service, error) {
	svc := &Service{
		store:    st,
		profiles: make(map[string]models.Profile),
	}

	if raw, ok := st.Get(profilesStoreKey); ok {
		if err := json.Unmarshal([]byte(raw), &svc.profiles); err != nil {
			return nil, fmt.Errorf("decode profiles: %w", err)
		}
	}

	if len(svc.profiles) == 0 {
		p := models.Profile{
			ID:        uuid.NewString(),
			Name:      models.DefaultProfileName,
			CreatedAt: time.Now().UTC(),
		}
		svc.profiles[p.ID] = p
		if err := svc.saveLocked(); err != nil {
			return nil, err
		}
	}

	return svc, nil
}

// List returns all profiles, oldest first.
func (s *Service) List() []models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// DefaultID returns the id of the oldest profile.
func (s *Service) DefaultID() string {
	list := s.List()
	if len(list) == 0 {
		return ""
	}
	return list[0].ID
}

// Exists reports whether a profile with the given id exists.
func (s *Service) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.profiles[id]
	return ok
}

// Create adds a new profile.
func (s *Service) Create(name string) (models.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Profile{}, ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := models.Profile{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	s.profiles[p.ID] = p
	if err := s.saveLocked(); err != nil {
		delete(s.profiles, p.ID)
		return models.Profile{}, err
	}
	return p, nil
}

// Rename changes a profile's display name.
func (s *Service) Rename(id, name string) (models.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Profile{}, ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[id]
	if !ok {
		return models.Profile{}, ErrNotFound
	}
	p.Name = name
	s.profiles[id] = p
	if err := s.saveLocked(); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

// Delete removes a profile. The last remaining profile cannot be deleted.
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[id]; !ok {
		return ErrNotFound
	}
	if len(s.profiles) == 1 {
		return ErrLastProfile
	}
	removed := s.profiles[id]
	delete(s.profiles, id)
	if err := s.saveLocked(); err != nil {
		s.profiles[id] = removed
		return err
	}
	return nil
}

func (s *Service) saveLocked() error {
	data, err := json.Marshal(s.profiles)
	if err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}
	if err := s.store.Set(profilesStoreKey, string(data)); err != nil {
		return fmt.Errorf("persist profiles: %w", err)
	}
	return nil
}
