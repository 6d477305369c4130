package service

import (
	"fmt"
	"strconv"
	"sync"

	log "github.com/sirupsen/logrus"

	"aurabot/models"
	"aurabot/storage"
)

// slot name for the persisted settings
const configSlot = "config"

// settingsService implements the SettingsService interface
type settingsService struct {
	mu       sync.Mutex
	settings models.Settings
	store    *storage.Store
}

// NewSettingsService creates a settings service, loading the config slot
// and seeding the owner set with seedOwnerIDs on first run
func NewSettingsService(store *storage.Store, seedOwnerIDs []string) (SettingsService, error) {
	var settings models.Settings
	if err := store.Load(configSlot, &settings); err != nil {
		return nil, fmt.Errorf("failed to load config slot: %w", err)
	}

	s := &settingsService{
		settings: settings,
		store:    store,
	}

	if len(s.settings.OwnerIDs) == 0 && len(seedOwnerIDs) > 0 {
		for _, id := range seedOwnerIDs {
			parsed, err := strconv.ParseInt(id, 10, 64)
			if err != nil {
				log.Errorf("Ignoring invalid owner seed ID %q: %v", id, err)
				continue
			}
			s.settings.OwnerIDs = append(s.settings.OwnerIDs, parsed)
		}
		if err := s.persist(); err != nil {
			return nil, err
		}
		log.Infof("Seeded owner set with %d IDs", len(s.settings.OwnerIDs))
	}

	if s.settings.ChannelID != nil {
		log.Infof("Loaded leaderboard channel %d", *s.settings.ChannelID)
	} else {
		log.Warn("No leaderboard channel configured")
	}

	return s, nil
}

func (s *settingsService) IsOwner(userID string) bool {
	parsed, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.settings.OwnerIDs {
		if id == parsed {
			return true
		}
	}
	return false
}

func (s *settingsService) AddOwner(userID string) error {
	parsed, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid owner ID %q: %w", userID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.settings.OwnerIDs {
		if id == parsed {
			return nil
		}
	}
	s.settings.OwnerIDs = append(s.settings.OwnerIDs, parsed)
	if err := s.persist(); err != nil {
		return err
	}
	log.Infof("Added owner %d", parsed)
	return nil
}

func (s *settingsService) SetChannel(channelID string) error {
	parsed, err := strconv.ParseInt(channelID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid channel ID %q: %w", channelID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings.ChannelID = &parsed
	if err := s.persist(); err != nil {
		return err
	}
	log.Infof("Saved leaderboard channel %d", parsed)
	return nil
}

func (s *settingsService) Channel() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.settings.ChannelID == nil {
		return "", false
	}
	return strconv.FormatInt(*s.settings.ChannelID, 10), true
}

// persist saves the settings. Callers must hold s.mu (or be the
// constructor, before the service is shared).
func (s *settingsService) persist() error {
	if err := s.store.Save(configSlot, &s.settings); err != nil {
		log.Errorf("Failed to save config slot: %v", err)
		return fmt.Errorf("failed to save config slot: %w", err)
	}
	return nil
}
