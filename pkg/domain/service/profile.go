package service

import (
	log "github.com/sirupsen/logrus"

	"github.com/Ithalolp/JW-STORE/pkg/domain/model"
)

// ProfileService owns the customer profile record. It never reports read
// failures to callers; a missing or unreadable record degrades to the
// zero-valued profile.
type ProfileService interface {
	Get() model.CustomerProfile
	Save(patch model.ProfilePatch) bool
	Clear()
}

func NewProfileService(store SnapshotStore) ProfileService {
	return &profileService{store: store}
}

type profileService struct {
	store SnapshotStore
}

func (s *profileService) Get() model.CustomerProfile {
	var profile model.CustomerProfile
	found, err := s.store.Load(ProfileKey, &profile)
	if err != nil {
		log.WithError(err).Error("Failed to read customer profile, using defaults")
		return model.CustomerProfile{}
	}
	if !found {
		return model.CustomerProfile{}
	}
	return profile
}

func (s *profileService) Save(patch model.ProfilePatch) bool {
	merged := s.Get().Merge(patch)
	if err := s.store.Save(ProfileKey, merged); err != nil {
		log.WithError(err).Error("Failed to persist customer profile")
		return false
	}
	return true
}

func (s *profileService) Clear() {
	if err := s.store.Delete(ProfileKey); err != nil {
		log.WithError(err).Error("Failed to delete customer profile")
	}
}
