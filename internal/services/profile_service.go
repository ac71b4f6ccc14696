package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/leandrotelles/nutricoach-bot/internal/domain"
	"github.com/leandrotelles/nutricoach-bot/internal/logger"
	"github.com/leandrotelles/nutricoach-bot/internal/storage"
)

// ProfileUpdate is a typed partial update: only non-nil fields are
// applied, last write wins per field.
type ProfileUpdate struct {
	Name              *string
	Age               *string
	Height            *string
	CurrentWeight     *string
	Gender            *domain.Gender
	Goal              *domain.Goal
	Instagram         *string
	ProfilePicture    *string
	PhotoFront        *string
	PhotoSide         *string
	PhotoBack         *string
	DailyRoutine      *string
	CurrentDiet       *string
	FoodSubstitutions *string
	FoodPreferences   *string
	WorkoutRoutine    *string
	Supplementation   *string
}

// ProfileService owns the canonical user profile. Every mutation is
// persisted immediately, so the stored copy is never more than one
// change behind memory.
type ProfileService struct {
	store   storage.Store
	userID  int64
	profile domain.UserProfile
}

// NewProfileService hydrates the profile from storage. Stored fields
// are merged over defaults; a missing or unparseable entry falls back
// to an all-default profile without failing startup.
func NewProfileService(ctx context.Context, store storage.Store, userID int64) *ProfileService {
	s := &ProfileService{
		store:   store,
		userID:  userID,
		profile: domain.DefaultProfile(),
	}

	data, err := store.Get(ctx, storage.ProfileKey(userID))
	if err != nil {
		return s
	}

	saved := domain.DefaultProfile()
	if err := json.Unmarshal(data, &saved); err != nil {
		logger.Warn("Failed to parse saved profile, starting from defaults", "user_id", userID, "error", err)
		return s
	}
	s.profile = saved
	return s
}

// Profile returns a copy of the current profile.
func (s *ProfileService) Profile() domain.UserProfile {
	return s.profile
}

// Apply merges the update into the profile and persists it.
func (s *ProfileService) Apply(ctx context.Context, update ProfileUpdate) error {
	p := &s.profile
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Age != nil {
		p.Age = *update.Age
	}
	if update.Height != nil {
		p.Height = *update.Height
	}
	if update.CurrentWeight != nil {
		p.CurrentWeight = *update.CurrentWeight
	}
	if update.Gender != nil {
		p.Gender = *update.Gender
	}
	if update.Goal != nil {
		p.Goal = *update.Goal
	}
	if update.Instagram != nil {
		p.Instagram = *update.Instagram
	}
	if update.ProfilePicture != nil {
		p.ProfilePicture = *update.ProfilePicture
	}
	if update.PhotoFront != nil {
		p.PhotoFront = *update.PhotoFront
	}
	if update.PhotoSide != nil {
		p.PhotoSide = *update.PhotoSide
	}
	if update.PhotoBack != nil {
		p.PhotoBack = *update.PhotoBack
	}
	if update.DailyRoutine != nil {
		p.DailyRoutine = *update.DailyRoutine
	}
	if update.CurrentDiet != nil {
		p.CurrentDiet = *update.CurrentDiet
	}
	if update.FoodSubstitutions != nil {
		p.FoodSubstitutions = *update.FoodSubstitutions
	}
	if update.FoodPreferences != nil {
		p.FoodPreferences = *update.FoodPreferences
	}
	if update.WorkoutRoutine != nil {
		p.WorkoutRoutine = *update.WorkoutRoutine
	}
	if update.Supplementation != nil {
		p.Supplementation = *update.Supplementation
	}

	return s.save(ctx)
}

// SetMeasurements commits a measurements record into the profile.
func (s *ProfileService) SetMeasurements(ctx context.Context, m domain.Measurements) error {
	s.profile.Measurements = &m
	return s.save(ctx)
}

// Reset restores the profile to defaults and removes the stored entry.
func (s *ProfileService) Reset(ctx context.Context) error {
	s.profile = domain.DefaultProfile()
	if err := s.store.Remove(ctx, storage.ProfileKey(s.userID)); err != nil {
		return fmt.Errorf("failed to remove profile: %w", err)
	}
	return nil
}

func (s *ProfileService) save(ctx context.Context) error {
	data, err := json.Marshal(s.profile)
	if err != nil {
		return fmt.Errorf("failed to serialize profile: %w", err)
	}
	if err := s.store.Set(ctx, storage.ProfileKey(s.userID), data); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}
