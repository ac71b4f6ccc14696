package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/leandrotelles/nutricoach-bot/internal/apperrors"
	"github.com/leandrotelles/nutricoach-bot/internal/domain"
	"github.com/leandrotelles/nutricoach-bot/internal/logger"
	"github.com/leandrotelles/nutricoach-bot/internal/storage"
)

// Comparison is a side-by-side view of two selected check-ins. A slot
// is nil when the selected entry does not exist.
type Comparison struct {
	Before *domain.ProgressEntry
	After  *domain.ProgressEntry
}

// ProgressService is the append-only check-in journal with derived
// read-only summaries. The collection is always kept sorted ascending
// by timestamp.
type ProgressService struct {
	store   storage.Store
	userID  int64
	entries []domain.ProgressEntry
	now     func() time.Time
}

// NewProgressService hydrates the journal. When nothing is stored yet,
// the journal is seeded with five weekly sample entries ending at the
// present and the seed is persisted immediately. A corrupt entry
// falls back to the seed as well.
func NewProgressService(ctx context.Context, store storage.Store, userID int64) *ProgressService {
	s := &ProgressService{
		store:  store,
		userID: userID,
		now:    time.Now,
	}

	data, err := store.Get(ctx, storage.ProgressKey(userID))
	if err == nil {
		var entries []domain.ProgressEntry
		if jsonErr := json.Unmarshal(data, &entries); jsonErr == nil {
			s.entries = entries
			s.sortEntries()
			return s
		}
		logger.Warn("Failed to parse saved progress, reseeding", "user_id", userID)
	}

	s.entries = sampleEntries(s.now())
	if err := s.save(ctx); err != nil {
		logger.Error("Failed to persist seeded progress", "user_id", userID, "error", err)
	}
	return s
}

// sampleEntries builds five weekly check-ins ending at now, with a
// plausible downward weight trend.
func sampleEntries(now time.Time) []domain.ProgressEntry {
	entries := make([]domain.ProgressEntry, 0, 5)
	for i := 4; i >= 0; i-- {
		date := now.AddDate(0, 0, -i*7)
		calories := 2200 + rand.Intn(401) - 200
		notes := "Sentindo mais força, energia melhor."
		if i == 4 {
			notes = "Início da jornada!"
		}
		entries = append(entries, domain.ProgressEntry{
			ID:       uuid.NewString(),
			Date:     date,
			Weight:   85 - (rand.Float64()*0.5 + float64(4-i)),
			Calories: &calories,
			Notes:    notes,
		})
	}
	return entries
}

// Entries returns the journal in ascending timestamp order.
func (s *ProgressService) Entries() []domain.ProgressEntry {
	return s.entries
}

// AddEntry creates a new check-in. Weight is required; calories,
// photos and notes are optional.
func (s *ProgressService) AddEntry(ctx context.Context, weight float64, calories *int, photos domain.ProgressPhotos, notes string) (*domain.ProgressEntry, error) {
	if weight <= 0 {
		return nil, apperrors.ErrWeightRequired
	}

	entry := domain.ProgressEntry{
		ID:       uuid.NewString(),
		Date:     s.now(),
		Weight:   weight,
		Calories: calories,
		Photos:   photos,
		Notes:    notes,
	}

	s.entries = append(s.entries, entry)
	s.sortEntries()
	if err := s.save(ctx); err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteEntry removes a check-in by identifier. The caller is expected
// to have confirmed the deletion with the user first.
func (s *ProgressService) DeleteEntry(ctx context.Context, id string) error {
	filtered := s.entries[:0:0]
	for _, entry := range s.entries {
		if entry.ID != id {
			filtered = append(filtered, entry)
		}
	}
	s.entries = filtered
	return s.save(ctx)
}

// InitialWeight is the oldest entry's weight, or 0 for an empty journal.
func (s *ProgressService) InitialWeight() float64 {
	if len(s.entries) == 0 {
		return 0
	}
	return s.entries[0].Weight
}

// AverageCalories averages over entries that carry a calorie value.
// Entries without one are excluded from both sides of the division;
// with no calorie data at all the average is 0.
func (s *ProgressService) AverageCalories() float64 {
	sum := 0
	count := 0
	for _, entry := range s.entries {
		if entry.Calories != nil {
			sum += *entry.Calories
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(count)*100) / 100
}

// Compare selects two entries by identifier for side-by-side display.
// An unknown identifier yields an empty slot, not an error.
func (s *ProgressService) Compare(beforeID, afterID string) Comparison {
	return Comparison{
		Before: s.findEntry(beforeID),
		After:  s.findEntry(afterID),
	}
}

// DefaultComparison pairs the earliest and latest check-ins.
func (s *ProgressService) DefaultComparison() Comparison {
	if len(s.entries) == 0 {
		return Comparison{}
	}
	first := s.entries[0]
	last := s.entries[len(s.entries)-1]
	return Comparison{Before: &first, After: &last}
}

func (s *ProgressService) findEntry(id string) *domain.ProgressEntry {
	for i := range s.entries {
		if s.entries[i].ID == id {
			entry := s.entries[i]
			return &entry
		}
	}
	return nil
}

func (s *ProgressService) sortEntries() {
	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.entries[i].Date.Before(s.entries[j].Date)
	})
}

func (s *ProgressService) save(ctx context.Context) error {
	data, err := json.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("failed to serialize progress: %w", err)
	}
	if err := s.store.Set(ctx, storage.ProgressKey(s.userID), data); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}
