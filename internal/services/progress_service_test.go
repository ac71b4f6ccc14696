package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/leandrotelles/nutricoach-bot/internal/domain"
	"github.com/leandrotelles/nutricoach-bot/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func storeEntries(t *testing.T, store storage.Store, userID int64, entries []domain.ProgressEntry) {
	t.Helper()
	data, err := json.Marshal(entries)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), storage.ProgressKey(userID), data))
}

func TestProgressServiceSeedsWhenEmpty(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	svc := NewProgressService(ctx, store, 1)

	entries := svc.Entries()
	require.Len(t, entries, 5)
	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].Date.Before(entries[i-1].Date), "entries must be sorted ascending")
	}
	for _, entry := range entries {
		assert.NotEmpty(t, entry.ID)
		assert.Greater(t, entry.Weight, 0.0)
		require.NotNil(t, entry.Calories)
	}

	// The seed is persisted, so a second hydration sees the same journal.
	again := NewProgressService(ctx, store, 1)
	require.Len(t, again.Entries(), 5)
	assert.Equal(t, entries[0].ID, again.Entries()[0].ID)
}

func TestProgressServiceCorruptEntryReseeds(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, storage.ProgressKey(1), []byte("broken")))

	svc := NewProgressService(ctx, store, 1)
	assert.Len(t, svc.Entries(), 5)
}

func TestProgressServiceAddEntry(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	storeEntries(t, store, 1, []domain.ProgressEntry{})

	svc := NewProgressService(ctx, store, 1)
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	entry, err := svc.AddEntry(ctx, 80.5, intPtr(2100), domain.ProgressPhotos{Front: "f"}, "boa semana")
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, now, entry.Date)
	assert.Equal(t, 80.5, entry.Weight)

	require.Len(t, svc.Entries(), 1)
}

func TestProgressServiceAddEntryRequiresWeight(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	storeEntries(t, store, 1, []domain.ProgressEntry{})
	svc := NewProgressService(ctx, store, 1)

	_, err := svc.AddEntry(ctx, 0, nil, domain.ProgressPhotos{}, "")
	assert.Error(t, err)
	_, err = svc.AddEntry(ctx, -4, nil, domain.ProgressPhotos{}, "")
	assert.Error(t, err)
	assert.Empty(t, svc.Entries())
}

func TestProgressServiceKeepsEntriesSorted(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	storeEntries(t, store, 1, []domain.ProgressEntry{
		{ID: "b", Date: base.AddDate(0, 0, 7), Weight: 83},
		{ID: "a", Date: base, Weight: 85},
	})

	svc := NewProgressService(ctx, store, 1)
	entries := svc.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].ID)
	assert.Equal(t, "b", entries[1].ID)

	// A backdated clock still lands the entry in order.
	svc.now = func() time.Time { return base.AddDate(0, 0, 3) }
	_, err := svc.AddEntry(ctx, 84, nil, domain.ProgressPhotos{}, "")
	require.NoError(t, err)
	entries = svc.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, 84.0, entries[1].Weight)
}

func TestProgressServiceAverageCalories(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	storeEntries(t, store, 1, []domain.ProgressEntry{
		{ID: "a", Date: base, Weight: 85, Calories: intPtr(2000)},
		{ID: "b", Date: base.AddDate(0, 0, 7), Weight: 84, Calories: intPtr(2500)},
		{ID: "c", Date: base.AddDate(0, 0, 14), Weight: 83},
	})

	svc := NewProgressService(ctx, store, 1)
	assert.Equal(t, 2250.0, svc.AverageCalories())
}

func TestProgressServiceAverageCaloriesEmpty(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	storeEntries(t, store, 1, []domain.ProgressEntry{
		{ID: "a", Date: base, Weight: 85},
	})

	svc := NewProgressService(ctx, store, 1)
	assert.Equal(t, 0.0, svc.AverageCalories())
}

func TestProgressServiceDeleteEntry(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	storeEntries(t, store, 1, []domain.ProgressEntry{
		{ID: "a", Date: base, Weight: 85},
		{ID: "b", Date: base.AddDate(0, 0, 7), Weight: 84},
	})

	svc := NewProgressService(ctx, store, 1)
	require.NoError(t, svc.DeleteEntry(ctx, "a"))
	require.Len(t, svc.Entries(), 1)
	assert.Equal(t, "b", svc.Entries()[0].ID)

	// Deleting an unknown identifier is a silent no-op.
	require.NoError(t, svc.DeleteEntry(ctx, "zzz"))
	assert.Len(t, svc.Entries(), 1)
}

func TestProgressServiceCompare(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	storeEntries(t, store, 1, []domain.ProgressEntry{
		{ID: "a", Date: base, Weight: 85},
		{ID: "b", Date: base.AddDate(0, 0, 7), Weight: 84},
		{ID: "c", Date: base.AddDate(0, 0, 14), Weight: 83},
	})

	svc := NewProgressService(ctx, store, 1)

	comparison := svc.Compare("a", "c")
	require.NotNil(t, comparison.Before)
	require.NotNil(t, comparison.After)
	assert.Equal(t, 85.0, comparison.Before.Weight)
	assert.Equal(t, 83.0, comparison.After.Weight)

	// Unknown identifiers yield empty slots, not errors.
	partial := svc.Compare("a", "zzz")
	assert.NotNil(t, partial.Before)
	assert.Nil(t, partial.After)

	byDefault := svc.DefaultComparison()
	assert.Equal(t, "a", byDefault.Before.ID)
	assert.Equal(t, "c", byDefault.After.ID)

	assert.Equal(t, 85.0, svc.InitialWeight())
}
