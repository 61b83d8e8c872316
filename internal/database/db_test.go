package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"huddle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open("sqlite3", filepath.Join(t.TempDir(), "huddle.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_ImportAndLoad(t *testing.T) {
	store := openTestStore(t)
	day := models.NewDate(2024, time.May, 20)

	diners := []models.Diner{
		{Name: "Ada", Reservations: []models.Reservation{
			{Date: day, NumberOfPeople: 2, Orders: []models.Order{
				{DietaryTags: models.DietaryTags{"vegan", "gluten-free"}},
				{DietaryTags: models.DietaryTags{}},
			}},
			{Date: day.AddDays(1), NumberOfPeople: 4},
		}},
		{Name: "Grace"},
		{Name: "Linus", Reservations: []models.Reservation{
			{Date: day, NumberOfPeople: 6, Orders: []models.Order{
				{DietaryTags: models.DietaryTags{"halal"}},
			}},
		}},
	}
	require.NoError(t, store.Import(diners))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 3)

	assert.Equal(t, "Ada", loaded[0].Name)
	require.Len(t, loaded[0].Reservations, 2)
	assert.True(t, loaded[0].Reservations[0].Date.Equal(day))
	assert.Equal(t, 2, loaded[0].Reservations[0].NumberOfPeople)
	require.Len(t, loaded[0].Reservations[0].Orders, 2)
	assert.Equal(t, models.DietaryTags{"vegan", "gluten-free"}, loaded[0].Reservations[0].Orders[0].DietaryTags)
	assert.Empty(t, loaded[0].Reservations[0].Orders[1].DietaryTags)
	assert.Empty(t, loaded[0].Reservations[1].Orders)

	assert.Equal(t, "Grace", loaded[1].Name)
	assert.Empty(t, loaded[1].Reservations)

	assert.Equal(t, "Linus", loaded[2].Name)
	require.Len(t, loaded[2].Reservations, 1)
	assert.Equal(t, models.DietaryTags{"halal"}, loaded[2].Reservations[0].Orders[0].DietaryTags)
}

func TestStore_LoadEmpty(t *testing.T) {
	store := openTestStore(t)

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestStore_LoadCancelled(t *testing.T) {
	store := openTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("oracle", "whatever")
	assert.Error(t, err)
}
