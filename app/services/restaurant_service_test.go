package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/brookxc/menuadmin/app/menudraft"
	"github.com/brookxc/menuadmin/app/models"
)

type memStore struct {
	mu          sync.Mutex
	restaurants map[string]models.Restaurant
}

func newMemStore() *memStore {
	return &memStore{restaurants: make(map[string]models.Restaurant)}
}

func (m *memStore) List(ctx context.Context) ([]models.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Restaurant, 0, len(m.restaurants))
	for _, r := range m.restaurants {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) Create(ctx context.Context, r models.Restaurant) (models.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r.ApplyCreateDefaults(time.Now())
	m.restaurants[r.ID.Hex()] = r
	return r, nil
}

func (m *memStore) FindByID(ctx context.Context, id string) (models.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.restaurants[id]
	if !ok {
		return models.Restaurant{}, models.ErrNotFound
	}
	return r, nil
}

func (m *memStore) UpdateInfo(ctx context.Context, id string, info models.InfoUpdate) (models.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.restaurants[id]
	if !ok {
		return models.Restaurant{}, models.ErrNotFound
	}
	r.Name = info.Name
	r.Location = info.Location
	r.Description = info.Description
	r.Logo = info.Logo
	r.CoverPhoto = info.CoverPhoto
	r.ThemeColor = info.ThemeColor
	r.UpdatedAt = time.Now()
	m.restaurants[id] = r
	return r, nil
}

func (m *memStore) UpdateMenu(ctx context.Context, id string, categories []models.MenuCategory) (models.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.restaurants[id]
	if !ok {
		return models.Restaurant{}, models.ErrNotFound
	}
	models.AssignMenuIDs(categories)
	r.MenuCategories = categories
	r.UpdatedAt = time.Now()
	m.restaurants[id] = r
	return r, nil
}

func (m *memStore) SetLocked(ctx context.Context, id string, locked bool) (models.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.restaurants[id]
	if !ok {
		return models.Restaurant{}, models.ErrNotFound
	}
	r.Locked = locked
	r.UpdatedAt = time.Now()
	m.restaurants[id] = r
	return r, nil
}

func (m *memStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.restaurants[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.restaurants, id)
	return nil
}

func seedRestaurant(t *testing.T, store *memStore, locked bool) models.Restaurant {
	t.Helper()

	created, err := store.Create(context.Background(), models.Restaurant{
		Name:     "Addis Kitchen",
		Location: "Bole, Addis Ababa",
	})
	require.NoError(t, err)

	if locked {
		created, err = store.SetLocked(context.Background(), created.ID.Hex(), true)
		require.NoError(t, err)
	}
	return created
}

func TestUpdateMenuNormalizesAndPreservesCategoryIDs(t *testing.T) {
	store := newMemStore()
	svc := NewRestaurantService(store)
	seeded := seedRestaurant(t, store, false)

	existingID := primitive.NewObjectID()
	updated, err := svc.UpdateMenu(context.Background(), seeded.ID.Hex(), []models.MenuCategory{
		{
			ID:   existingID,
			Name: "  Breakfast  ",
			Items: []models.MenuItem{
				{Name: " Chechebsa ", Price: 120, Description: "  spiced flatbread  "},
			},
		},
		{Name: "Drinks"},
	})
	require.NoError(t, err)
	require.Len(t, updated.MenuCategories, 2)

	first := updated.MenuCategories[0]
	assert.Equal(t, existingID, first.ID)
	assert.Equal(t, "Breakfast", first.Name)
	require.Len(t, first.Items, 1)
	assert.Equal(t, "Chechebsa", first.Items[0].Name)
	assert.Equal(t, "spiced flatbread", first.Items[0].Description)
	assert.False(t, first.Items[0].ID.IsZero())

	second := updated.MenuCategories[1]
	assert.False(t, second.ID.IsZero())
	assert.NotNil(t, second.Items)
	assert.Empty(t, second.Items)
}

func TestCreateNormalizesMenuContent(t *testing.T) {
	store := newMemStore()
	svc := NewRestaurantService(store)

	created, err := svc.Create(context.Background(), models.Restaurant{
		Name:     "Addis Kitchen",
		Location: "Bole",
		MenuCategories: []models.MenuCategory{
			{Name: "  Drinks ", Items: []models.MenuItem{{Name: " Tea ", Price: 50}}},
		},
	})
	require.NoError(t, err)
	require.Len(t, created.MenuCategories, 1)
	assert.Equal(t, "Drinks", created.MenuCategories[0].Name)
	assert.Equal(t, "Tea", created.MenuCategories[0].Items[0].Name)
}

func TestCreateRejectsBlankMenuNames(t *testing.T) {
	store := newMemStore()
	svc := NewRestaurantService(store)

	_, err := svc.Create(context.Background(), models.Restaurant{
		Name:           "Addis Kitchen",
		Location:       "Bole",
		MenuCategories: []models.MenuCategory{{Name: "   "}},
	})
	assert.ErrorIs(t, err, menudraft.ErrEmptyCategoryName)

	_, err = svc.Create(context.Background(), models.Restaurant{
		Name:           "Addis Kitchen",
		Location:       "Bole",
		MenuCategories: []models.MenuCategory{{Name: "Drinks", Items: []models.MenuItem{{Name: " "}}}},
	})
	assert.ErrorIs(t, err, menudraft.ErrEmptyItemName)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list, "rejected creates must not persist")
}

func TestUpdateMenuRejectsBlankNames(t *testing.T) {
	store := newMemStore()
	svc := NewRestaurantService(store)
	seeded := seedRestaurant(t, store, false)

	_, err := svc.UpdateMenu(context.Background(), seeded.ID.Hex(), []models.MenuCategory{
		{Name: "   "},
	})
	assert.ErrorIs(t, err, menudraft.ErrEmptyCategoryName)

	_, err = svc.UpdateMenu(context.Background(), seeded.ID.Hex(), []models.MenuCategory{
		{Name: "Mains", Items: []models.MenuItem{{Name: " "}}},
	})
	assert.ErrorIs(t, err, menudraft.ErrEmptyItemName)

	got, err := store.FindByID(context.Background(), seeded.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, got.MenuCategories, "failed updates must not write")
}

func TestMutationsRefusedWhileLocked(t *testing.T) {
	store := newMemStore()
	svc := NewRestaurantService(store)
	seeded := seedRestaurant(t, store, true)
	id := seeded.ID.Hex()

	_, err := svc.UpdateInfo(context.Background(), id, models.InfoUpdate{Name: "New", Location: "Elsewhere"})
	assert.ErrorIs(t, err, models.ErrLocked)

	_, err = svc.UpdateMenu(context.Background(), id, []models.MenuCategory{{Name: "Mains"}})
	assert.ErrorIs(t, err, models.ErrLocked)

	err = svc.Delete(context.Background(), id)
	assert.ErrorIs(t, err, models.ErrLocked)

	got, err := store.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Addis Kitchen", got.Name)
}

func TestUnlockWorksWhileLocked(t *testing.T) {
	store := newMemStore()
	svc := NewRestaurantService(store)
	seeded := seedRestaurant(t, store, true)

	updated, err := svc.SetLocked(context.Background(), seeded.ID.Hex(), false)
	require.NoError(t, err)
	assert.False(t, updated.Locked)

	_, err = svc.UpdateInfo(context.Background(), seeded.ID.Hex(), models.InfoUpdate{Name: "New", Location: "Elsewhere"})
	assert.NoError(t, err)
}

func TestGetPublicUnknownID(t *testing.T) {
	svc := NewRestaurantService(newMemStore())

	_, err := svc.GetPublic(context.Background(), primitive.NewObjectID().Hex())
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestGetPublicReadsThrough(t *testing.T) {
	store := newMemStore()
	svc := NewRestaurantService(store)
	seeded := seedRestaurant(t, store, false)

	got, err := svc.GetPublic(context.Background(), seeded.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, got.ID)
	assert.Equal(t, models.DefaultThemeColor, got.ThemeColor)
}
