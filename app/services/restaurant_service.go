package services

import (
	"context"
	"fmt"
	"time"

	"github.com/brookxc/menuadmin/app/menudraft"
	"github.com/brookxc/menuadmin/app/models"
	"github.com/brookxc/menuadmin/pkg/cache"
)

// publicMenuTTL bounds how stale a public menu page can get when a write
// slips past invalidation (e.g. Redis was briefly down during the save).
const publicMenuTTL = 60 * time.Second

// RestaurantStore is the persistence surface the service needs. The Mongo
// repository implements it; tests substitute an in-memory fake.
type RestaurantStore interface {
	List(ctx context.Context) ([]models.Restaurant, error)
	Create(ctx context.Context, restaurant models.Restaurant) (models.Restaurant, error)
	FindByID(ctx context.Context, id string) (models.Restaurant, error)
	UpdateInfo(ctx context.Context, id string, info models.InfoUpdate) (models.Restaurant, error)
	UpdateMenu(ctx context.Context, id string, categories []models.MenuCategory) (models.Restaurant, error)
	SetLocked(ctx context.Context, id string, locked bool) (models.Restaurant, error)
	Delete(ctx context.Context, id string) error
}

// RestaurantService owns the write rules: the locked flag is checked here,
// on the server, before any mutation — not only in the management UI.
type RestaurantService struct {
	store RestaurantStore
}

func NewRestaurantService(store RestaurantStore) *RestaurantService {
	return &RestaurantService{store: store}
}

func (s *RestaurantService) List(ctx context.Context) ([]models.Restaurant, error) {
	return s.store.List(ctx)
}

// Create persists a new restaurant. Any menu content supplied inline goes
// through the same draft rebuild as a menu update, so both write paths
// enforce identical content rules.
func (s *RestaurantService) Create(ctx context.Context, restaurant models.Restaurant) (models.Restaurant, error) {
	normalized, err := normalizeCategories(restaurant.MenuCategories)
	if err != nil {
		return models.Restaurant{}, err
	}
	restaurant.MenuCategories = normalized
	return s.store.Create(ctx, restaurant)
}

func (s *RestaurantService) Get(ctx context.Context, id string) (models.Restaurant, error) {
	return s.store.FindByID(ctx, id)
}

// GetPublic loads a restaurant for the unauthenticated menu page, serving
// from the Redis cache when possible. Cache failures degrade to a direct
// store read.
func (s *RestaurantService) GetPublic(ctx context.Context, id string) (models.Restaurant, error) {
	key := menuCacheKey(id)

	var cached models.Restaurant
	if cache.Get(key, &cached) {
		return cached, nil
	}

	restaurant, err := s.store.FindByID(ctx, id)
	if err != nil {
		return models.Restaurant{}, err
	}

	_ = cache.Set(key, restaurant, publicMenuTTL)
	return restaurant, nil
}

// UpdateInfo replaces the identity fields. Refused while locked.
func (s *RestaurantService) UpdateInfo(ctx context.Context, id string, info models.InfoUpdate) (models.Restaurant, error) {
	if err := s.ensureUnlocked(ctx, id); err != nil {
		return models.Restaurant{}, err
	}

	updated, err := s.store.UpdateInfo(ctx, id, info)
	if err != nil {
		return models.Restaurant{}, err
	}
	s.invalidate(id)
	return updated, nil
}

// UpdateMenu replaces the full menu content. The incoming categories are
// rebuilt through a draft so names are trimmed, descriptions normalized,
// and empty names rejected before anything is written. Identifiers from a
// previous save are preserved by position. Refused while locked.
func (s *RestaurantService) UpdateMenu(ctx context.Context, id string, categories []models.MenuCategory) (models.Restaurant, error) {
	if err := s.ensureUnlocked(ctx, id); err != nil {
		return models.Restaurant{}, err
	}

	normalized, err := normalizeCategories(categories)
	if err != nil {
		return models.Restaurant{}, err
	}

	updated, err := s.store.UpdateMenu(ctx, id, normalized)
	if err != nil {
		return models.Restaurant{}, err
	}
	s.invalidate(id)
	return updated, nil
}

// SetLocked replaces the lock flag. Toggling is allowed in either state.
func (s *RestaurantService) SetLocked(ctx context.Context, id string, locked bool) (models.Restaurant, error) {
	updated, err := s.store.SetLocked(ctx, id, locked)
	if err != nil {
		return models.Restaurant{}, err
	}
	s.invalidate(id)
	return updated, nil
}

// Delete removes the restaurant with all embedded content. Refused while
// locked, matching the disabled delete control in the management UI.
func (s *RestaurantService) Delete(ctx context.Context, id string) error {
	if err := s.ensureUnlocked(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(id)
	return nil
}

func (s *RestaurantService) ensureUnlocked(ctx context.Context, id string) error {
	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if current.Locked {
		return models.ErrLocked
	}
	return nil
}

func (s *RestaurantService) invalidate(id string) {
	_ = cache.Del(menuCacheKey(id))
}

func menuCacheKey(id string) string { return "menuadmin:menu:" + id }

// normalizeCategories rebuilds incoming menu content through a draft so
// names are trimmed, descriptions normalized, and empty names rejected.
// Identifiers from a previous save are preserved by position.
func normalizeCategories(categories []models.MenuCategory) ([]models.MenuCategory, error) {
	draft := menudraft.New(nil)
	for i, c := range categories {
		if err := draft.AddCategory(c.Name); err != nil {
			return nil, fmt.Errorf("category %d: %w", i, err)
		}
		for j, item := range c.Items {
			if err := draft.AppendItem(i, item); err != nil {
				return nil, fmt.Errorf("category %d item %d: %w", i, j, err)
			}
		}
	}

	normalized := draft.Categories()
	for i := range normalized {
		normalized[i].ID = categories[i].ID
	}
	return normalized, nil
}
