package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brookxc/menuadmin/app/models"
	"github.com/brookxc/menuadmin/internal/store"
	"github.com/brookxc/menuadmin/pkg/metrics"
)

// RestaurantRepository handles document-store operations for Restaurant.
// Updates are full replaces of either the identity fields or the menu
// content; concurrent writers are last-write-wins by design.
type RestaurantRepository struct{}

func NewRestaurantRepository() *RestaurantRepository {
	return &RestaurantRepository{}
}

// List returns all restaurants ordered newest-created-first.
func (r *RestaurantRepository) List(ctx context.Context) ([]models.Restaurant, error) {
	col, err := store.Restaurants(ctx)
	if err != nil {
		return nil, err
	}

	defer metrics.ObserveStoreQuery("find", time.Now())

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("repository: list restaurants: %w", err)
	}
	defer cur.Close(ctx)

	restaurants := []models.Restaurant{}
	if err := cur.All(ctx, &restaurants); err != nil {
		return nil, fmt.Errorf("repository: decode restaurants: %w", err)
	}
	return restaurants, nil
}

// Create persists a new restaurant with defaults and timestamps applied.
func (r *RestaurantRepository) Create(ctx context.Context, restaurant models.Restaurant) (models.Restaurant, error) {
	col, err := store.Restaurants(ctx)
	if err != nil {
		return models.Restaurant{}, err
	}

	defer metrics.ObserveStoreQuery("insert", time.Now())

	restaurant.ApplyCreateDefaults(time.Now().UTC())
	if _, err := col.InsertOne(ctx, restaurant); err != nil {
		return models.Restaurant{}, fmt.Errorf("repository: create restaurant: %w", err)
	}
	return restaurant, nil
}

// FindByID looks up a restaurant by its hex identifier.
// A malformed identifier resolves to ErrNotFound, not a store error.
func (r *RestaurantRepository) FindByID(ctx context.Context, id string) (models.Restaurant, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Restaurant{}, models.ErrNotFound
	}

	col, err := store.Restaurants(ctx)
	if err != nil {
		return models.Restaurant{}, err
	}

	defer metrics.ObserveStoreQuery("find", time.Now())

	var restaurant models.Restaurant
	err = col.FindOne(ctx, bson.M{"_id": oid}).Decode(&restaurant)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Restaurant{}, models.ErrNotFound
	}
	if err != nil {
		return models.Restaurant{}, fmt.Errorf("repository: find restaurant: %w", err)
	}
	return restaurant, nil
}

// UpdateInfo replaces the identity fields, leaving the menu untouched.
func (r *RestaurantRepository) UpdateInfo(ctx context.Context, id string, info models.InfoUpdate) (models.Restaurant, error) {
	return r.findAndUpdate(ctx, id, bson.M{
		"name":        info.Name,
		"location":    info.Location,
		"description": info.Description,
		"logo":        info.Logo,
		"coverPhoto":  info.CoverPhoto,
		"themeColor":  info.ThemeColor,
	})
}

// UpdateMenu replaces the full menuCategories array, assigning identifiers
// to categories and items that have not been persisted before.
func (r *RestaurantRepository) UpdateMenu(ctx context.Context, id string, categories []models.MenuCategory) (models.Restaurant, error) {
	if categories == nil {
		categories = []models.MenuCategory{}
	}
	models.AssignMenuIDs(categories)
	return r.findAndUpdate(ctx, id, bson.M{"menuCategories": categories})
}

// SetLocked replaces the locked flag.
func (r *RestaurantRepository) SetLocked(ctx context.Context, id string, locked bool) (models.Restaurant, error) {
	return r.findAndUpdate(ctx, id, bson.M{"locked": locked})
}

// Delete removes the restaurant and, with it, every embedded category and
// item. A second delete of the same id reports ErrNotFound.
func (r *RestaurantRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}

	col, err := store.Restaurants(ctx)
	if err != nil {
		return err
	}

	defer metrics.ObserveStoreQuery("delete", time.Now())

	res := col.FindOneAndDelete(ctx, bson.M{"_id": oid})
	if errors.Is(res.Err(), mongo.ErrNoDocuments) {
		return models.ErrNotFound
	}
	if res.Err() != nil {
		return fmt.Errorf("repository: delete restaurant: %w", res.Err())
	}
	return nil
}

func (r *RestaurantRepository) findAndUpdate(ctx context.Context, id string, set bson.M) (models.Restaurant, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Restaurant{}, models.ErrNotFound
	}

	col, err := store.Restaurants(ctx)
	if err != nil {
		return models.Restaurant{}, err
	}

	defer metrics.ObserveStoreQuery("update", time.Now())

	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var restaurant models.Restaurant
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&restaurant)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Restaurant{}, models.ErrNotFound
	}
	if err != nil {
		return models.Restaurant{}, fmt.Errorf("repository: update restaurant: %w", err)
	}
	return restaurant, nil
}
