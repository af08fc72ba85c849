package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultThemeColor is applied when a restaurant is created without one.
const DefaultThemeColor = "#3B82F6"

// Restaurant is the root document: it owns its menu categories outright,
// and they in turn own their items. Nothing is shared across restaurants.
type Restaurant struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Location       string             `bson:"location" json:"location"`
	Description    string             `bson:"description" json:"description"`
	Logo           *string            `bson:"logo" json:"logo"`
	CoverPhoto     *string            `bson:"coverPhoto" json:"coverPhoto"`
	ThemeColor     string             `bson:"themeColor" json:"themeColor"`
	Locked         bool               `bson:"locked" json:"locked"`
	MenuCategories []MenuCategory     `bson:"menuCategories" json:"menuCategories"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// MenuCategory is a named, ordered group of items. Slice position is the
// only ordering signal.
type MenuCategory struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Items []MenuItem         `bson:"items" json:"items"`
}

// MenuItem is a single sellable entry within a category.
type MenuItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Price       Price              `bson:"price" json:"price"`
	Description string             `bson:"description" json:"description"`
	Image       *string            `bson:"image" json:"image"`
}

// Price is numeric in storage but arrives from the menu builder as a string
// ("50") or a JSON number (50); both decode to the same value.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		str = strings.TrimSpace(str)
		if str == "" {
			return fmt.Errorf("price must not be empty")
		}
		f, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return fmt.Errorf("price %q is not numeric", str)
		}
		*p = Price(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("price must be a number or numeric string")
	}
	*p = Price(f)
	return nil
}

// Display renders the price the way the public menu shows it, without a
// trailing ".00" for whole amounts.
func (p Price) Display() string {
	return strconv.FormatFloat(float64(p), 'f', -1, 64)
}

// InfoUpdate is the identity-replace variant of a restaurant update. The
// other variant is a menu-content replace; the two are mutually exclusive
// request shapes and each fully replaces only its own fields.
type InfoUpdate struct {
	Name        string  `bson:"name" json:"name"`
	Location    string  `bson:"location" json:"location"`
	Description string  `bson:"description" json:"description"`
	Logo        *string `bson:"logo" json:"logo"`
	CoverPhoto  *string `bson:"coverPhoto" json:"coverPhoto"`
	ThemeColor  string  `bson:"themeColor" json:"themeColor"`
}

// ApplyCreateDefaults fills store-side defaults for a new restaurant and
// stamps both timestamps.
func (r *Restaurant) ApplyCreateDefaults(now time.Time) {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	if r.ThemeColor == "" {
		r.ThemeColor = DefaultThemeColor
	}
	if r.MenuCategories == nil {
		r.MenuCategories = []MenuCategory{}
	}
	r.Locked = false
	r.CreatedAt = now
	r.UpdatedAt = now
	AssignMenuIDs(r.MenuCategories)
}

// AssignMenuIDs gives identifiers to any categories or items that have not
// been persisted yet. Empty item slices are normalized away from nil so the
// document always round-trips as [] rather than null.
func AssignMenuIDs(categories []MenuCategory) {
	for i := range categories {
		if categories[i].ID.IsZero() {
			categories[i].ID = primitive.NewObjectID()
		}
		if categories[i].Items == nil {
			categories[i].Items = []MenuItem{}
		}
		for j := range categories[i].Items {
			if categories[i].Items[j].ID.IsZero() {
				categories[i].Items[j].ID = primitive.NewObjectID()
			}
		}
	}
}
