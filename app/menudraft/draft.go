// Package menudraft holds a working copy of a restaurant's menu while it is
// being edited. All operations are local and ordered; nothing touches the
// store until the caller persists Categories() as a full replace.
//
// Indices are validated against the current list on every call, never
// cached across mutations.
package menudraft

import (
	"errors"
	"fmt"
	"strings"

	"github.com/brookxc/menuadmin/app/models"
)

var (
	ErrEmptyCategoryName = errors.New("category name must not be empty")
	ErrEmptyItemName     = errors.New("item name must not be empty")
)

// Draft is the in-memory ordered sequence of categories and their items.
type Draft struct {
	categories []models.MenuCategory
}

// New seeds a draft from the last-saved categories. The input is deep-copied
// so draft edits never leak into the caller's slice.
func New(seed []models.MenuCategory) *Draft {
	return &Draft{categories: copyCategories(seed)}
}

// Len returns the number of categories.
func (d *Draft) Len() int { return len(d.categories) }

// Categories returns a deep copy of the draft in display order.
func (d *Draft) Categories() []models.MenuCategory {
	return copyCategories(d.categories)
}

// AddCategory appends a category with the trimmed name.
// A name that is empty after trimming is rejected.
func (d *Draft) AddCategory(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyCategoryName
	}
	d.categories = append(d.categories, models.MenuCategory{
		Name:  name,
		Items: []models.MenuItem{},
	})
	return nil
}

// RemoveCategoryAt deletes the category at index i and all its items.
// Confirmation is the caller's concern; removal here is immediate.
func (d *Draft) RemoveCategoryAt(i int) error {
	if err := d.checkCategory(i); err != nil {
		return err
	}
	d.categories = append(d.categories[:i], d.categories[i+1:]...)
	return nil
}

// AppendItem adds item to the end of category cat.
func (d *Draft) AppendItem(cat int, item models.MenuItem) error {
	if err := d.checkCategory(cat); err != nil {
		return err
	}
	norm, err := normalizeItem(item)
	if err != nil {
		return err
	}
	d.categories[cat].Items = append(d.categories[cat].Items, norm)
	return nil
}

// ReplaceItemAt overwrites the item at position idx in category cat,
// keeping its place in the list.
func (d *Draft) ReplaceItemAt(cat, idx int, item models.MenuItem) error {
	if err := d.checkItem(cat, idx); err != nil {
		return err
	}
	norm, err := normalizeItem(item)
	if err != nil {
		return err
	}
	d.categories[cat].Items[idx] = norm
	return nil
}

// RemoveItemAt deletes the item at position idx in category cat.
func (d *Draft) RemoveItemAt(cat, idx int) error {
	if err := d.checkItem(cat, idx); err != nil {
		return err
	}
	items := d.categories[cat].Items
	d.categories[cat].Items = append(items[:idx], items[idx+1:]...)
	return nil
}

func (d *Draft) checkCategory(i int) error {
	if i < 0 || i >= len(d.categories) {
		return fmt.Errorf("category index %d out of range [0,%d)", i, len(d.categories))
	}
	return nil
}

func (d *Draft) checkItem(cat, idx int) error {
	if err := d.checkCategory(cat); err != nil {
		return err
	}
	if idx < 0 || idx >= len(d.categories[cat].Items) {
		return fmt.Errorf("item index %d out of range [0,%d)", idx, len(d.categories[cat].Items))
	}
	return nil
}

// normalizeItem trims the name and defaults a missing description to the
// empty string, matching what the edit buffer saves.
func normalizeItem(item models.MenuItem) (models.MenuItem, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return models.MenuItem{}, ErrEmptyItemName
	}
	item.Description = strings.TrimSpace(item.Description)
	return item, nil
}

func copyCategories(src []models.MenuCategory) []models.MenuCategory {
	out := make([]models.MenuCategory, len(src))
	for i, c := range src {
		c.Items = append([]models.MenuItem(nil), c.Items...)
		if c.Items == nil {
			c.Items = []models.MenuItem{}
		}
		out[i] = c
	}
	return out
}
