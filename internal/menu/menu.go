package menu

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fatimaskitchen/storefront/internal/cart"
	pkgerrors "github.com/fatimaskitchen/storefront/pkg/errors"
)

var validate = validator.New()

// Nutrition is informational only.
type Nutrition struct {
	Calories string `json:"calories,omitempty"`
	Protein  string `json:"protein,omitempty"`
	Fats     string `json:"fats,omitempty"`
}

// Item is a dish as shown on the menu. Price is in whole rupees.
type Item struct {
	ID            string    `json:"id" validate:"required"`
	Name          string    `json:"name" validate:"required"`
	Price         int64     `json:"price" validate:"gte=0"`
	OriginalPrice int64     `json:"originalPrice,omitempty" validate:"gte=0"`
	Description   string    `json:"description"`
	Image         string    `json:"image"`
	Tags          []string  `json:"tags"`
	Nutrition     Nutrition `json:"nutrition"`
	Spicy         bool      `json:"isSpicy"`
	Vegetarian    bool      `json:"isVegetarian"`
	Available     bool      `json:"available"`
}

// Category groups dishes for display.
type Category struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"category" validate:"required"`
	Description string `json:"description"`
	Items       []Item `json:"items" validate:"dive"`
}

type entry struct {
	item     Item
	category string
}

// Menu is an immutable, indexed view of the categories it was built from.
type Menu struct {
	categories []Category
	byID       map[string]entry
}

// New validates categories and indexes every item by id. Item ids must be
// unique across the whole menu.
func New(categories []Category) (*Menu, error) {
	m := &Menu{byID: map[string]entry{}}
	for _, cat := range categories {
		if err := validate.Struct(cat); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("menu category %q invalid", cat.ID))
		}
		for _, item := range cat.Items {
			if _, dup := m.byID[item.ID]; dup {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("duplicate menu item id %s", item.ID))
			}
			m.byID[item.ID] = entry{item: item, category: cat.Name}
		}
		m.categories = append(m.categories, cat)
	}
	return m, nil
}

// Categories returns the menu in display order.
func (m *Menu) Categories() []Category {
	out := make([]Category, len(m.categories))
	for i, cat := range m.categories {
		out[i] = cat
		out[i].Items = append([]Item(nil), cat.Items...)
	}
	return out
}

// Lookup returns the item with id.
func (m *Menu) Lookup(id string) (Item, bool) {
	e, ok := m.byID[strings.TrimSpace(id)]
	return e.item, ok
}

// Search matches query case-insensitively against item names, descriptions,
// tags and the category name. An empty query matches nothing.
func (m *Menu) Search(query string) []Item {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []Item{}
	}
	matches := []Item{}
	for _, cat := range m.categories {
		catMatch := strings.Contains(strings.ToLower(cat.Name), q)
		for _, item := range cat.Items {
			if catMatch || itemMatches(item, q) {
				matches = append(matches, item)
			}
		}
	}
	return matches
}

func itemMatches(item Item, q string) bool {
	if strings.Contains(strings.ToLower(item.Name), q) ||
		strings.Contains(strings.ToLower(item.Description), q) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Candidate converts a menu item into what the cart accepts. Unknown and
// unavailable dishes are refused.
func (m *Menu) Candidate(id string) (cart.Candidate, error) {
	item, ok := m.Lookup(id)
	if !ok {
		return cart.Candidate{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("menu item %s not found", id))
	}
	if !item.Available {
		return cart.Candidate{}, pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("%s is currently unavailable", item.Name)).
			WithDetails(map[string]any{"item_id": item.ID})
	}
	return cart.Candidate{
		ID:        item.ID,
		Name:      item.Name,
		UnitPrice: item.Price,
		ImageRef:  item.Image,
	}, nil
}
