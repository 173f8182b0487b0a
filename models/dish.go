package models

import (
	"strconv"
	"strings"
	"time"
)

// Dish categories. The CSV import and the forms both normalize to
// uppercase before checking against this set.
const (
	CategoryEntree  = "ENTREE"
	CategoryPlat    = "PLAT"
	CategoryDessert = "DESSERT"
	CategoryBoisson = "BOISSON"
)

var AllowedCategories = []string{CategoryEntree, CategoryPlat, CategoryDessert, CategoryBoisson}

func IsAllowedCategory(category string) bool {
	for _, c := range AllowedCategories {
		if c == category {
			return true
		}
	}
	return false
}

type Dish struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(120);not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	PriceCents   int       `gorm:"not null" json:"price_cents"`
	Category     string    `gorm:"type:varchar(20);not null" json:"category"`
	IsVegetarian bool      `json:"is_vegetarian"`
	IsHalal      bool      `json:"is_halal"`
	IsSpicy      bool      `json:"is_spicy"`
	IsAvailable  bool      `json:"is_available"`
	Position     int       `gorm:"not null;default:0" json:"position"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// ParseDishForm builds a Dish from the create/edit form fields and
// reports the labels of the fields that failed validation. Checkbox
// fields are true only when the posted value is exactly "1".
func ParseDishForm(get func(string) string) (Dish, []string) {
	d := Dish{
		Name:         strings.TrimSpace(get("name")),
		Description:  strings.TrimSpace(get("description")),
		Category:     strings.ToUpper(strings.TrimSpace(get("category"))),
		IsAvailable:  get("is_available") == "1",
		IsVegetarian: get("is_vegetarian") == "1",
		IsHalal:      get("is_halal") == "1",
		IsSpicy:      get("is_spicy") == "1",
	}

	var errs []string
	if d.Name == "" {
		errs = append(errs, "Nom")
	}
	if !IsAllowedCategory(d.Category) {
		errs = append(errs, "Catégorie")
	}

	price, err := strconv.Atoi(strings.TrimSpace(get("price_cents")))
	if err != nil || price < 0 {
		errs = append(errs, "Prix")
	} else {
		d.PriceCents = price
	}

	if raw := strings.TrimSpace(get("position")); raw != "" {
		pos, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, "Position")
		} else {
			d.Position = pos
		}
	}

	return d, errs
}
