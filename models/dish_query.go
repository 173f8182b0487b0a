package models

import (
	"strings"

	"gorm.io/gorm"
)

// DishPageSize is the fixed page size of the admin menu listing.
const DishPageSize = 20

// DishFilters is the set of recognized listing filters. Active filters
// combine with AND; Search matches name, description or category.
type DishFilters struct {
	Search     string
	Vegetarian bool
	Halal      bool
	Spicy      bool
	Available  bool
}

// DishColumn is the closed set of sortable columns. Query strings are
// parsed once into this enum so that only mapped identifiers ever reach
// the ORDER BY text.
type DishColumn int

const (
	SortByPosition DishColumn = iota
	SortByID
	SortByName
	SortByCategory
	SortByPrice
	SortByAvailable
	SortByVegetarian
	SortByHalal
	SortBySpicy
)

// ParseDishColumn maps a raw query value to a column; anything outside
// the allow-list falls back to position.
func ParseDishColumn(raw string) DishColumn {
	switch strings.TrimSpace(raw) {
	case "id":
		return SortByID
	case "position":
		return SortByPosition
	case "name":
		return SortByName
	case "category":
		return SortByCategory
	case "price_cents":
		return SortByPrice
	case "is_available":
		return SortByAvailable
	case "is_vegetarian":
		return SortByVegetarian
	case "is_halal":
		return SortByHalal
	case "is_spicy":
		return SortBySpicy
	default:
		return SortByPosition
	}
}

func (c DishColumn) String() string {
	switch c {
	case SortByID:
		return "id"
	case SortByName:
		return "name"
	case SortByCategory:
		return "category"
	case SortByPrice:
		return "price_cents"
	case SortByAvailable:
		return "is_available"
	case SortByVegetarian:
		return "is_vegetarian"
	case SortByHalal:
		return "is_halal"
	case SortBySpicy:
		return "is_spicy"
	default:
		return "position"
	}
}

type DishSort struct {
	Column DishColumn
	Desc   bool
}

// ParseDishSort normalizes the sort/dir query parameters. Direction is
// ascending unless dir equals "desc" case-insensitively.
func ParseDishSort(col, dir string) DishSort {
	return DishSort{
		Column: ParseDishColumn(col),
		Desc:   strings.EqualFold(strings.TrimSpace(dir), "desc"),
	}
}

func (s DishSort) Dir() string {
	if s.Desc {
		return "desc"
	}
	return "asc"
}

// orderClause always tie-breaks by id so pagination stays stable.
func (s DishSort) orderClause() string {
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	return s.Column.String() + " " + dir + ", id ASC"
}

func (f DishFilters) apply(tx *gorm.DB) *gorm.DB {
	if search := strings.TrimSpace(f.Search); search != "" {
		like := "%" + search + "%"
		tx = tx.Where("(name LIKE ? OR description LIKE ? OR category LIKE ?)", like, like, like)
	}
	if f.Vegetarian {
		tx = tx.Where("is_vegetarian = ?", true)
	}
	if f.Halal {
		tx = tx.Where("is_halal = ?", true)
	}
	if f.Spicy {
		tx = tx.Where("is_spicy = ?", true)
	}
	if f.Available {
		tx = tx.Where("is_available = ?", true)
	}
	return tx
}

// DishStats are the listing counters: total matching rows plus how many
// of them carry each tag.
type DishStats struct {
	Total      int64
	Available  int64
	Vegetarian int64
	Halal      int64
	Spicy      int64
}

func CountDishStats(db *gorm.DB, f DishFilters) (DishStats, error) {
	var stats DishStats
	err := f.apply(db.Model(&Dish{})).Select(
		"COUNT(*) AS total, " +
			"COALESCE(SUM(CASE WHEN is_available THEN 1 ELSE 0 END), 0) AS available, " +
			"COALESCE(SUM(CASE WHEN is_vegetarian THEN 1 ELSE 0 END), 0) AS vegetarian, " +
			"COALESCE(SUM(CASE WHEN is_halal THEN 1 ELSE 0 END), 0) AS halal, " +
			"COALESCE(SUM(CASE WHEN is_spicy THEN 1 ELSE 0 END), 0) AS spicy").
		Scan(&stats).Error
	return stats, err
}

// DishPage is one page of the filtered listing. Page is already clamped
// to [1, TotalPages].
type DishPage struct {
	Dishes     []Dish
	Total      int64
	Page       int
	TotalPages int
}

func ListDishesPage(db *gorm.DB, f DishFilters, sort DishSort, page int) (DishPage, error) {
	var total int64
	if err := f.apply(db.Model(&Dish{})).Count(&total).Error; err != nil {
		return DishPage{}, err
	}

	totalPages := int((total + DishPageSize - 1) / DishPageSize)
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	var dishes []Dish
	err := f.apply(db.Model(&Dish{})).
		Order(sort.orderClause()).
		Limit(DishPageSize).
		Offset((page - 1) * DishPageSize).
		Find(&dishes).Error
	if err != nil {
		return DishPage{}, err
	}

	return DishPage{Dishes: dishes, Total: total, Page: page, TotalPages: totalPages}, nil
}

// ListDishes returns the whole filtered, sorted set (used by exports).
func ListDishes(db *gorm.DB, f DishFilters, sort DishSort) ([]Dish, error) {
	var dishes []Dish
	err := f.apply(db.Model(&Dish{})).Order(sort.orderClause()).Find(&dishes).Error
	return dishes, err
}

// ListPublicDishes is the visitor-facing menu: available dishes only, in
// display order.
func ListPublicDishes(db *gorm.DB) ([]Dish, error) {
	var dishes []Dish
	err := db.Where("is_available = ?", true).Order("position ASC, id ASC").Find(&dishes).Error
	return dishes, err
}
