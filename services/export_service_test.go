package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"restobackoffice/models"
)

func TestExportFilename(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	assert.Equal(t, fmt.Sprintf("menu_export_%s.csv", today), ExportFilename("csv"))
	assert.Equal(t, fmt.Sprintf("menu_export_%s.xlsx", today), ExportFilename("xlsx"))
}

func TestDishesCSV(t *testing.T) {
	dishes := []models.Dish{
		{
			ID: 7, Position: 1, Name: `Tarte "maison"`, Description: "pommes; cannelle",
			Category: models.CategoryDessert, PriceCents: 650,
			IsAvailable: true, IsVegetarian: true,
		},
	}

	out := string(DishesCSV(dishes))
	assert.True(t, strings.HasPrefix(out, "\uFEFF"), "export must start with a BOM")

	lines := strings.Split(strings.TrimPrefix(out, "\uFEFF"), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t,
		`"id";"position";"name";"description";"category";"price_eur";"is_available";"is_vegetarian";"is_halal";"is_spicy"`,
		lines[0])
	assert.Equal(t,
		`"7";"1";"Tarte ""maison""";"pommes; cannelle";"DESSERT";"6,50";"1";"1";"0";"0"`,
		lines[1])
}

func TestDishesCSVEmpty(t *testing.T) {
	out := string(DishesCSV(nil))
	lines := strings.Split(strings.TrimPrefix(out, "\uFEFF"), "\n")
	assert.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"id";"position"`)
}

func TestDishesXLSX(t *testing.T) {
	dishes := []models.Dish{
		{ID: 3, Name: "Curry", Description: "doux", Category: models.CategoryPlat,
			PriceCents: 1450, IsAvailable: true, IsSpicy: true, Position: 2},
	}

	f, err := DishesXLSX(dishes)
	assert.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Equal(t, []string{"Menu"}, sheets)

	cell := func(ref string) string {
		v, err := f.GetCellValue("Menu", ref)
		assert.NoError(t, err)
		return v
	}
	assert.Equal(t, "Nom", cell("C1"))
	assert.Equal(t, "Curry", cell("C2"))
	assert.Equal(t, "PLAT", cell("E2"))
	assert.Equal(t, "14.5", cell("F2"))
	assert.Equal(t, "1", cell("G2"))
	assert.Equal(t, "1", cell("J2"))
}
