package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"restobackoffice/models"
)

const importHeader = "name;description;category;price_eur;is_available;is_vegetarian;is_halal;is_spicy;position"

func setupImportDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Dish{}); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestParseDishCSV(t *testing.T) {
	csv := importHeader + "\n" +
		"Salade César;Laitue, poulet, parmesan;ENTREE;9,50;1;0;0;0;1\n" +
		"Curry de légumes;Légumes de saison;plat;12.00;1;1;1;1;2\n"

	preview, err := ParseDishCSV(strings.NewReader(csv))
	assert.NoError(t, err)
	assert.Equal(t, 2, preview.Total)
	assert.Equal(t, 2, preview.Valid)
	assert.Empty(t, preview.Errors)

	first := preview.Rows[0].Dish
	assert.Equal(t, "Salade César", first.Name)
	assert.Equal(t, 950, first.PriceCents)
	assert.Equal(t, models.CategoryEntree, first.Category)
	assert.True(t, first.IsAvailable)
	assert.False(t, first.IsVegetarian)
	assert.Equal(t, 1, first.Position)

	// category is upper-cased, dot prices accepted
	second := preview.Rows[1].Dish
	assert.Equal(t, models.CategoryPlat, second.Category)
	assert.Equal(t, 1200, second.PriceCents)
	assert.True(t, second.IsHalal)
}

func TestParseDishCSVRowErrors(t *testing.T) {
	csv := importHeader + "\n" +
		";Soupe;ENTREE;5,50;1;0;0;0;1\n" +
		"Mystère;;SNACK;gratuit;1;0;0;0;-3\n" +
		"Tarte;Aux pommes;DESSERT;6,00;1;1;0;0;4\n"

	preview, err := ParseDishCSV(strings.NewReader(csv))
	assert.NoError(t, err)
	assert.Equal(t, 3, preview.Total)
	assert.Equal(t, 1, preview.Valid)
	assert.Len(t, preview.Errors, 2)

	assert.Equal(t, "Ligne 2 : (sans nom) — Nom manquant", preview.Errors[0])
	assert.Equal(t,
		"Ligne 3 : Mystère — Description manquante • Catégorie invalide (SNACK) • Prix invalide • Position invalide",
		preview.Errors[1])

	valid := preview.ValidRows()
	assert.Len(t, valid, 1)
	assert.Equal(t, "Tarte", valid[0].Name)
}

func TestParseDishCSVMalformed(t *testing.T) {
	// unterminated quote aborts the whole parse
	_, err := ParseDishCSV(strings.NewReader(importHeader + "\n\"Soupe;ENTREE\n"))
	assert.Error(t, err)
}

func TestParseDishCSVEmpty(t *testing.T) {
	preview, err := ParseDishCSV(strings.NewReader(""))
	assert.NoError(t, err)
	assert.Equal(t, 0, preview.Total)

	preview, err = ParseDishCSV(strings.NewReader(importHeader + "\n\n\n"))
	assert.NoError(t, err)
	assert.Equal(t, 0, preview.Total)
}

func TestParseDishCSVTruncation(t *testing.T) {
	var b strings.Builder
	b.WriteString(importHeader + "\n")
	for i := 0; i < 250; i++ {
		fmt.Fprintf(&b, "Plat %d;Bon;PLAT;10,00;1;0;0;0;%d\n", i, i)
	}

	preview, err := ParseDishCSV(strings.NewReader(b.String()))
	assert.NoError(t, err)
	assert.Equal(t, 200, preview.Total)
	assert.Equal(t, 200, preview.Valid)
	assert.Len(t, preview.Errors, 1)
	assert.Equal(t, "Aperçu limité à 200 lignes (le fichier en contient 250).", preview.Errors[0])
}

func TestConfirmImport(t *testing.T) {
	db := setupImportDB(t)

	csv := importHeader + "\n" +
		"Entrée du chef;Terrine;ENTREE;7,50;1;0;0;0;1\n" +
		";Invalide;ENTREE;1,00;1;0;0;0;2\n" +
		"Plat du jour;Selon arrivage;PLAT;14,00;1;0;0;0;3\n"
	preview, err := ParseDishCSV(strings.NewReader(csv))
	assert.NoError(t, err)

	count, err := ConfirmImport(db, preview)
	assert.NoError(t, err)
	assert.Equal(t, 2, count)

	dishes, err := models.ListDishes(db, models.DishFilters{}, models.DishSort{Column: models.SortByID})
	assert.NoError(t, err)
	assert.Len(t, dishes, 2)
	// inserted in file order
	assert.Equal(t, "Entrée du chef", dishes[0].Name)
	assert.Equal(t, "Plat du jour", dishes[1].Name)
}

func TestConfirmImportNothingValid(t *testing.T) {
	db := setupImportDB(t)

	preview, err := ParseDishCSV(strings.NewReader(importHeader + "\n;Sans nom;ENTREE;5,00;1;0;0;0;1\n"))
	assert.NoError(t, err)

	_, err = ConfirmImport(db, preview)
	assert.ErrorIs(t, err, ErrNothingToImport)

	var count int64
	db.Model(&models.Dish{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestExportReimportRoundTrip(t *testing.T) {
	dishes := []models.Dish{
		{ID: 9, Position: 3, Name: `Café "gourmand"`, Description: "mignardises; café",
			Category: models.CategoryBoisson, PriceCents: 750, IsAvailable: true},
	}

	// the export carries a BOM plus extra id column, both must be tolerated
	preview, err := ParseDishCSV(strings.NewReader(string(DishesCSV(dishes))))
	assert.NoError(t, err)
	assert.Equal(t, 1, preview.Total)
	assert.Equal(t, 1, preview.Valid)

	got := preview.Rows[0].Dish
	assert.Equal(t, `Café "gourmand"`, got.Name)
	assert.Equal(t, "mignardises; café", got.Description)
	assert.Equal(t, 750, got.PriceCents)
	assert.Equal(t, 3, got.Position)
	assert.True(t, got.IsAvailable)
	assert.Zero(t, got.ID)
}
