package models

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSettingsDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&Settings{}); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestGetSettingsDefaults(t *testing.T) {
	db := setupSettingsDB(t)

	s, err := GetSettings(db)
	assert.NoError(t, err)
	assert.Equal(t, "Mon Restaurant", s.RestaurantName)
	assert.Equal(t, 40, s.Capacity)
	assert.True(t, s.ReservationEnabled)

	// defaults are served, never persisted
	var count int64
	db.Model(&Settings{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestSaveSettingsUpsert(t *testing.T) {
	db := setupSettingsDB(t)

	first := DefaultSettings()
	first.RestaurantName = "Chez Momo"
	assert.NoError(t, SaveSettings(db, first))

	second := first
	second.RestaurantName = "Chez Momo 2"
	second.Capacity = 60
	second.ReservationEnabled = false
	assert.NoError(t, SaveSettings(db, second))

	var count int64
	db.Model(&Settings{}).Count(&count)
	assert.Equal(t, int64(1), count)

	s, err := GetSettings(db)
	assert.NoError(t, err)
	assert.Equal(t, "Chez Momo 2", s.RestaurantName)
	assert.Equal(t, 60, s.Capacity)
	assert.False(t, s.ReservationEnabled)
}

func TestParseSettingsForm(t *testing.T) {
	values := map[string]string{
		"restaurant_name":     "La Table",
		"address":             "1 rue du Four",
		"phone":               "0102030405",
		"email":               "contact@latable.fr",
		"capacity":            "55",
		"reservation_enabled": "1",
		"opening_hours":       "12h-14h / 19h-22h",
	}
	get := func(k string) string { return values[k] }

	s, errs := ParseSettingsForm(get)
	assert.Empty(t, errs)
	assert.Equal(t, "La Table", s.RestaurantName)
	assert.Equal(t, 55, s.Capacity)
	assert.True(t, s.ReservationEnabled)

	values["capacity"] = "0"
	_, errs = ParseSettingsForm(get)
	assert.Equal(t, []string{"Capacité invalide (min 1)."}, errs)

	values["capacity"] = "quarante"
	_, errs = ParseSettingsForm(get)
	assert.Equal(t, []string{"Capacité invalide (min 1)."}, errs)

	values["capacity"] = "55"
	values["restaurant_name"] = "   "
	values["reservation_enabled"] = ""
	s, errs = ParseSettingsForm(get)
	assert.Equal(t, []string{"Le nom du restaurant est obligatoire."}, errs)
	assert.False(t, s.ReservationEnabled)
}
