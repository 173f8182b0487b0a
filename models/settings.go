package models

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// settingsID pins the singleton row; exactly one settings record ever
// exists.
const settingsID = 1

type Settings struct {
	ID                 uint   `gorm:"primaryKey"`
	RestaurantName     string `gorm:"type:varchar(120);not null"`
	Address            string `gorm:"type:varchar(255)"`
	Phone              string `gorm:"type:varchar(30)"`
	Email              string `gorm:"type:varchar(120)"`
	Capacity           int    `gorm:"not null"`
	ReservationEnabled bool   `gorm:"not null"`
	OpeningHours       string `gorm:"type:text"`
	UpdatedAt          time.Time
}

// DefaultSettings is served while no row exists yet, so callers never
// deal with a missing record.
func DefaultSettings() Settings {
	return Settings{
		ID:                 settingsID,
		RestaurantName:     "Mon Restaurant",
		Capacity:           40,
		ReservationEnabled: true,
	}
}

func GetSettings(db *gorm.DB) (Settings, error) {
	var s Settings
	err := db.First(&s, settingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return DefaultSettings(), nil
	}
	return s, err
}

// ParseSettingsForm validates the settings form. Failures come back as
// complete user-facing messages (they feed the flash banner).
func ParseSettingsForm(get func(string) string) (Settings, []string) {
	s := Settings{
		ID:                 settingsID,
		RestaurantName:     strings.TrimSpace(get("restaurant_name")),
		Address:            strings.TrimSpace(get("address")),
		Phone:              strings.TrimSpace(get("phone")),
		Email:              strings.TrimSpace(get("email")),
		OpeningHours:       strings.TrimSpace(get("opening_hours")),
		ReservationEnabled: get("reservation_enabled") == "1",
	}

	var errs []string
	if s.RestaurantName == "" {
		errs = append(errs, "Le nom du restaurant est obligatoire.")
	}
	capacity, err := strconv.Atoi(strings.TrimSpace(get("capacity")))
	if err != nil || capacity < 1 {
		errs = append(errs, "Capacité invalide (min 1).")
	} else {
		s.Capacity = capacity
	}

	return s, errs
}

// SaveSettings upserts the singleton row: created on first save, updated
// thereafter.
func SaveSettings(db *gorm.DB, s Settings) error {
	s.ID = settingsID
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&s).Error
}
