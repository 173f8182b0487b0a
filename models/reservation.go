package models

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Reservation statuses. Only the admin moves a reservation out of
// PENDING; reservations are never deleted.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
)

var ErrInvalidStatus = errors.New("statut invalide")

func IsAllowedStatus(status string) bool {
	return status == StatusPending || status == StatusConfirmed || status == StatusCancelled
}

type Reservation struct {
	ID              uint   `gorm:"primaryKey"`
	Fullname        string `gorm:"type:varchar(120);not null"`
	Phone           string `gorm:"type:varchar(30);not null"`
	Email           string `gorm:"type:varchar(191)"`
	People          int    `gorm:"not null"`
	ReservationDate string `gorm:"type:varchar(10);not null"`
	ReservationTime string `gorm:"type:varchar(5);not null"`
	Message         string `gorm:"type:text"`
	Status          string `gorm:"type:varchar(20);not null;default:PENDING"`
	CreatedAt       time.Time
}

// ParseReservationForm validates the public booking form. On failure it
// returns the labels of the failing fields, which the form reports back
// verbatim. Date and time formats are enforced by the input widgets.
func ParseReservationForm(get func(string) string) (Reservation, []string) {
	r := Reservation{
		Fullname:        strings.TrimSpace(get("fullname")),
		Phone:           strings.TrimSpace(get("phone")),
		Email:           strings.TrimSpace(get("email")),
		ReservationDate: strings.TrimSpace(get("reservation_date")),
		ReservationTime: strings.TrimSpace(get("reservation_time")),
		Message:         strings.TrimSpace(get("message")),
		Status:          StatusPending,
	}

	var errs []string
	if r.Fullname == "" {
		errs = append(errs, "Nom")
	}
	if r.Phone == "" {
		errs = append(errs, "Téléphone")
	}
	people, err := strconv.Atoi(strings.TrimSpace(get("people")))
	if err != nil || people < 1 || people > 20 {
		errs = append(errs, "Personnes")
	} else {
		r.People = people
	}
	if r.ReservationDate == "" {
		errs = append(errs, "Date")
	}
	if r.ReservationTime == "" {
		errs = append(errs, "Heure")
	}

	return r, errs
}

// ListReservationsAdmin returns every reservation, most recent request
// first.
func ListReservationsAdmin(db *gorm.DB) ([]Reservation, error) {
	var reservations []Reservation
	err := db.Order("reservation_date DESC, reservation_time DESC, id DESC").Find(&reservations).Error
	return reservations, err
}

// UpdateReservationStatus rejects any value outside the status enum
// before touching storage.
func UpdateReservationStatus(db *gorm.DB, id uint, status string) error {
	if !IsAllowedStatus(status) {
		return ErrInvalidStatus
	}
	return db.Model(&Reservation{}).Where("id = ?", id).Update("status", status).Error
}
