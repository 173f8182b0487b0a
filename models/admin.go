package models

import (
	"time"

	"gorm.io/gorm"
)

// Admin accounts are provisioned with cmd/createadmin; the web flow only
// ever reads them.
type Admin struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"type:varchar(191);unique;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
}

func FindAdminByEmail(db *gorm.DB, email string) (*Admin, error) {
	var admin Admin
	if err := db.Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}
