package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionTTL is how long an admin stays logged in.
const SessionTTL = 24 * time.Hour

// AdminSession is a server-side login session. Preview holds the staged
// CSV import as JSON; an empty value means no import is pending, so the
// slot behaves as a tagged Idle/Previewed state with transitions only
// through StorePreview, ClearPreview and the confirm flow.
type AdminSession struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	AdminID   uint      `gorm:"not null"`
	Preview   []byte    `gorm:"type:mediumblob"`
	Flash     string    `gorm:"type:varchar(255)"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

func CreateAdminSession(db *gorm.DB, adminID uint) (*AdminSession, error) {
	s := &AdminSession{
		ID:        uuid.NewString(),
		AdminID:   adminID,
		ExpiresAt: time.Now().Add(SessionTTL),
	}
	if err := db.Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// FindAdminSession loads a session by id; expired rows are removed and
// reported as not found.
func FindAdminSession(db *gorm.DB, id string) (*AdminSession, error) {
	var s AdminSession
	if err := db.First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if time.Now().After(s.ExpiresAt) {
		db.Delete(&s)
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func DeleteAdminSession(db *gorm.DB, id string) error {
	return db.Delete(&AdminSession{}, "id = ?", id).Error
}

// ImportState reports the staged preview, if any. A corrupt blob counts
// as Idle.
func (s *AdminSession) ImportState() (ImportPreview, bool) {
	if len(s.Preview) == 0 {
		return ImportPreview{}, false
	}
	var p ImportPreview
	if err := json.Unmarshal(s.Preview, &p); err != nil {
		return ImportPreview{}, false
	}
	return p, true
}

// StorePreview stages an import, overwriting any pending one.
func (s *AdminSession) StorePreview(db *gorm.DB, p ImportPreview) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	s.Preview = raw
	return db.Model(s).Update("preview", raw).Error
}

// ClearPreview returns the import slot to Idle.
func (s *AdminSession) ClearPreview(db *gorm.DB) error {
	s.Preview = nil
	return db.Model(s).Update("preview", nil).Error
}

// SetFlash stores a one-shot message for the next settings page render.
func (s *AdminSession) SetFlash(db *gorm.DB, message string) error {
	s.Flash = message
	return db.Model(s).Update("flash", message).Error
}

// TakeFlash returns the pending flash message and clears it.
func (s *AdminSession) TakeFlash(db *gorm.DB) string {
	if s.Flash == "" {
		return ""
	}
	message := s.Flash
	s.Flash = ""
	db.Model(s).Update("flash", "")
	return message
}
