// Command createadmin provisions an administrator account. Admins are
// never created through the web flow.
//
// Usage: createadmin <email> <password>
package main

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"restobackoffice/config"
	"restobackoffice/models"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	if len(os.Args) != 3 {
		log.Fatal("Usage: createadmin <email> <password>")
	}
	email, password := os.Args[1], os.Args[2]

	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Admin{}); err != nil {
		log.Fatalf("Failed to AutoMigrate: %v", err)
	}

	if _, err := models.FindAdminByEmail(db, email); err == nil {
		log.Fatal("Cet email admin existe déjà.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Erreur MySQL: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Erreur hash: %v", err)
	}

	admin := models.Admin{Email: email, PasswordHash: string(hash)}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Erreur insertion: %v", err)
	}

	log.Printf("Admin créé avec succès. ID: %d", admin.ID)
}
