package Controllers_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"restobackoffice/models"
	"restobackoffice/router"
	"restobackoffice/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Dish{},
		&models.Reservation{},
		&models.Settings{},
		&models.Admin{},
		&models.AdminSession{},
	)
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func setupApp(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	db := setupTestDB(t)
	return db, router.SetupRouter(db)
}

func seedAdmin(t *testing.T, db *gorm.DB, email, password string) models.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	admin := models.Admin{Email: email, PasswordHash: string(hash)}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatal(err)
	}
	return admin
}

// adminCookie provisions an admin with an open session and returns the
// cookie the browser would carry.
func adminCookie(t *testing.T, db *gorm.DB) *http.Cookie {
	t.Helper()
	admin := seedAdmin(t, db, "admin@resto.test", "secret")
	session, err := models.CreateAdminSession(db, admin.ID)
	if err != nil {
		t.Fatal(err)
	}
	token, err := utils.GenerateSessionToken(session.ID, admin.ID, models.SessionTTL)
	if err != nil {
		t.Fatal(err)
	}
	return &http.Cookie{Name: utils.SessionCookieName, Value: token}
}

func doGet(r *gin.Engine, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doPostForm(r *gin.Engine, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// doUpload posts content as the "file" field of a multipart form.
func doUpload(t *testing.T, r *gin.Engine, path, filename, content string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("POST", path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
