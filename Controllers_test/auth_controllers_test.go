package Controllers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"restobackoffice/models"
	"restobackoffice/utils"
)

func TestLoginWrongCredentials(t *testing.T) {
	db, r := setupApp(t)
	seedAdmin(t, db, "admin@resto.test", "secret")

	w := doPostForm(r, "/auth/login", url.Values{
		"email":    {"admin@resto.test"},
		"password": {"wrong"},
	}, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login?error=1", w.Header().Get("Location"))

	// unknown email takes the same path
	w = doPostForm(r, "/auth/login", url.Values{
		"email":    {"nobody@resto.test"},
		"password": {"secret"},
	}, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login?error=1", w.Header().Get("Location"))

	var count int64
	db.Model(&models.AdminSession{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestLoginSuccess(t *testing.T) {
	db, r := setupApp(t)
	seedAdmin(t, db, "admin@resto.test", "secret")

	w := doPostForm(r, "/auth/login", url.Values{
		"email":    {"admin@resto.test"},
		"password": {"secret"},
	}, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/reservations", w.Header().Get("Location"))

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == utils.SessionCookieName {
			cookie = c
		}
	}
	if assert.NotNil(t, cookie, "login must set the session cookie") {
		assert.True(t, cookie.HttpOnly)
	}

	var count int64
	db.Model(&models.AdminSession{}).Count(&count)
	assert.Equal(t, int64(1), count)

	// the cookie opens the back office
	w = doGet(r, "/admin/reservations", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Réservations")
}

func TestRequireAdminRedirects(t *testing.T) {
	_, r := setupApp(t)

	w := doGet(r, "/admin/menu", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))

	w = doGet(r, "/admin/menu", &http.Cookie{Name: utils.SessionCookieName, Value: "garbage"})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))
}

func TestRequireAdminRejectsDeletedSession(t *testing.T) {
	db, r := setupApp(t)
	cookie := adminCookie(t, db)

	// valid token but the server-side session is gone
	db.Where("1 = 1").Delete(&models.AdminSession{})

	w := doGet(r, "/admin/menu", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))
}

func TestLogout(t *testing.T) {
	db, r := setupApp(t)
	cookie := adminCookie(t, db)

	w := doPostForm(r, "/auth/logout", url.Values{}, cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))

	var count int64
	db.Model(&models.AdminSession{}).Count(&count)
	assert.Equal(t, int64(0), count)

	// the stale cookie no longer opens the back office
	w = doGet(r, "/admin/reservations", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestLoginPage(t *testing.T) {
	_, r := setupApp(t)

	w := doGet(r, "/auth/login", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Identifiants incorrects.")

	w = doGet(r, "/auth/login?error=1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Identifiants incorrects.")
}
