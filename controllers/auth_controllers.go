package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"restobackoffice/models"
	"restobackoffice/utils"
	"restobackoffice/views"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

func (ac *AuthController) LoginPage(c *gin.Context) {
	errorBanner := ""
	if c.Query("error") != "" {
		errorBanner = `<p class="error">Identifiants incorrects.</p>`
	}

	body := errorBanner + `
<form method="POST" action="/auth/login">
<label>Email <input name="email" type="email" required maxlength="191"></label>
<label>Mot de passe <input name="password" type="password" required></label>
<button type="submit">Se connecter</button>
</form>
<p><a href="/">Retour site</a></p>`

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(views.Shell("Connexion — Admin", "", body)))
}

// Login checks the credentials and opens a server-side session. Every
// failure takes the same generic path so nothing leaks about which part
// was wrong.
func (ac *AuthController) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	admin, err := models.FindAdminByEmail(ac.DB, email)
	if err != nil {
		c.Redirect(http.StatusFound, "/auth/login?error=1")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		c.Redirect(http.StatusFound, "/auth/login?error=1")
		return
	}

	session, err := models.CreateAdminSession(ac.DB, admin.ID)
	if err != nil {
		utils.ErrorLogger.Printf("create session: %v", err)
		c.String(http.StatusInternalServerError, "Erreur serveur")
		return
	}

	token, err := utils.GenerateSessionToken(session.ID, admin.ID, models.SessionTTL)
	if err != nil {
		utils.ErrorLogger.Printf("session token: %v", err)
		c.String(http.StatusInternalServerError, "Erreur serveur")
		return
	}

	c.SetCookie(utils.SessionCookieName, token, int(models.SessionTTL.Seconds()), "/", "", false, true)
	utils.InfoLogger.Printf("admin login: %s", admin.Email)
	c.Redirect(http.StatusFound, "/admin/reservations")
}

func (ac *AuthController) Logout(c *gin.Context) {
	if token, err := c.Cookie(utils.SessionCookieName); err == nil && token != "" {
		if claims, err := utils.ParseSessionToken(token); err == nil {
			if err := models.DeleteAdminSession(ac.DB, claims.SessionID); err != nil {
				utils.ErrorLogger.Printf("delete session: %v", err)
			}
		}
	}

	c.SetCookie(utils.SessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/auth/login")
}
