package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restobackoffice/models"
	"restobackoffice/utils"
)

// SessionKey is the gin context key under which RequireAdmin exposes the
// loaded *models.AdminSession.
const SessionKey = "session"

// RequireAdmin guards /admin routes: the session cookie is exchanged for
// its server-side session row, otherwise the browser is sent to the
// login page.
func RequireAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(utils.SessionCookieName)
		if err != nil || token == "" {
			redirectToLogin(c)
			return
		}

		claims, err := utils.ParseSessionToken(token)
		if err != nil {
			redirectToLogin(c)
			return
		}

		session, err := models.FindAdminSession(db, claims.SessionID)
		if err != nil {
			redirectToLogin(c)
			return
		}

		c.Set(SessionKey, session)
		c.Set("adminID", session.AdminID)
		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, "/auth/login")
	c.Abort()
}
