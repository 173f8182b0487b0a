package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restobackoffice/controllers"
	"restobackoffice/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.LoggerMiddleware())

	// 50 requests/second/IP across the whole surface
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	publicCtrl := controllers.NewPublicController(db)
	authCtrl := controllers.NewAuthController(db)
	adminCtrl := controllers.NewAdminController(db)
	menuCtrl := controllers.NewMenuController(db)
	importCtrl := controllers.NewImportController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/", publicCtrl.Home)
	r.GET("/menu", publicCtrl.Menu)
	r.GET("/infos", publicCtrl.Infos)
	r.GET("/reservation", publicCtrl.ReservationPage)
	r.POST("/reservation", publicCtrl.CreateReservation)

	// ----------------------------------------------------------------
	//                      AUTH
	// ----------------------------------------------------------------
	auth := r.Group("/auth")
	{
		auth.GET("/login", authCtrl.LoginPage)
		auth.POST("/login", middlewares.NewStrictRateLimiter(), authCtrl.Login)
		auth.POST("/logout", authCtrl.Logout)
	}

	// ----------------------------------------------------------------
	//                      ADMIN (session required)
	// ----------------------------------------------------------------
	admin := r.Group("/admin", middlewares.RequireAdmin(db))
	{
		admin.GET("/reservations", adminCtrl.ReservationsPage)
		admin.POST("/reservations/:id/status", adminCtrl.UpdateReservationStatus)

		admin.GET("/settings", adminCtrl.SettingsPage)
		admin.POST("/settings", adminCtrl.SettingsSave)

		menu := admin.Group("/menu")
		{
			menu.GET("", menuCtrl.List)
			menu.GET("/new", menuCtrl.NewPage)
			menu.POST("/new", menuCtrl.Create)
			menu.GET("/export", menuCtrl.ExportCSV)
			menu.GET("/export-xlsx", menuCtrl.ExportXLSX)

			menu.GET("/import", importCtrl.ImportPage)
			menu.POST("/import/preview", importCtrl.UploadPreview)
			menu.GET("/import/preview", importCtrl.PreviewPage)
			menu.POST("/import/confirm", importCtrl.Confirm)
			menu.POST("/import/cancel", importCtrl.Cancel)

			menu.GET("/:id/edit", menuCtrl.EditPage)
			menu.POST("/:id/edit", menuCtrl.Update)
			menu.POST("/:id/delete", menuCtrl.Delete)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "Page introuvable")
	})

	return r
}
