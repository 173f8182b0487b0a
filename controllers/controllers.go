package controllers

import (
	"github.com/gin-gonic/gin"

	"restobackoffice/middlewares"
	"restobackoffice/models"
)

// currentSession returns the admin session loaded by RequireAdmin.
func currentSession(c *gin.Context) *models.AdminSession {
	v, ok := c.Get(middlewares.SessionKey)
	if !ok {
		return nil
	}
	session, _ := v.(*models.AdminSession)
	return session
}
