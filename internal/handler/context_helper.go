package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/rmendes/academia-api/internal/middleware"
	"github.com/rmendes/academia-api/internal/models"
)

func credentialFromContext(c *gin.Context) *models.Credential {
	value, exists := c.Get(middleware.ContextCredentialKey)
	if !exists {
		return nil
	}
	cred, ok := value.(*models.Credential)
	if !ok {
		return nil
	}
	return cred
}
