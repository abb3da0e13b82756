package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rmendes/academia-api/internal/models"
	appErrors "github.com/rmendes/academia-api/pkg/errors"
	"github.com/rmendes/academia-api/pkg/response"
)

// ContextCredentialKey is the gin context key storing the authenticated
// credential.
const ContextCredentialKey = "currentCredential"

// Authorizer resolves a bearer token to a stored credential.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (*models.Credential, error)
}

// JWT protects routes by requiring a valid bearer token whose subject still
// resolves to a credential. Every rejection carries the bearer challenge and
// the same error shape, regardless of cause.
func JWT(auth Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			reject(c, appErrors.ErrUnauthorized)
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			reject(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			return
		}

		cred, err := auth.Authorize(c.Request.Context(), parts[1])
		if err != nil {
			reject(c, err)
			return
		}

		c.Set(ContextCredentialKey, cred)
		c.Next()
	}
}

func reject(c *gin.Context, err error) {
	c.Header("WWW-Authenticate", "Bearer")
	response.Error(c, err)
	c.Abort()
}
