package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rmendes/academia-api/internal/models"
	appErrors "github.com/rmendes/academia-api/pkg/errors"
	"github.com/rmendes/academia-api/pkg/response"
)

type credentialService interface {
	Register(ctx context.Context, req models.RegisterCredentialRequest) (*models.CredentialInfo, error)
}

// CredentialHandler exposes login account registration.
type CredentialHandler struct {
	service credentialService
}

// NewCredentialHandler constructs CredentialHandler.
func NewCredentialHandler(svc credentialService) *CredentialHandler {
	return &CredentialHandler{service: svc}
}

// Create godoc
// @Summary Register login account
// @Tags Credentials
// @Accept json
// @Produce json
// @Param payload body models.RegisterCredentialRequest true "Credential payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /usuarios/ [post]
func (h *CredentialHandler) Create(c *gin.Context) {
	var req models.RegisterCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	info, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, info)
}

// Me godoc
// @Summary Current account
// @Description Returns the account behind the presented bearer token
// @Tags Credentials
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /me [get]
func (h *CredentialHandler) Me(c *gin.Context) {
	cred := credentialFromContext(c)
	if cred == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, models.CredentialInfo{Username: cred.Username})
}
