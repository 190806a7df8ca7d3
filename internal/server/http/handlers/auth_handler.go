package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/gebeyahq/marketadmin/internal/domain/errors"
	"github.com/gebeyahq/marketadmin/internal/server/http/dto"
	"github.com/gebeyahq/marketadmin/internal/server/http/middleware"
)

// AuthHandler processes console login.
type AuthHandler struct {
	facade IdentityFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade IdentityFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Login handles POST /api/admin/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	token, err := h.facade.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidCredentials) {
			c.Status(http.StatusUnauthorized)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"token": token})
}
