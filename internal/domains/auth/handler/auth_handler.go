package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"travelblog-backend/internal/domains/auth/service"
	"travelblog-backend/internal/shared/response"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login handles POST /admin/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
		response.BadRequest(c, service.ErrCodeInvalidPassword, "password is required")
		return
	}

	token, err := h.service.Login(req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPassword) {
			response.Unauthorized(c, service.ErrCodeInvalidPassword, "mot de passe incorrect")
			return
		}
		response.InternalServerError(c, service.ErrCodeInvalidPassword, "login failed")
		return
	}

	response.Success(c, 200, gin.H{"token": token})
}
