package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	userRepo "knead/database/repository/user"
	"knead/models"
	"knead/services/user"
	"knead/utils"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	Service user.UserService
	Logger  *zap.Logger
}

func NewAuthHandler(svc user.UserService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Service: svc, Logger: logger}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid registration payload: "+err.Error())
		return
	}

	u, token, err := h.Service.Register(c.Request.Context(), req)
	if err != nil {
		h.Logger.Warn("registration failed", zap.String("email", req.Email), zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "user": u, "token": token})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	u, token, err := h.Service.Authenticate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, err.Error())
			return
		}
		h.Logger.Error("login failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "something went wrong, please try again")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": u, "token": token})
}

// AdminListUsers handles GET /api/admin/users.
func (h *AuthHandler) AdminListUsers(c *gin.Context) {
	users, err := h.Service.ListAll(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to list users", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to load users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}

// AdminDeleteUser handles DELETE /api/admin/users/:id.
func (h *AuthHandler) AdminDeleteUser(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "user not found")
			return
		}
		h.Logger.Error("failed to delete user", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "user deleted"})
}
