package handlers

import (
	"errors"
	"net/http"

	"notary-admin/internal/http/middleware"
	"notary-admin/internal/repositories"
	"notary-admin/internal/services"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	e := currentEnv()
	svc := services.AuthService{
		Settings:        repositories.SettingsRepository{},
		DefaultPassword: e.AdminPassword,
		JWTSecret:       []byte(e.JWTSecret),
		RequestID:       middleware.GetRequestID(c),
	}
	token, err := svc.Login(req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPassword) {
			respondError(c, http.StatusUnauthorized, "invalid_password", err.Error(), nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "login_failed", "登录失败，请稍后重试", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"name":  "admin",
	})
}

// POST /api/auth/logout
//
// Tokens are stateless; the client just discards its copy.
func Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "已退出登录"})
}
