package handlers

import (
	"net/http"

	"notary-admin/internal/http/middleware"
	"notary-admin/internal/repositories"
	"notary-admin/internal/services"

	"github.com/gin-gonic/gin"
)

type changePasswordRequest struct {
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}

// PUT /api/settings/password
func ChangePassword(c *gin.Context) {
	var req changePasswordRequest
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
	if err := svc.ChangePassword(req.Password, req.Confirm); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "密码已更新"})
}
