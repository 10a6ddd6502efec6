package handlers

import (
	"net/http"

	"notary-admin/internal/http/middleware"
	"notary-admin/internal/repositories"
	"notary-admin/internal/services"

	"github.com/gin-gonic/gin"
)

func pricingService(c *gin.Context) services.PricingService {
	return services.PricingService{
		Orders:    repositories.TranslationOrderRepository{},
		Visa:      repositories.VisaOrderRepository{},
		Settings:  repositories.SettingsRepository{},
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/services
func GetServicePricing(c *gin.Context) {
	pricing, err := pricingService(c).Load()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, pricing)
}

type savePriceRequest struct {
	Value float64 `json:"value"`
}

// PUT /api/services/:key
func SaveServicePrice(c *gin.Context) {
	var req savePriceRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := pricingService(c).SavePrice(c.Param("key"), req.Value); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "价格已更新"})
}
