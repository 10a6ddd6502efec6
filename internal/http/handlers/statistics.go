package handlers

import (
	"net/http"
	"strings"

	"notary-admin/internal/http/middleware"
	"notary-admin/internal/repositories"
	"notary-admin/internal/services"

	"github.com/gin-gonic/gin"
)

func statsService(c *gin.Context) services.StatsService {
	return services.StatsService{
		Orders:    repositories.TranslationOrderRepository{},
		Visa:      repositories.VisaOrderRepository{},
		Settings:  repositories.SettingsRepository{},
		RequestID: middleware.GetRequestID(c),
	}
}

func statsRange(c *gin.Context) services.StatsRange {
	return services.StatsRange{
		From: strings.TrimSpace(c.Query("date_from")),
		To:   strings.TrimSpace(c.Query("date_to")),
	}
}

// GET /api/statistics
func GetStatistics(c *gin.Context) {
	stats, err := statsService(c).Load(statsRange(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /api/statistics/trend-chart
func GetTrendChart(c *gin.Context) {
	stats, err := statsService(c).Load(statsRange(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	html, err := services.RenderTrendChart(stats.DailyTrend, stats.Currency)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "chart_failed", "图表生成失败", nil)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
