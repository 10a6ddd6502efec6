package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"notary-admin/internal/domain"
	"notary-admin/internal/http/middleware"
	"notary-admin/internal/repositories"
	"notary-admin/internal/services"

	"github.com/gin-gonic/gin"
)

func orderService(c *gin.Context) services.OrderService {
	return services.OrderService{
		Orders:    repositories.TranslationOrderRepository{},
		Visa:      repositories.VisaOrderRepository{},
		Files:     repositories.OrderFileRepository{},
		Settings:  repositories.SettingsRepository{},
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/orders
func ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	q := services.ListQuery{
		Filter: domain.OrderFilter{
			Status:   strings.TrimSpace(c.DefaultQuery("status", "all")),
			Service:  strings.TrimSpace(c.DefaultQuery("service", "all")),
			DateFrom: strings.TrimSpace(c.Query("date_from")),
			DateTo:   strings.TrimSpace(c.Query("date_to")),
		},
		Search: strings.TrimSpace(c.Query("search")),
		Page:   page,
	}

	result, err := orderService(c).ListOrders(q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /api/orders/:id
func GetOrder(c *gin.Context) {
	detail, err := orderService(c).GetOrderDetail(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// PUT /api/orders/:id/status
func UpdateOrderStatus(c *gin.Context) {
	var req updateStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	status := domain.Status(strings.ToUpper(strings.TrimSpace(req.Status)))
	if status == "" {
		respondError(c, http.StatusBadRequest, "invalid_status", "请选择订单状态", nil)
		return
	}
	if err := orderService(c).UpdateStatus(c.Param("id"), status); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "状态已更新"})
}

type updateNotesRequest struct {
	Notes string `json:"notes"`
}

// PUT /api/orders/:id/notes
func UpdateOrderNotes(c *gin.Context) {
	var req updateNotesRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := orderService(c).SaveNotes(c.Param("id"), req.Notes); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "备注已保存"})
}

type updatePriceRequest struct {
	Price        string `json:"price"`
	ConfirmClear bool   `json:"confirm_clear"`
}

// PUT /api/orders/:id/price
func UpdateOrderPrice(c *gin.Context) {
	var req updatePriceRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	price, err := orderService(c).SavePrice(c.Param("id"), req.Price, req.ConfirmClear)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "价格已保存", "price": price})
}

// GET /api/orders/:id/quote
func GetOrderQuotePDF(c *gin.Context) {
	svc := services.DocsService{
		Orders:    repositories.TranslationOrderRepository{},
		Settings:  repositories.SettingsRepository{},
		RequestID: middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.GenerateQuote(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
