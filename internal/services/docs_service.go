package services

import (
	"bytes"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"notary-admin/internal/domain"
	"notary-admin/internal/repositories"
	"notary-admin/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders a printable quotation PDF for a translation
// order. Visa orders are quoted off-system and are rejected.
type DocsService struct {
	Orders   repositories.TranslationOrderRepository
	Settings repositories.SettingsRepository

	RequestID string
	Loader    func(string) (repositories.TranslationOrder, error)
}

// GenerateQuote builds the quote PDF and a download filename.
func (s DocsService) GenerateQuote(orderID string) ([]byte, string, error) {
	order, err := s.loadOrder(orderID)
	if err != nil {
		return nil, "", err
	}
	currency, err := s.Settings.Get(domain.SettingCurrencySymbol)
	if err != nil || strings.TrimSpace(currency) == "" {
		if err != nil && err != sql.ErrNoRows {
			utils.LogEvent(s.RequestID, "docs", "generate_quote", "currency unavailable: "+err.Error())
		}
		currency = domain.DefaultCurrencySymbol
	}
	utils.LogEvent(s.RequestID, "docs", "generate_quote", "order="+domain.ShortID(order.ID))
	return buildQuotePDF(order, currency)
}

func (s DocsService) loadOrder(orderID string) (repositories.TranslationOrder, error) {
	if s.Loader != nil {
		return s.Loader(orderID)
	}
	return s.Orders.GetByID(orderID)
}

func buildQuotePDF(o repositories.TranslationOrder, currency string) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Quotation", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "QUOTATION")
	pdf.Ln(12)

	price := "TBD"
	if o.EstimatedPrice.Valid {
		price = utils.FormatMoney(currency, o.EstimatedPrice.Float64)
	}
	service := string(o.ServiceType)
	if o.ServiceType == domain.ServiceOther && strings.TrimSpace(o.CustomFileType) != "" {
		service = o.CustomFileType
	}
	urgency := "Normal"
	if o.UrgentOption == "URGENT" {
		urgency = "Urgent"
	}
	delivery := "Physical"
	if o.DeliveryFormat == "DIGITAL" {
		delivery = "Digital"
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Order ID   : %s", o.ID),
		fmt.Sprintf("Customer   : %s", safe(o.CustomerName)),
		fmt.Sprintf("Phone      : %s", safe(o.Phone)),
		fmt.Sprintf("Service    : %s", safe(service)),
		fmt.Sprintf("Urgency    : %s", urgency),
		fmt.Sprintf("Delivery   : %s", delivery),
		fmt.Sprintf("Created    : %s", o.CreatedAt.Format("2006-01-02 15:04")),
		fmt.Sprintf("Price      : %s", price),
		fmt.Sprintf("Issued     : %s", time.Now().Format("2006-01-02 15:04")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This quotation is an estimate for the notarized translation service above and is valid for 7 days.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("QUOTE_%s.pdf", strings.TrimSuffix(domain.ShortID(o.ID), "..."))
	return buf.Bytes(), filename, nil
}

func safe(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
