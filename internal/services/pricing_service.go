package services

import (
	"math"
	"sort"
	"time"

	"notary-admin/internal/domain"
	"notary-admin/internal/repositories"
	"notary-admin/internal/utils"
)

// PricingService joins the fixed service catalogs with the stored
// prices and order counts for the services view.
type PricingService struct {
	Orders   repositories.TranslationOrderRepository
	Visa     repositories.VisaOrderRepository
	Settings repositories.SettingsRepository

	RequestID string
	Now       func() time.Time
}

func (s PricingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// PriceRow is one editable catalog row with its usage count.
type PriceRow struct {
	domain.CatalogEntry
	Price      string `json:"price"`
	OrderCount int    `json:"order_count"`
}

// CustomTypeRow is one customer-written OTHER label with its usage.
type CustomTypeRow struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ServicePricing is the full services view payload.
type ServicePricing struct {
	Currency       string          `json:"currency"`
	NotaryServices []PriceRow      `json:"notary_services"`
	VisaServices   []PriceRow      `json:"visa_services"`
	ExtraFees      []PriceRow      `json:"extra_fees"`
	CustomTypes    []CustomTypeRow `json:"custom_types"`
}

// Load reads the settings map once plus per-type order counts and the
// custom-type histogram, then renders one row per catalog entry.
func (s PricingService) Load() (ServicePricing, error) {
	settings, err := s.Settings.GetAll()
	if err != nil {
		return ServicePricing{}, domain.InternalError{Msg: "加载服务价格失败: " + err.Error(), Err: err}
	}

	notaryCounts, customTypes, err := s.Orders.ServiceTypeCounts()
	if err != nil {
		return ServicePricing{}, domain.InternalError{Msg: "加载服务价格失败: " + err.Error(), Err: err}
	}

	visaCounts, err := s.Visa.CountByCategory()
	if err != nil {
		utils.LogEvent(s.RequestID, "pricing", "load", "visa counts unavailable: "+err.Error())
		visaCounts = map[string]int{}
	}

	currency := settings[domain.SettingCurrencySymbol]
	if currency == "" {
		currency = domain.DefaultCurrencySymbol
	}

	out := ServicePricing{Currency: currency}
	for _, entry := range domain.NotaryServiceCatalog {
		out.NotaryServices = append(out.NotaryServices, PriceRow{
			CatalogEntry: entry,
			Price:        settings[entry.Key],
			OrderCount:   notaryCounts[domain.ServiceType(entry.Code)],
		})
	}
	for _, entry := range domain.VisaServiceCatalog {
		out.VisaServices = append(out.VisaServices, PriceRow{
			CatalogEntry: entry,
			Price:        settings[entry.Key],
			OrderCount:   visaCounts[entry.Code],
		})
	}
	for _, entry := range domain.ExtraFeeCatalog {
		out.ExtraFees = append(out.ExtraFees, PriceRow{
			CatalogEntry: entry,
			Price:        settings[entry.Key],
		})
	}

	for name, count := range customTypes {
		out.CustomTypes = append(out.CustomTypes, CustomTypeRow{Name: name, Count: count})
	}
	sort.Slice(out.CustomTypes, func(i, j int) bool {
		if out.CustomTypes[i].Count != out.CustomTypes[j].Count {
			return out.CustomTypes[i].Count > out.CustomTypes[j].Count
		}
		return out.CustomTypes[i].Name < out.CustomTypes[j].Name
	})

	return out, nil
}

// SavePrice validates and upserts one price keyed by its settings key.
// Only keys from the fixed catalogs are accepted.
func (s PricingService) SavePrice(key string, value float64) error {
	if !knownPriceKey(key) {
		return domain.ValidationError{Field: "key", Msg: "未知的价格配置项"}
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return domain.ValidationError{Field: "price", Msg: "请输入有效的价格（≥0）"}
	}
	if err := s.Settings.Upsert(key, value, s.now()); err != nil {
		return domain.InternalError{Msg: "保存价格失败: " + err.Error(), Err: err}
	}
	utils.LogEvent(s.RequestID, "pricing", "save_price", "key="+key)
	return nil
}

func knownPriceKey(key string) bool {
	for _, catalog := range [][]domain.CatalogEntry{
		domain.NotaryServiceCatalog,
		domain.VisaServiceCatalog,
		domain.ExtraFeeCatalog,
	} {
		for _, entry := range catalog {
			if entry.Key == key {
				return true
			}
		}
	}
	return false
}
