package services

import (
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"notary-admin/internal/domain"
	"notary-admin/internal/repositories"
	"notary-admin/internal/utils"
)

// StatsService re-aggregates orders over a date range into the
// statistics view: totals, revenue buckets, service/status breakdowns
// and the trailing 7-day trend.
type StatsService struct {
	Orders   repositories.TranslationOrderRepository
	Visa     repositories.VisaOrderRepository
	Settings repositories.SettingsRepository

	RequestID string
	Now       func() time.Time
}

func (s StatsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// StatsRange bounds the aggregation, dates as YYYY-MM-DD. Zero values
// default to the trailing month ending today.
type StatsRange struct {
	From string
	To   string
}

// statOrder is the merged per-order shape statistics run over.
type statOrder struct {
	ServiceType domain.ServiceType
	Label       string
	Status      domain.Status
	Amount      float64
	CreatedAt   time.Time
}

// ServiceBreakdown is count + completed revenue per service label.
type ServiceBreakdown struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// StatusBreakdown is the per-raw-status count with localized label.
type StatusBreakdown struct {
	Status domain.Status `json:"status"`
	Label  string        `json:"label"`
	Count  int           `json:"count"`
}

// DailyPoint is one day of the trailing trend, zero-filled.
type DailyPoint struct {
	Date    string  `json:"date"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// Statistics is the full statistics payload.
type Statistics struct {
	Currency string `json:"currency"`
	From     string `json:"from"`
	To       string `json:"to"`

	TotalOrders int `json:"total_orders"`
	Pending     int `json:"pending"`
	Processing  int `json:"processing"`
	Completed   int `json:"completed"`
	Cancelled   int `json:"cancelled"`

	TodayRevenue float64 `json:"today_revenue"`
	WeekRevenue  float64 `json:"week_revenue"`
	MonthRevenue float64 `json:"month_revenue"`
	TotalRevenue float64 `json:"total_revenue"`

	ByService  []ServiceBreakdown `json:"by_service"`
	ByStatus   []StatusBreakdown  `json:"by_status"`
	DailyTrend []DailyPoint       `json:"daily_trend"`
}

// Load aggregates orders created within the range. Translation reads
// are the hard dependency; visa and currency reads degrade.
func (s StatsService) Load(r StatsRange) (Statistics, error) {
	now := s.now()
	if strings.TrimSpace(r.To) == "" {
		r.To = utils.FormatDate(now)
	}
	if strings.TrimSpace(r.From) == "" {
		r.From = utils.FormatDate(now.AddDate(0, -1, 0))
	}
	from, err := utils.ParseDate(r.From)
	if err != nil {
		return Statistics{}, domain.ValidationError{Field: "date_from", Msg: "无效的日期"}
	}
	toDay, err := utils.ParseDate(r.To)
	if err != nil {
		return Statistics{}, domain.ValidationError{Field: "date_to", Msg: "无效的日期"}
	}
	to := toDay.Add(24*time.Hour - time.Second)

	var (
		wg sync.WaitGroup

		translations    []repositories.TranslationOrder
		translationsErr error
		visas           []repositories.VisaOrder
		visasErr        error
		currency        string
		currencyErr     error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		translations, translationsErr = s.Orders.ListBetween(from, to)
	}()
	go func() {
		defer wg.Done()
		visas, visasErr = s.Visa.ListBetween(from, to)
	}()
	go func() {
		defer wg.Done()
		currency, currencyErr = s.Settings.Get(domain.SettingCurrencySymbol)
	}()
	wg.Wait()

	if translationsErr != nil {
		return Statistics{}, domain.InternalError{Msg: "加载统计失败: " + translationsErr.Error(), Err: translationsErr}
	}
	if visasErr != nil {
		utils.LogEvent(s.RequestID, "stats", "load", "visa orders unavailable: "+visasErr.Error())
		visas = nil
	}
	if currencyErr != nil || strings.TrimSpace(currency) == "" {
		if currencyErr != nil && currencyErr != sql.ErrNoRows {
			utils.LogEvent(s.RequestID, "stats", "load", "currency symbol unavailable: "+currencyErr.Error())
		}
		currency = domain.DefaultCurrencySymbol
	}

	orders := make([]statOrder, 0, len(translations)+len(visas))
	for _, o := range translations {
		var amount float64
		if o.EstimatedPrice.Valid {
			amount = o.EstimatedPrice.Float64
		}
		orders = append(orders, statOrder{
			ServiceType: o.ServiceType,
			Label:       domain.ServiceTypeLabel(o.ServiceType, o.CustomFileType),
			Status:      o.Status,
			Amount:      amount,
			CreatedAt:   o.CreatedAt,
		})
	}
	for _, o := range visas {
		label := o.VisaCategoryLabel
		if strings.TrimSpace(label) == "" {
			label = domain.ServiceTypeLabel(domain.ServiceVisa, "")
		}
		orders = append(orders, statOrder{
			ServiceType: domain.ServiceVisa,
			Label:       label,
			Status:      o.Status,
			CreatedAt:   o.CreatedAt,
		})
	}

	return s.aggregate(orders, currency, r, now), nil
}

func (s StatsService) aggregate(orders []statOrder, currency string, r StatsRange, now time.Time) Statistics {
	out := Statistics{Currency: currency, From: r.From, To: r.To, TotalOrders: len(orders)}

	today := utils.FormatDate(now)
	weekStart := utils.FormatDate(now.AddDate(0, 0, -int(now.Weekday())))
	monthStart := utils.FormatDate(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()))

	byService := map[string]*ServiceBreakdown{}
	byStatus := map[domain.Status]int{}

	trend := make([]DailyPoint, 7)
	trendIndex := map[string]int{}
	for i := 0; i < 7; i++ {
		date := utils.FormatDate(now.AddDate(0, 0, i-6))
		trend[i] = DailyPoint{Date: date}
		trendIndex[date] = i
	}

	for _, o := range orders {
		day := utils.FormatDate(o.CreatedAt)
		completed := domain.IsCompletedEquivalent(o.Status)

		switch domain.MapStatusToDisplay(o.Status) {
		case domain.DisplayPending:
			out.Pending++
		case domain.DisplayProcessing:
			out.Processing++
		case domain.DisplayCompleted:
			out.Completed++
		case domain.DisplayCancelled:
			out.Cancelled++
		}

		if completed {
			out.TotalRevenue += o.Amount
			if day == today {
				out.TodayRevenue += o.Amount
			}
			if day >= weekStart {
				out.WeekRevenue += o.Amount
			}
			if day >= monthStart {
				out.MonthRevenue += o.Amount
			}
		}

		entry := byService[o.Label]
		if entry == nil {
			entry = &ServiceBreakdown{Label: o.Label}
			byService[o.Label] = entry
		}
		entry.Count++
		if completed {
			entry.Revenue += o.Amount
		}

		byStatus[o.Status]++

		if i, ok := trendIndex[day]; ok {
			trend[i].Count++
			if completed {
				trend[i].Revenue += o.Amount
			}
		}
	}

	for _, entry := range byService {
		out.ByService = append(out.ByService, *entry)
	}
	sort.Slice(out.ByService, func(i, j int) bool {
		if out.ByService[i].Count != out.ByService[j].Count {
			return out.ByService[i].Count > out.ByService[j].Count
		}
		return out.ByService[i].Label < out.ByService[j].Label
	})

	for _, status := range (domain.KindTranslation).AllowedStatuses() {
		if count := byStatus[status]; count > 0 {
			out.ByStatus = append(out.ByStatus, StatusBreakdown{
				Status: status,
				Label:  domain.StatusLabel(status),
				Count:  count,
			})
		}
	}

	out.DailyTrend = trend
	return out
}
