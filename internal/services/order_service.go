package services

import (
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"notary-admin/internal/domain"
	"notary-admin/internal/repositories"
	"notary-admin/internal/utils"
)

// OrderService merges translation and visa orders into the unified
// view set and applies the list mutations.
type OrderService struct {
	Orders   repositories.TranslationOrderRepository
	Visa     repositories.VisaOrderRepository
	Files    repositories.OrderFileRepository
	Settings repositories.SettingsRepository

	RequestID string
	Now       func() time.Time
}

func (s OrderService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// LoadedOrders is the merged working set plus the resolved currency
// symbol.
type LoadedOrders struct {
	Orders   []domain.OrderView
	Currency string
}

// LoadOrders reads translation orders, visa orders and the currency
// symbol concurrently. Visa and currency failures degrade (empty set,
// default symbol); a translation-order failure is fatal to the load.
// Files for the whole translation set come from one batched query.
func (s OrderService) LoadOrders() (LoadedOrders, error) {
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
		translations, translationsErr = s.Orders.List()
	}()
	go func() {
		defer wg.Done()
		visas, visasErr = s.Visa.List()
	}()
	go func() {
		defer wg.Done()
		currency, currencyErr = s.Settings.Get(domain.SettingCurrencySymbol)
	}()
	wg.Wait()

	if translationsErr != nil {
		return LoadedOrders{}, domain.InternalError{Msg: "加载订单失败: " + translationsErr.Error(), Err: translationsErr}
	}
	if visasErr != nil {
		utils.LogEvent(s.RequestID, "orders", "load", "visa orders unavailable: "+visasErr.Error())
		visas = nil
	}
	if currencyErr != nil || strings.TrimSpace(currency) == "" {
		if currencyErr != nil && currencyErr != sql.ErrNoRows {
			utils.LogEvent(s.RequestID, "orders", "load", "currency symbol unavailable: "+currencyErr.Error())
		}
		currency = domain.DefaultCurrencySymbol
	}

	views := make([]domain.OrderView, 0, len(translations)+len(visas))
	orderIDs := make([]string, 0, len(translations))
	for _, o := range translations {
		views = append(views, translationView(o))
		orderIDs = append(orderIDs, o.ID)
	}

	if len(orderIDs) > 0 {
		filesByOrder, err := s.Files.ListByOrderIDs(orderIDs)
		if err != nil {
			utils.LogEvent(s.RequestID, "orders", "load", "files unavailable: "+err.Error())
		} else {
			for i := range views {
				views[i].Files = filesByOrder[views[i].FullID]
			}
		}
	}

	for _, o := range visas {
		views = append(views, visaView(o))
	}

	utils.LogEvent(s.RequestID, "orders", "load",
		fmt.Sprintf("loaded %d orders (translation %d, visa %d)", len(views), len(translations), len(visas)))
	return LoadedOrders{Orders: views, Currency: currency}, nil
}

func translationView(o repositories.TranslationOrder) domain.OrderView {
	display := domain.MapStatusToDisplay(o.Status)
	detail := o.CustomFileType
	if strings.TrimSpace(detail) == "" {
		detail = string(o.ServiceType)
	}
	address := o.PickupAddress
	if o.IsPickupInStore {
		address = "到店取件"
	}
	v := domain.OrderView{
		ID:             domain.ShortID(o.ID),
		FullID:         o.ID,
		Kind:           domain.KindTranslation,
		CustomerName:   o.CustomerName,
		CustomerPhone:  o.Phone,
		ServiceLabel:   domain.ServiceTypeLabel(o.ServiceType, o.CustomFileType),
		ServiceDetail:  detail,
		RawServiceType: o.ServiceType,
		OrderTime:      utils.FormatDateTime(o.CreatedAt),
		CreatedAt:      o.CreatedAt,
		Status:         o.Status,
		Display:        display,
		StatusLabel:    domain.DisplayStatusLabel(display),
		Urgent:         o.UrgentOption == "URGENT",
		Notes:          o.Notes,
		Address:        address,
		DeliveryFormat: o.DeliveryFormat,
	}
	if o.EstimatedPrice.Valid {
		v.Amount = o.EstimatedPrice.Float64
	}
	if o.CompletedAt.Valid {
		v.CompletedAt = utils.FormatDateTime(o.CompletedAt.Time)
	}
	return v
}

func visaView(o repositories.VisaOrder) domain.OrderView {
	display := domain.MapStatusToDisplay(o.Status)
	label := o.VisaCategoryLabel
	if strings.TrimSpace(label) == "" {
		label = o.VisaCategory
	}
	customer := o.UserID
	if strings.TrimSpace(customer) == "" {
		customer = "签证用户"
	}
	return domain.OrderView{
		ID:             domain.ShortID(o.ID),
		FullID:         o.ID,
		Kind:           domain.KindVisa,
		CustomerName:   customer,
		ServiceLabel:   domain.ServiceTypeLabel(domain.ServiceVisa, ""),
		ServiceDetail:  "签证服务 - " + label,
		RawServiceType: domain.ServiceVisa,
		OrderTime:      utils.FormatDateTime(o.CreatedAt),
		CreatedAt:      o.CreatedAt,
		Status:         o.Status,
		Display:        display,
		StatusLabel:    domain.DisplayStatusLabel(display),
		Notes:          o.Notes,
		DeliveryFormat: "DIGITAL",
	}
}

// ListQuery is the explicit list view state: filter, search term and
// page cursor.
type ListQuery struct {
	Filter domain.OrderFilter
	Search string
	Page   int
}

// ListResult is one rendered page plus the dashboard counters computed
// over the full loaded set.
type ListResult struct {
	Page     domain.OrderPage `json:"page"`
	Stats    domain.ListStats `json:"stats"`
	Currency string           `json:"currency"`
}

// ListOrders loads the working set and applies search or filter, then
// pagination. A non-empty search term replaces the filter entirely.
func (s OrderService) ListOrders(q ListQuery) (ListResult, error) {
	loaded, err := s.LoadOrders()
	if err != nil {
		return ListResult{}, err
	}

	working := domain.SearchOrders(loaded.Orders, q.Search)
	if strings.TrimSpace(q.Search) == "" {
		working = domain.FilterOrders(loaded.Orders, q.Filter)
	}

	return ListResult{
		Page:     domain.Paginate(working, q.Page),
		Stats:    domain.ComputeListStats(loaded.Orders, s.now()),
		Currency: loaded.Currency,
	}, nil
}

// OrderDetail is the editable detail panel payload.
type OrderDetail struct {
	Order          domain.OrderView      `json:"order"`
	BasePrice      *float64              `json:"base_price,omitempty"`
	StatusOptions  []domain.StatusOption `json:"status_options"`
	WhatsAppLink   string                `json:"whatsapp_link,omitempty"`
	Currency       string                `json:"currency"`
	PriceEditable  bool                  `json:"price_editable"`
	FilesSupported bool                  `json:"files_supported"`
}

// GetOrderDetail resolves an order by full or shortened display id.
// Unquoted translation orders get a suggested base price (silently
// absent on any error); files are re-read authoritatively with the
// batch-loaded set as fallback.
func (s OrderService) GetOrderDetail(id string) (OrderDetail, error) {
	loaded, err := s.LoadOrders()
	if err != nil {
		return OrderDetail{}, err
	}

	var order *domain.OrderView
	for i := range loaded.Orders {
		if loaded.Orders[i].FullID == id || loaded.Orders[i].ID == id {
			order = &loaded.Orders[i]
			break
		}
	}
	if order == nil {
		return OrderDetail{}, domain.NotFoundError{Resource: "order"}
	}

	detail := OrderDetail{
		Order:          *order,
		StatusOptions:  order.Kind.StatusOptions(),
		Currency:       loaded.Currency,
		PriceEditable:  !order.IsVisa(),
		FilesSupported: !order.IsVisa(),
	}

	if !order.IsVisa() {
		if order.Amount == 0 {
			detail.BasePrice = s.fetchBasePrice(order.RawServiceType)
		}
		if phone := utils.DigitsOnly(order.CustomerPhone); phone != "" {
			detail.WhatsAppLink = "https://wa.me/" + phone
		}
		if files, err := s.Files.ListByOrderID(order.FullID); err != nil {
			utils.LogEvent(s.RequestID, "orders", "detail", "file refresh failed: "+err.Error())
		} else {
			detail.Order.Files = files
		}
	}
	return detail, nil
}

// fetchBasePrice reads the per-service suggested price. Any failure
// degrades to no suggestion.
func (s OrderService) fetchBasePrice(t domain.ServiceType) *float64 {
	raw, err := s.Settings.Get(domain.BasePriceKey(t))
	if err != nil {
		if err != sql.ErrNoRows {
			utils.LogEvent(s.RequestID, "orders", "base_price", "lookup failed: "+err.Error())
		}
		return nil
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(price) || price <= 0 {
		return nil
	}
	return &price
}

// resolveKind finds which table owns the full order id.
func (s OrderService) resolveKind(id string) (domain.OrderKind, error) {
	if _, err := s.Orders.GetByID(id); err == nil {
		return domain.KindTranslation, nil
	} else if !domain.IsNotFound(err) {
		return "", err
	}
	if _, err := s.Visa.GetByID(id); err == nil {
		return domain.KindVisa, nil
	} else if !domain.IsNotFound(err) {
		return "", err
	}
	return "", domain.NotFoundError{Resource: "order"}
}

// UpdateStatus validates the transition for the order's kind and
// writes status plus timestamps, keyed by full order id.
func (s OrderService) UpdateStatus(id string, status domain.Status) error {
	kind, err := s.resolveKind(id)
	if err != nil {
		return err
	}
	normalized, err := kind.NormalizeStatus(status)
	if err != nil {
		return err
	}

	now := s.now()
	if kind == domain.KindVisa {
		err = s.Visa.UpdateStatus(id, normalized, now)
	} else {
		err = s.Orders.UpdateStatus(id, normalized, now)
	}
	if err != nil {
		return domain.InternalError{Msg: "更新状态失败: " + err.Error(), Err: err}
	}
	utils.LogEvent(s.RequestID, "orders", "update_status",
		fmt.Sprintf("order=%s kind=%s status=%s", domain.ShortID(id), kind, normalized))
	return nil
}

// SaveNotes writes free-text notes to the order's table.
func (s OrderService) SaveNotes(id, notes string) error {
	kind, err := s.resolveKind(id)
	if err != nil {
		return err
	}
	now := s.now()
	if kind == domain.KindVisa {
		err = s.Visa.UpdateNotes(id, notes, now)
	} else {
		err = s.Orders.UpdateNotes(id, notes, now)
	}
	if err != nil {
		return domain.InternalError{Msg: "保存备注失败: " + err.Error(), Err: err}
	}
	utils.LogEvent(s.RequestID, "orders", "save_notes", "order="+domain.ShortID(id))
	return nil
}

// ParsePrice validates a raw price input. Empty input means "clear the
// price" and requires explicit confirmation; anything else must parse
// as a non-negative number.
func ParsePrice(raw string, confirmClear bool) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if !confirmClear {
			return nil, domain.ValidationError{Field: "price", Msg: "清空价格需要确认"}
		}
		return nil, nil
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return nil, domain.ValidationError{Field: "price", Msg: "请输入有效的价格（非负数字）"}
	}
	return &price, nil
}

// SavePrice writes a quoted price to a translation order. Visa orders
// carry no in-system price and are rejected before any write.
func (s OrderService) SavePrice(id, raw string, confirmClear bool) (*float64, error) {
	kind, err := s.resolveKind(id)
	if err != nil {
		return nil, err
	}
	if kind == domain.KindVisa {
		return nil, domain.ValidationError{Field: "price", Msg: "签证订单暂不支持在系统内设置价格，请线下确认费用"}
	}
	price, err := ParsePrice(raw, confirmClear)
	if err != nil {
		return nil, err
	}
	if err := s.Orders.UpdatePrice(id, price, s.now()); err != nil {
		return nil, domain.InternalError{Msg: "保存价格失败: " + err.Error(), Err: err}
	}
	utils.LogEvent(s.RequestID, "orders", "save_price", "order="+domain.ShortID(id))
	return price, nil
}
