package domain

import (
	"strings"
	"time"
)

// OrderFile is one uploaded document attached to a translation order.
type OrderFile struct {
	FileName string `json:"file_name"`
	FileURL  string `json:"file_url"`
	FileType string `json:"file_type"`
}

// OrderView is the unified in-memory shape translation and visa orders
// are merged into for listing, filtering and search. FullID and Kind
// are retained for write-back; ID is the shortened display id.
type OrderView struct {
	ID             string        `json:"id"`
	FullID         string        `json:"full_id"`
	Kind           OrderKind     `json:"kind"`
	CustomerName   string        `json:"customer_name"`
	CustomerPhone  string        `json:"customer_phone"`
	ServiceLabel   string        `json:"service_type"`
	ServiceDetail  string        `json:"service_detail"`
	RawServiceType ServiceType   `json:"raw_service_type"`
	Amount         float64       `json:"amount"`
	OrderTime      string        `json:"order_time"`
	CreatedAt      time.Time     `json:"-"`
	Status         Status        `json:"raw_status"`
	Display        DisplayStatus `json:"status"`
	StatusLabel    string        `json:"status_label"`
	Urgent         bool          `json:"urgent"`
	Files          []OrderFile   `json:"files"`
	Notes          string        `json:"notes"`
	Address        string        `json:"address"`
	DeliveryFormat string        `json:"delivery_format"`
	CompletedAt    string        `json:"completed_at,omitempty"`
}

// IsVisa is a convenience for call sites that only branch on the kind.
func (v OrderView) IsVisa() bool { return v.Kind == KindVisa }

// ShortID shortens an opaque order id to its first 8 characters plus
// an ellipsis, as shown in list views.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8] + "..."
}

// OrderFilter is the explicit filter state for the order list. Empty
// or "all" fields are skipped.
type OrderFilter struct {
	Status   string
	Service  string
	DateFrom string
	DateTo   string
}

// FilterOrders applies status, service-type and inclusive date-range
// filters in order. The service value "VISA" selects all visa orders;
// any other value matches non-visa orders by raw service type. Dates
// compare the date portion of the formatted order time lexically.
func FilterOrders(orders []OrderView, f OrderFilter) []OrderView {
	out := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		if f.Status != "" && f.Status != "all" && string(o.Display) != f.Status {
			continue
		}
		if f.Service != "" && f.Service != "all" {
			if f.Service == string(ServiceVisa) {
				if !o.IsVisa() {
					continue
				}
			} else if o.IsVisa() || string(o.RawServiceType) != f.Service {
				continue
			}
		}
		orderDate, _, _ := strings.Cut(o.OrderTime, " ")
		if f.DateFrom != "" && orderDate < f.DateFrom {
			continue
		}
		if f.DateTo != "" && orderDate > f.DateTo {
			continue
		}
		out = append(out, o)
	}
	return out
}

// SearchOrders does a case-insensitive substring match against display
// id, customer name, phone and service label. An empty term returns
// nil so callers fall back to the standard filter.
func SearchOrders(orders []OrderView, term string) []OrderView {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	out := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		if strings.Contains(strings.ToLower(o.ID), term) ||
			strings.Contains(strings.ToLower(o.CustomerName), term) ||
			strings.Contains(strings.ToLower(o.CustomerPhone), term) ||
			strings.Contains(strings.ToLower(o.ServiceLabel), term) {
			out = append(out, o)
		}
	}
	return out
}

// PageSize is the fixed list page size.
const PageSize = 10

// OrderPage is one page of a filtered order set.
type OrderPage struct {
	Orders     []OrderView `json:"orders"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	TotalPages int         `json:"total_pages"`
}

// Paginate slices the filtered set into the requested page. Pages are
// clamped into [1, totalPages], so stepping past the end is a no-op.
func Paginate(orders []OrderView, page int) OrderPage {
	totalPages := (len(orders) + PageSize - 1) / PageSize
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	start := (page - 1) * PageSize
	end := start + PageSize
	if start > len(orders) {
		start = len(orders)
	}
	if end > len(orders) {
		end = len(orders)
	}
	return OrderPage{
		Orders:     orders[start:end],
		Total:      len(orders),
		Page:       page,
		TotalPages: totalPages,
	}
}

// ListStats are the dashboard counters shown above the order list.
// They are computed over the full loaded set, not the filtered one.
type ListStats struct {
	Pending      int     `json:"pending"`
	Processing   int     `json:"processing"`
	Completed    int     `json:"completed"`
	TodayRevenue float64 `json:"today_revenue"`
}

// ComputeListStats tallies display-status counts and today's revenue.
// Revenue only counts completed-equivalent orders created today.
func ComputeListStats(orders []OrderView, now time.Time) ListStats {
	var s ListStats
	today := now.Format("2006-01-02")
	for _, o := range orders {
		switch o.Display {
		case DisplayPending:
			s.Pending++
		case DisplayProcessing:
			s.Processing++
		case DisplayCompleted:
			s.Completed++
		}
		if IsCompletedEquivalent(o.Status) && o.CreatedAt.Format("2006-01-02") == today {
			s.TodayRevenue += o.Amount
		}
	}
	return s
}
