package domain

import (
	"fmt"
	"testing"
	"time"
)

func makeOrders(n int) []OrderView {
	out := make([]OrderView, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, OrderView{
			ID:             fmt.Sprintf("order-%02d", i),
			FullID:         fmt.Sprintf("order-%02d-full", i),
			Kind:           KindTranslation,
			CustomerName:   fmt.Sprintf("客户%d", i),
			RawServiceType: ServiceIDCard,
			OrderTime:      "2026-08-30 10:00",
			Display:        DisplayPending,
			Status:         StatusPending,
		})
	}
	return out
}

func TestFilterOrdersStatusAndService(t *testing.T) {
	orders := []OrderView{
		{ID: "a", Kind: KindTranslation, RawServiceType: ServiceIDCard, Display: DisplayPending, OrderTime: "2026-08-01 09:00"},
		{ID: "b", Kind: KindTranslation, RawServiceType: ServiceEducation, Display: DisplayCompleted, OrderTime: "2026-08-15 09:00"},
		{ID: "c", Kind: KindVisa, RawServiceType: ServiceVisa, Display: DisplayPending, OrderTime: "2026-08-20 09:00"},
	}

	got := FilterOrders(orders, OrderFilter{Status: "pending"})
	if len(got) != 2 {
		t.Fatalf("status filter: got %d orders, want 2", len(got))
	}

	got = FilterOrders(orders, OrderFilter{Service: "VISA"})
	if len(got) != 1 || got[0].ID != "c" {
		t.Fatalf("VISA filter should select only visa orders, got %+v", got)
	}

	got = FilterOrders(orders, OrderFilter{Service: "ID_CARD"})
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("service filter should match raw type on non-visa orders, got %+v", got)
	}

	got = FilterOrders(orders, OrderFilter{DateFrom: "2026-08-10", DateTo: "2026-08-16"})
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("date range filter: got %+v", got)
	}

	all := FilterOrders(orders, OrderFilter{Status: "all", Service: "all"})
	if len(all) != len(orders) {
		t.Fatalf("\"all\" values must not filter, got %d orders", len(all))
	}
}

func TestFilterOrdersIdempotent(t *testing.T) {
	orders := makeOrders(5)
	f := OrderFilter{Status: "pending"}
	once := FilterOrders(orders, f)
	twice := FilterOrders(once, f)
	if len(once) != len(twice) {
		t.Fatalf("re-applying the same filter changed the result: %d vs %d", len(once), len(twice))
	}
}

func TestSearchOrders(t *testing.T) {
	orders := []OrderView{
		{ID: "abc12345...", CustomerName: "王小明", CustomerPhone: "+7 777 123", ServiceLabel: "身份证/护照"},
		{ID: "def67890...", CustomerName: "李华", CustomerPhone: "+86 139", ServiceLabel: "签证邀请函"},
	}

	if got := SearchOrders(orders, "ABC1"); len(got) != 1 || got[0].CustomerName != "王小明" {
		t.Fatalf("id search should be case-insensitive, got %+v", got)
	}
	if got := SearchOrders(orders, "李华"); len(got) != 1 {
		t.Fatalf("name search failed, got %+v", got)
	}
	if got := SearchOrders(orders, "签证"); len(got) != 1 {
		t.Fatalf("service label search failed, got %+v", got)
	}
	if got := SearchOrders(orders, "   "); got != nil {
		t.Fatalf("blank term should return nil, got %+v", got)
	}
	if got := SearchOrders(orders, "nomatch"); len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestPaginate(t *testing.T) {
	orders := makeOrders(23)

	p1 := Paginate(orders, 1)
	if p1.Total != 23 || p1.TotalPages != 3 || len(p1.Orders) != 10 {
		t.Fatalf("page 1: %+v", p1)
	}
	p3 := Paginate(orders, 3)
	if len(p3.Orders) != 3 || p3.Page != 3 {
		t.Fatalf("page 3 should hold the 3 leftover orders: %+v", p3)
	}

	past := Paginate(orders, 99)
	if past.Page != 3 {
		t.Fatalf("stepping past the end should clamp to the last page, got page %d", past.Page)
	}
	under := Paginate(orders, 0)
	if under.Page != 1 {
		t.Fatalf("page 0 should clamp to 1, got %d", under.Page)
	}

	empty := Paginate(nil, 5)
	if empty.Total != 0 || empty.TotalPages != 0 || len(empty.Orders) != 0 {
		t.Fatalf("empty set: %+v", empty)
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("0123456789abcdef"); got != "01234567..." {
		t.Errorf("ShortID = %s", got)
	}
	if got := ShortID("short"); got != "short" {
		t.Errorf("short ids pass through, got %s", got)
	}
}

func TestComputeListStats(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 0, 0, 0, time.Local)
	orders := []OrderView{
		{Display: DisplayPending, Status: StatusPending},
		{Display: DisplayProcessing, Status: StatusInProgress},
		{Display: DisplayCompleted, Status: StatusCompleted, Amount: 120, CreatedAt: now},
		{Display: DisplayCompleted, Status: StatusReceived, Amount: 80, CreatedAt: now.AddDate(0, 0, -1)},
	}

	s := ComputeListStats(orders, now)
	if s.Pending != 1 || s.Processing != 1 || s.Completed != 2 {
		t.Fatalf("counters: %+v", s)
	}
	if s.TodayRevenue != 120 {
		t.Fatalf("today revenue should only count orders created today, got %v", s.TodayRevenue)
	}
}
