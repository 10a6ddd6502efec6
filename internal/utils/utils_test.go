package utils

import (
	"testing"
	"time"
)

func TestUnquote(t *testing.T) {
	cases := map[string]string{
		`"2026"`: "2026",
		"2026":   "2026",
		`""`:     "",
		`"`:      `"`,
		`"a"b"`:  `a"b`,
	}
	for in, want := range cases {
		if got := Unquote(in); got != want {
			t.Errorf("Unquote(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDigitsOnly(t *testing.T) {
	if got := DigitsOnly("+7 (777) 123-45-67"); got != "77771234567" {
		t.Errorf("DigitsOnly = %s", got)
	}
	if got := DigitsOnly("no digits"); got != "" {
		t.Errorf("expected empty, got %s", got)
	}
}

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney("₸", 12500); got != "₸12,500" {
		t.Errorf("whole amount: %s", got)
	}
	if got := FormatMoney("₸", 150.5); got != "₸150.50" {
		t.Errorf("fractional amount: %s", got)
	}
	if got := FormatMoney("", 7); got != "₸7" {
		t.Errorf("empty symbol should default: %s", got)
	}
	if got := FormatMoney("₸", 1234567); got != "₸1,234,567" {
		t.Errorf("grouping: %s", got)
	}
}

func TestDateHelpers(t *testing.T) {
	d, err := ParseDate(" 2026-08-30 ")
	if err != nil {
		t.Fatalf("ParseDate error: %v", err)
	}
	if FormatDate(d) != "2026-08-30" {
		t.Errorf("round trip: %s", FormatDate(d))
	}
	if _, err := ParseDate("30/08/2026"); err == nil {
		t.Errorf("expected error for wrong layout")
	}
	ts := time.Date(2026, 8, 30, 9, 5, 0, 0, time.Local)
	if got := FormatDateTime(ts); got != "2026-08-30 09:05" {
		t.Errorf("FormatDateTime = %s", got)
	}
}
