package config

import (
	"strings"
	"testing"
)

func TestDSNWithDefaults(t *testing.T) {
	plain := dsnWithDefaults("admin:secret@tcp(127.0.0.1:3306)/notary_admin")
	if !strings.Contains(plain, "/notary_admin?parseTime=true") {
		t.Fatalf("plain dsn: %s", plain)
	}

	withParams := dsnWithDefaults("admin:secret@tcp(127.0.0.1:3306)/notary_admin?tls=skip-verify")
	if strings.Count(withParams, "?") != 1 {
		t.Fatalf("dsn with params must join with &, got %s", withParams)
	}
	if !strings.Contains(withParams, "tls=skip-verify&parseTime=true") {
		t.Fatalf("operator params must survive: %s", withParams)
	}
}
