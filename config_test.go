package authgate

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	cfg := defaultConfig()
	cfg.Issuer.BaseURL = "http://localhost:5000"
	return cfg
}

func TestDefaultConfigRoutes(t *testing.T) {
	cfg := defaultConfig()
	if cfg.Routes.SignIn != "/auth/login" {
		t.Fatalf("sign-in route %q", cfg.Routes.SignIn)
	}
	if cfg.Routes.Landing != "/tasks" {
		t.Fatalf("landing route %q", cfg.Routes.Landing)
	}
	if cfg.Routes.ReturnParam != "returnUrl" {
		t.Fatalf("return param %q", cfg.Routes.ReturnParam)
	}
}

func TestValidateRejectsMissingIssuer(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "BaseURL") {
		t.Fatalf("expected BaseURL error, got %v", err)
	}
}

func TestValidateRejectsBadRoutes(t *testing.T) {
	cfg := validConfig()
	cfg.Routes.SignIn = "auth/login"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for relative sign-in route")
	}

	cfg = validConfig()
	cfg.Routes.ReturnParam = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty return param")
	}
}

func TestValidateRejectsNonPositiveTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.Issuer.RequestTimeout = -time.Second
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative timeout")
	}
}

func TestValidateRejectsAuditWithoutBuffer(t *testing.T) {
	cfg := validConfig()
	cfg.Audit.Enabled = true
	cfg.Audit.BufferSize = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for enabled audit with zero buffer")
	}
}

func TestBuilderRequiresIssuerURL(t *testing.T) {
	if _, err := New().Build(); err == nil {
		t.Fatal("expected Build to fail without issuer URL")
	}
}

func TestBuilderSingleUse(t *testing.T) {
	b := New().WithIssuerURL("http://localhost:5000")
	m, err := b.Build()
	if err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	defer m.Close()

	if _, err := b.Build(); err == nil {
		t.Fatal("expected second Build to fail")
	}
}

func TestBuilderConfigDefaultsBackfilled(t *testing.T) {
	m, err := New().
		WithConfig(Config{Issuer: IssuerConfig{BaseURL: "http://localhost:5000"}}).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer m.Close()

	if m.cfg.Routes.SignIn != "/auth/login" || m.cfg.Routes.Landing != "/tasks" {
		t.Fatalf("defaults not backfilled: %+v", m.cfg.Routes)
	}
	if m.cfg.Issuer.RequestTimeout != 15*time.Second {
		t.Fatalf("timeout not backfilled: %v", m.cfg.Issuer.RequestTimeout)
	}
}
