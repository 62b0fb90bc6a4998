package authgate

import (
	"errors"
	"strings"
	"time"
)

// Config carries every tunable of the session manager. Configure it during
// construction and treat it as immutable afterwards.
type Config struct {
	Issuer  IssuerConfig
	Routes  RoutesConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
ISSUER CONFIG
====================================
*/

// IssuerConfig points at the credential issuer: the backend that exchanges
// username/password for a token and serves the account profile.
type IssuerConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	LoginPath      string
	RegisterPath   string
	ProfilePath    string
}

/*
====================================
ROUTES CONFIG
====================================
*/

// RoutesConfig names the two well-known application routes the admission
// gate redirects to, plus the query parameter that carries the originally
// requested route across a sign-in redirect.
type RoutesConfig struct {
	SignIn      string
	Landing     string
	ReturnParam string
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig controls the in-process metric store.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

func defaultConfig() Config {
	return Config{
		Issuer: IssuerConfig{
			RequestTimeout: 15 * time.Second,
			LoginPath:      "/login",
			RegisterPath:   "/register",
			ProfilePath:    "/user",
		},
		Routes: RoutesConfig{
			SignIn:      "/auth/login",
			Landing:     "/tasks",
			ReturnParam: "returnUrl",
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	return cfg
}

/*
====================================
VALIDATION
====================================
*/

func (c *Config) Validate() error {
	// Issuer
	if strings.TrimSpace(c.Issuer.BaseURL) == "" {
		return errors.New("Issuer BaseURL is required")
	}
	if c.Issuer.RequestTimeout <= 0 {
		return errors.New("Issuer RequestTimeout must be > 0")
	}
	for _, p := range []string{c.Issuer.LoginPath, c.Issuer.RegisterPath, c.Issuer.ProfilePath} {
		if !strings.HasPrefix(p, "/") {
			return errors.New("Issuer paths must start with '/'")
		}
	}

	// Routes
	if !strings.HasPrefix(c.Routes.SignIn, "/") {
		return errors.New("Routes SignIn must start with '/'")
	}
	if !strings.HasPrefix(c.Routes.Landing, "/") {
		return errors.New("Routes Landing must start with '/'")
	}
	if c.Routes.ReturnParam == "" {
		return errors.New("Routes ReturnParam is required")
	}

	// Audit
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0 when Audit is enabled")
	}

	return nil
}
