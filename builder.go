package authgate

import (
	"context"
	"errors"
	"net/http"

	"github.com/taskpilot/authgate/credstore"
	"github.com/taskpilot/authgate/internal/state"
	"github.com/taskpilot/authgate/issuer"
)

// Builder assembles a Manager. Obtain one with New, chain the With setters,
// then call Build exactly once.
type Builder struct {
	config Config

	store      Store
	httpClient *http.Client
	navigator  Navigator
	auditSink  AuditSink

	built bool
}

func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration. Defaults fill zero-value
// route and path fields at Build time.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithIssuerURL sets the issuer base URL, the only mandatory setting.
func (b *Builder) WithIssuerURL(baseURL string) *Builder {
	b.config.Issuer.BaseURL = baseURL
	return b
}

// WithStore sets the credential store backend. Defaults to an in-process
// store whose session does not survive a restart.
func (b *Builder) WithStore(store Store) *Builder {
	b.store = store
	return b
}

// WithHTTPClient sets the http.Client used for issuer calls.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithNavigator sets the host application's route changer.
func (b *Builder) WithNavigator(nav Navigator) *Builder {
	b.navigator = nav
	return b
}

// WithAuditSink sets the audit sink and enables audit dispatch.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	b.config.Audit.Enabled = sink != nil
	return b
}

func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration, rehydrates any persisted session, and
// returns the Manager.
func (b *Builder) Build() (*Manager, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store := b.store
	if store == nil {
		store = credstore.NewMemory()
	}

	httpClient := b.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Issuer.RequestTimeout}
	}

	m := &Manager{
		cfg:   cfg,
		store: store,
		issuer: issuer.NewClientWithPaths(cfg.Issuer.BaseURL, httpClient, issuer.Paths{
			Login:    cfg.Issuer.LoginPath,
			Register: cfg.Issuer.RegisterPath,
			Profile:  cfg.Issuer.ProfilePath,
		}),
		state:   state.New(),
		nav:     b.navigator,
		audit:   newAuditDispatcher(cfg.Audit, b.auditSink),
		metrics: NewMetrics(cfg.Metrics),
	}

	m.rehydrate(context.Background())

	b.built = true
	return m, nil
}

// applyDefaults backfills zero-value fields of a caller-supplied Config so
// WithConfig does not force every knob to be spelled out.
func applyDefaults(cfg *Config) {
	def := defaultConfig()
	if cfg.Issuer.RequestTimeout == 0 {
		cfg.Issuer.RequestTimeout = def.Issuer.RequestTimeout
	}
	if cfg.Issuer.LoginPath == "" {
		cfg.Issuer.LoginPath = def.Issuer.LoginPath
	}
	if cfg.Issuer.RegisterPath == "" {
		cfg.Issuer.RegisterPath = def.Issuer.RegisterPath
	}
	if cfg.Issuer.ProfilePath == "" {
		cfg.Issuer.ProfilePath = def.Issuer.ProfilePath
	}
	if cfg.Routes.SignIn == "" {
		cfg.Routes.SignIn = def.Routes.SignIn
	}
	if cfg.Routes.Landing == "" {
		cfg.Routes.Landing = def.Routes.Landing
	}
	if cfg.Routes.ReturnParam == "" {
		cfg.Routes.ReturnParam = def.Routes.ReturnParam
	}
	if cfg.Audit.BufferSize == 0 {
		cfg.Audit.BufferSize = def.Audit.BufferSize
	}
}
