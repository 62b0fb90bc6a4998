package authgate

import (
	"context"
	"net/url"
)

// Decision is the outcome of an admission check. A denied decision always
// names the route to redirect to; the gate never strands the caller on a
// route it refused.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(redirect string) Decision {
	return Decision{Allowed: false, RedirectTo: redirect}
}

// AdmitAuthenticated guards routes that require a signed-in session. On
// denial it redirects to the sign-in route, carrying the requested route in
// the return-URL query parameter so sign-in can resume the navigation.
//
// An optional required role narrows the route further: an authenticated
// caller whose role does not match every listed role is sent to the landing
// route rather than an error.
func (m *Manager) AdmitAuthenticated(ctx context.Context, route string, requiredRole ...int) Decision {
	if m == nil {
		return deny("/")
	}
	if !m.IsAuthenticated() {
		m.denyAudit(ctx, route, "authenticated")
		return deny(m.signInRedirect(route))
	}
	for _, role := range requiredRole {
		if !m.HasRole(role) {
			m.denyAudit(ctx, route, "authenticated")
			return deny(m.cfg.Routes.Landing)
		}
	}
	m.metricInc(MetricGuardAllowed)
	return allow()
}

// AdmitAdmin guards admin-only routes. An unauthenticated caller is sent to
// sign-in with a return URL; an authenticated non-admin is sent to the
// landing route.
func (m *Manager) AdmitAdmin(ctx context.Context, route string) Decision {
	if m == nil {
		return deny("/")
	}
	if !m.IsAuthenticated() {
		m.denyAudit(ctx, route, "admin")
		return deny(m.signInRedirect(route))
	}
	if !m.IsAdmin() {
		m.denyAudit(ctx, route, "admin")
		return deny(m.cfg.Routes.Landing)
	}
	m.metricInc(MetricGuardAllowed)
	return allow()
}

// AdmitGuest guards routes meant only for signed-out visitors, the sign-in
// and registration views. A signed-in caller is sent to the landing route.
func (m *Manager) AdmitGuest(ctx context.Context, route string) Decision {
	if m == nil {
		return deny("/")
	}
	if m.IsAuthenticated() {
		m.denyAudit(ctx, route, "guest")
		return deny(m.cfg.Routes.Landing)
	}
	m.metricInc(MetricGuardAllowed)
	return allow()
}

func (m *Manager) signInRedirect(route string) string {
	if route == "" {
		return m.cfg.Routes.SignIn
	}
	return m.cfg.Routes.SignIn + "?" + m.cfg.Routes.ReturnParam + "=" + url.QueryEscape(route)
}

func (m *Manager) denyAudit(ctx context.Context, route, guard string) {
	m.metricInc(MetricGuardDenied)
	userID := 0
	if cur := m.state.Current(); cur != nil {
		userID = cur.ID
	}
	m.emitAudit(ctx, auditEventGuardDenied, false, userID, "", nil, func() map[string]string {
		return map[string]string{"route": route, "guard": guard}
	})
}
