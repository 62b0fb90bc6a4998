package middleware

import (
	"context"
	"net/http"

	authgate "github.com/taskpilot/authgate"
)

type decide func(ctx context.Context, route string) authgate.Decision

func guard(decision decide) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := decision(r.Context(), r.URL.RequestURI())
			if !d.Allowed {
				http.Redirect(w, r, d.RedirectTo, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuthenticated redirects signed-out requests to the sign-in route,
// carrying the requested route in the return-URL parameter.
func RequireAuthenticated(manager *authgate.Manager) func(http.Handler) http.Handler {
	return guard(func(ctx context.Context, route string) authgate.Decision {
		return manager.AdmitAuthenticated(ctx, route)
	})
}

// RequireRole demands a signed-in session carrying the given role;
// authenticated requests with another role are redirected to the landing
// route.
func RequireRole(manager *authgate.Manager, roleID int) func(http.Handler) http.Handler {
	return guard(func(ctx context.Context, route string) authgate.Decision {
		return manager.AdmitAuthenticated(ctx, route, roleID)
	})
}

// RequireAdmin additionally demands the admin role; authenticated non-admins
// are redirected to the landing route.
func RequireAdmin(manager *authgate.Manager) func(http.Handler) http.Handler {
	return guard(manager.AdmitAdmin)
}

// RequireGuest redirects signed-in requests to the landing route. Use it on
// the sign-in and registration views.
func RequireGuest(manager *authgate.Manager) func(http.Handler) http.Handler {
	return guard(manager.AdmitGuest)
}
