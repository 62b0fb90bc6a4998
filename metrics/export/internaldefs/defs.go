package internaldefs

import (
	authgate "github.com/taskpilot/authgate"
)

// CounterDef binds a metric ID to its exported name and help text.
type CounterDef struct {
	ID   authgate.MetricID
	Name string
	Help string
}

// HistogramDef binds a histogram metric ID to its exported name and help text.
type HistogramDef struct {
	ID   authgate.MetricID
	Name string
	Help string
}

var CounterDefs = []CounterDef{
	{ID: authgate.MetricLoginSuccess, Name: "authgate_login_success_total", Help: "Successful sign-in attempts."},
	{ID: authgate.MetricLoginFailure, Name: "authgate_login_failure_total", Help: "Failed sign-in attempts."},
	{ID: authgate.MetricLoginSuperseded, Name: "authgate_login_superseded_total", Help: "Sign-in successes discarded because a sign-out won the race."},
	{ID: authgate.MetricRegisterSuccess, Name: "authgate_register_success_total", Help: "Successful registrations."},
	{ID: authgate.MetricRegisterFailure, Name: "authgate_register_failure_total", Help: "Failed registrations."},
	{ID: authgate.MetricLogout, Name: "authgate_logout_total", Help: "Explicit sign-out operations."},
	{ID: authgate.MetricForcedLogout, Name: "authgate_forced_logout_total", Help: "Sign-outs forced by an issuer 401."},
	{ID: authgate.MetricSessionRehydrated, Name: "authgate_session_rehydrated_total", Help: "Sessions restored from the credential store at startup."},
	{ID: authgate.MetricStateCorrupt, Name: "authgate_state_corrupt_total", Help: "Persisted sessions discarded as unparseable."},
	{ID: authgate.MetricTokenExpired, Name: "authgate_token_expired_total", Help: "Authentication checks that found an expired credential."},
	{ID: authgate.MetricProfileRefreshed, Name: "authgate_profile_refreshed_total", Help: "Profile snapshots re-fetched from the issuer."},
	{ID: authgate.MetricProfileUpdated, Name: "authgate_profile_updated_total", Help: "Profile snapshots replaced in store and state."},
	{ID: authgate.MetricGuardAllowed, Name: "authgate_guard_allowed_total", Help: "Admission checks that allowed the route."},
	{ID: authgate.MetricGuardDenied, Name: "authgate_guard_denied_total", Help: "Admission checks that denied the route."},
	{ID: authgate.MetricRequestAuthorized, Name: "authgate_request_authorized_total", Help: "Outgoing requests that carried the session credential."},
	{ID: authgate.MetricUnauthorizedResponse, Name: "authgate_unauthorized_response_total", Help: "401 responses observed."},
	{ID: authgate.MetricForbiddenResponse, Name: "authgate_forbidden_response_total", Help: "403 responses observed."},
	{ID: authgate.MetricBadRequestResponse, Name: "authgate_bad_request_response_total", Help: "400 responses observed."},
	{ID: authgate.MetricServerFaultResponse, Name: "authgate_server_fault_response_total", Help: "5xx responses observed."},
	{ID: authgate.MetricNetworkFailure, Name: "authgate_network_failure_total", Help: "Requests that received no response at all."},
}

var HistogramDefs = []HistogramDef{
	{ID: authgate.MetricLoginLatency, Name: "authgate_login_latency_seconds", Help: "Sign-in round-trip latency histogram."},
}

var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
