package authgate

import (
	"context"
	"errors"
	"strconv"
	"time"
)

const (
	auditEventLoginSuccess      = "login_success"
	auditEventLoginFailure      = "login_failure"
	auditEventLoginSuperseded   = "login_superseded"
	auditEventRegisterSuccess   = "register_success"
	auditEventRegisterFailure   = "register_failure"
	auditEventLogout            = "logout"
	auditEventForcedLogout      = "forced_logout"
	auditEventSessionRehydrated = "session_rehydrated"
	auditEventStateCorrupt      = "state_corrupt"
	auditEventProfileRefreshed  = "profile_refreshed"
	auditEventProfileUpdated    = "profile_updated"
	auditEventGuardDenied       = "guard_denied"
)

// AuditErrorCode is the normalized error label carried on audit events.
type AuditErrorCode string

const (
	auditErrNetworkUnreachable AuditErrorCode = "network_unreachable"
	auditErrUnauthorized       AuditErrorCode = "unauthorized"
	auditErrForbidden          AuditErrorCode = "forbidden"
	auditErrBadRequest         AuditErrorCode = "bad_request"
	auditErrServerFault        AuditErrorCode = "server_fault"
	auditErrMalformed          AuditErrorCode = "malformed_credential"
	auditErrCorruptState       AuditErrorCode = "corrupt_state"
	auditErrNoSession          AuditErrorCode = "no_session"
	auditErrSuperseded         AuditErrorCode = "login_superseded"
	auditErrInternal           AuditErrorCode = "internal_error"
)

func (m *Manager) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	userID int,
	attemptID string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if m == nil || m.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		AttemptID: attemptID,
		Success:   success,
		Metadata:  metadata,
	}
	if userID != 0 {
		event.UserID = strconv.Itoa(userID)
	}
	var apiErr *AuthError
	if errors.As(err, &apiErr) {
		event.Status = apiErr.Status
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	m.audit.Emit(ctx, event)
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrNetworkUnreachable):
		return auditErrNetworkUnreachable
	case errors.Is(err, ErrUnauthorized):
		return auditErrUnauthorized
	case errors.Is(err, ErrForbidden):
		return auditErrForbidden
	case errors.Is(err, ErrBadRequest):
		return auditErrBadRequest
	case errors.Is(err, ErrServerFault):
		return auditErrServerFault
	case errors.Is(err, ErrMalformedCredential):
		return auditErrMalformed
	case errors.Is(err, ErrCorruptPersistedState):
		return auditErrCorruptState
	case errors.Is(err, ErrNoSession):
		return auditErrNoSession
	case errors.Is(err, ErrLoginSuperseded):
		return auditErrSuperseded
	default:
		return auditErrInternal
	}
}
