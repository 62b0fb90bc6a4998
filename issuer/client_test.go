package issuer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoginDecodesTokenAndProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if req.Username != "ana" || req.Password != "pw" || req.OTP != "123456" {
			t.Fatalf("credentials not relayed: %+v", req)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token":   "tok.abc.def",
			"message": "Login successful",
			"user":    map[string]any{"id": 7, "username": "ana", "role_id": 2},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	resp, err := c.Login(context.Background(), LoginRequest{Username: "ana", Password: "pw", OTP: "123456"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Token != "tok.abc.def" || resp.User.RoleID != 2 || resp.User.ID != 7 {
		t.Fatalf("response %+v", resp)
	}
}

func TestErrorCarriesStatusAndServerMessage(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		body     string
		sentinel error
		message  string
	}{
		{"unauthorized message key", 401, `{"message":"Invalid credentials"}`, ErrUnauthorized, "Invalid credentials"},
		{"forbidden error key", 403, `{"error":"Admin access required"}`, ErrForbidden, "Admin access required"},
		{"bad request", 400, `{"message":"Missing fields"}`, ErrBadRequest, "Missing fields"},
		{"server fault", 502, `{"error":"upstream down"}`, ErrServerFault, "upstream down"},
		{"empty body", 500, ``, ErrServerFault, ""},
		{"non-json body", 400, `<html>nope</html>`, ErrBadRequest, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, nil).Login(context.Background(), LoginRequest{})
			if !errors.Is(err, tc.sentinel) {
				t.Fatalf("expected %v, got %v", tc.sentinel, err)
			}
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if apiErr.Status != tc.status || apiErr.Message != tc.message {
				t.Fatalf("detail %+v", apiErr)
			}
		})
	}
}

func TestNetworkFailureHasStatusZero(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, nil).Login(context.Background(), LoginRequest{})
	if !errors.Is(err, ErrNetworkUnreachable) {
		t.Fatalf("expected ErrNetworkUnreachable, got %v", err)
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Status != 0 {
		t.Fatalf("expected status 0, got %+v", apiErr)
	}
}

func TestProfileSendsBearerAndReturnsRawPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Fatalf("Authorization %q", got)
		}
		_, _ = w.Write([]byte(`{"id":7,"username":"ana","role_id":2,"extra":"kept"}`))
	}))
	defer srv.Close()

	raw, err := NewClient(srv.URL, nil).Profile(context.Background(), "tok")
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	// The payload is opaque; unknown fields survive.
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("raw payload unparseable: %v", err)
	}
	if decoded["extra"] != "kept" {
		t.Fatalf("payload %v", decoded)
	}
}

func TestCustomPathsAndTrailingSlash(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "ok"})
	}))
	defer srv.Close()

	c := NewClientWithPaths(srv.URL+"/", nil, Paths{Register: "/api/signup"})
	if _, err := c.Register(context.Background(), RegisterRequest{Username: "ana"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if path != "/api/signup" {
		t.Fatalf("path %q", path)
	}
}
