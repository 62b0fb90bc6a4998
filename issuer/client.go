package issuer

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 15 * time.Second

// Maximum error body read before the connection is discarded. Issuer error
// payloads are a single short JSON object.
const maxErrorBody = 64 << 10

// LoginRequest is the payload for POST {base}/login. OTP is relayed opaquely;
// verification happens server-side.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	OTP      string `json:"otp"`
}

// UserPayload is the profile object embedded in a successful login response.
type UserPayload struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	RoleID   int    `json:"role_id"`
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Token   string      `json:"token"`
	Message string      `json:"message"`
	User    UserPayload `json:"user"`
}

// RegisterRequest is the payload for POST {base}/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse is the body of a successful registration.
type RegisterResponse struct {
	Message string `json:"message"`
}

// Paths overrides the issuer endpoint paths. Zero-value fields keep the
// defaults ("/login", "/register", "/user").
type Paths struct {
	Login    string
	Register string
	Profile  string
}

// Client calls the issuer endpoints. Instances are immutable after
// construction and safe for concurrent use.
type Client struct {
	baseURL string
	paths   Paths
	http    *http.Client
}

// NewClient creates an issuer client for the given base URL. When httpClient
// is nil a default client with a 15s timeout is used.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	return NewClientWithPaths(baseURL, httpClient, Paths{})
}

// NewClientWithPaths is NewClient for issuers with non-default endpoint paths.
func NewClientWithPaths(baseURL string, httpClient *http.Client, paths Paths) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	for len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	if paths.Login == "" {
		paths.Login = "/login"
	}
	if paths.Register == "" {
		paths.Register = "/register"
	}
	if paths.Profile == "" {
		paths.Profile = "/user"
	}
	return &Client{baseURL: baseURL, paths: paths, http: httpClient}
}

// Login exchanges the three credentials for a token and profile.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.postJSON(ctx, c.paths.Login, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account. It never returns a token; the caller signs in
// separately afterwards.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var resp RegisterResponse
	if err := c.postJSON(ctx, c.paths.Register, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Profile fetches the account profile with the given bearer credential and
// returns the payload opaquely.
func (c *Client) Profile(ctx context.Context, token string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+c.paths.Profile, nil)
	if err != nil {
		return nil, &Error{Message: err.Error(), cause: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Message: err.Error(), cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errorFromResponse(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Status: resp.StatusCode, Message: err.Error(), cause: err}
	}
	return json.RawMessage(body), nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &Error{Message: err.Error(), cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return &Error{Message: err.Error(), cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Message: err.Error(), cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Status: resp.StatusCode, Message: "invalid issuer response: " + err.Error(), cause: err}
	}
	return nil
}

// errorFromResponse extracts the server-provided detail from a non-2xx
// response. The issuer emits either {"message": …} or {"error": …}.
func errorFromResponse(resp *http.Response) *Error {
	out := &Error{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(body) == 0 {
		return out
	}

	var detail struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &detail) == nil {
		if detail.Message != "" {
			out.Message = detail.Message
		} else {
			out.Message = detail.Error
		}
	}
	return out
}
