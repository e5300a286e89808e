package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/eventflow/internal/client/formdata"
	"github.com/dmitrijs2005/eventflow/internal/client/models"
	"github.com/dmitrijs2005/eventflow/internal/common"
	"github.com/dmitrijs2005/eventflow/internal/logging"
	"github.com/google/uuid"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
	newID   func() string
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client. Its Timeout is
// honoured as given; the default client has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		cp := *hc
		c.http = &cp
	}
}

// WithMetrics instruments the transport. Apply after WithHTTPClient.
func WithMetrics(m *Metrics) Option {
	return func(c *HTTPClient) {
		c.http.Transport = m.InstrumentRoundTripper(c.http.Transport)
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) {
		c.log = l
	}
}

// NewHTTPClient creates a client for the API rooted at serverURL.
func NewHTTPClient(serverURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse server url: unsupported scheme %q", u.Scheme)
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{},
		log:     logging.Nop(),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "api")
	return c, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges a username and password for a bearer credential.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{"username": {username}, "password": {password}}

	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", "",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", &resp)
	if err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrServer)
	}
	return resp.AccessToken, nil
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) error {
	body, err := json.Marshal(registerRequest{Name: name, Email: email, Password: password})
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/auth/signup", "", bytes.NewReader(body), "application/json", nil)
}

func (c *HTTPClient) ListEvents(ctx context.Context, credential string) ([]models.EventRecord, error) {
	var events []models.EventRecord
	if err := c.do(ctx, http.MethodGet, "/events/", credential, nil, "", &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *HTTPClient) CreateEvent(ctx context.Context, credential string, payload *formdata.Payload) error {
	return c.do(ctx, http.MethodPost, "/events/", credential, payload.Reader(), payload.ContentType, nil)
}

func (c *HTTPClient) UpdateEvent(ctx context.Context, credential string, id models.ID, payload *formdata.Payload) error {
	return c.do(ctx, http.MethodPut, "/events/"+url.PathEscape(id.String()), credential,
		payload.Reader(), payload.ContentType, nil)
}

func (c *HTTPClient) DeleteEvent(ctx context.Context, credential string, id models.ID) error {
	return c.do(ctx, http.MethodDelete, "/events/"+url.PathEscape(id.String()), credential, nil, "", nil)
}

func (c *HTTPClient) ListUsers(ctx context.Context, credential string) ([]models.UserRecord, error) {
	var users []models.UserRecord
	if err := c.do(ctx, http.MethodGet, "/api/users/", credential, nil, "", &users); err != nil {
		return nil, err
	}
	return users, nil
}

type roleRequest struct {
	Role models.Role `json:"role"`
}

func (c *HTTPClient) UpdateRole(ctx context.Context, credential string, id models.ID, role models.Role) error {
	body, err := json.Marshal(roleRequest{Role: role})
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, "/api/users/"+url.PathEscape(id.String())+"/role", credential,
		bytes.NewReader(body), "application/json", nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path, credential string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := c.newID()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if credential != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+credential)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "request_id", requestID, "method", method, "path", path, "err", err)
		return c.mapError(ctx, err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "request done",
		"request_id", requestID,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if err := mapStatus(resp); err != nil {
		return err
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %w", ErrServer, method, path, err)
	}
	return nil
}

// mapError translates a transport failure. A cancelled or expired ctx is
// returned as is so callers can tell abandonment from an outage.
func (c *HTTPClient) mapError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

func mapStatus(resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, readDetail(resp.Body))
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return fmt.Errorf("%w: status %d", ErrUnavailable, code)
	default:
		return &StatusError{Code: code, Detail: readDetail(resp.Body)}
	}
}

// readDetail extracts the server's {"detail": ...} message. Non-string
// details (validation lists) are returned as raw JSON.
func readDetail(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil || len(b) == 0 {
		return ""
	}

	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(b, &body); err != nil || len(body.Detail) == 0 {
		return strings.TrimSpace(string(b))
	}

	var s string
	if err := json.Unmarshal(body.Detail, &s); err == nil {
		return s
	}
	return string(body.Detail)
}
