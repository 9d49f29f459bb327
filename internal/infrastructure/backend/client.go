// Package backend is the REST client for the boutique API. Every storefront
// domain talks to the backend through this client; the shopper's backend
// session cookie travels in the request context and is relayed untouched.
package backend

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/boutique-storefront/internal/config"
	"github.com/your-org/boutique-storefront/internal/pkg/apperr"
	"github.com/your-org/boutique-storefront/internal/pkg/logger"
)

// maxResponseBytes caps how much of a backend response body is read
const maxResponseBytes = 8 << 20

type sessionKey struct{}

// WithSession returns a context carrying the shopper's backend session cookie value
func WithSession(ctx context.Context, session string) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFrom returns the backend session cookie value carried by ctx
func SessionFrom(ctx context.Context) string {
	if v, ok := ctx.Value(sessionKey{}).(string); ok {
		return v
	}
	return ""
}

// Client calls the boutique REST API
type Client struct {
	baseURL       string
	sessionCookie string
	httpClient    *http.Client
}

// NewClient creates a backend client with a pooled transport
func NewClient(cfg *config.Config) *Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          cfg.Backend.MaxIdleConns,
		MaxIdleConnsPerHost:   cfg.Backend.MaxIdleConns,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: cfg.Backend.Timeout,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}

	return &Client{
		baseURL:       strings.TrimRight(cfg.Backend.BaseURL, "/"),
		sessionCookie: cfg.Backend.SessionCookie,
		httpClient: &http.Client{
			Timeout:   cfg.Backend.Timeout,
			Transport: transport,
			// Set-Cookie on a redirect response must reach the browser, not be followed
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// SessionCookieName returns the name of the backend session cookie
func (c *Client) SessionCookieName() string {
	return c.sessionCookie
}

// request describes one backend call. At most one of form and body is set.
type request struct {
	method string
	path   string
	query  url.Values
	form   url.Values
	body   any
}

// messageResponse is the {message} / {error} envelope most mutations return
type messageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// send performs r, decodes a successful response into out and returns the
// cookies the backend set
func (c *Client) send(ctx context.Context, r request, out any) ([]*http.Cookie, error) {
	endpoint := c.baseURL + r.path
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	var (
		payload     io.Reader
		contentType string
	)
	switch {
	case r.form != nil:
		payload = strings.NewReader(r.form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case r.body != nil:
		raw, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s %s body: %w", r.method, r.path, err)
		}
		payload = bytes.NewReader(raw)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, payload)
	if err != nil {
		return nil, apperr.Infrastructure(fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if session := SessionFrom(ctx); session != "" {
		req.AddCookie(&http.Cookie{Name: c.sessionCookie, Value: session})
	}
	if requestID := logger.RequestIDFrom(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"backend_method": r.method,
		"backend_path":   r.path,
	})

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Debug("Backend call abandoned by client")
		} else {
			log.WithError(err).Error("Backend unreachable")
		}
		return nil, apperr.Infrastructure(fmt.Errorf("%s %s: %w", r.method, r.path, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		log.WithError(err).Error("Failed to read backend response")
		return nil, apperr.Infrastructure(fmt.Errorf("%s %s: read body: %w", r.method, r.path, err))
	}

	log = log.WithFields(logrus.Fields{
		"backend_status":  resp.StatusCode,
		"backend_latency": time.Since(start).String(),
	})

	if resp.StatusCode >= 300 {
		if resp.StatusCode >= 500 || resp.StatusCode < 400 {
			log.WithField("backend_body", truncate(body, 512)).Error("Backend call failed")
		} else {
			log.Debug("Backend rejected request")
		}
		return nil, classify(r, resp.StatusCode, body)
	}
	log.Debug("Backend call completed")

	if out != nil && len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			log.WithError(err).Error("Unparsable backend response")
			return nil, apperr.Infrastructure(fmt.Errorf("%s %s: decode response: %w", r.method, r.path, err))
		}
	}

	return resp.Cookies(), nil
}

// sendMessage performs r and returns the backend's message text
func (c *Client) sendMessage(ctx context.Context, r request) (string, error) {
	var out messageResponse
	if _, err := c.send(ctx, r, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// classify turns a non-2xx backend response into a storefront error
func classify(r request, status int, body []byte) error {
	msg := errorMessage(body)

	switch {
	case status == http.StatusUnauthorized:
		return apperr.Unauthorized(msg, "")
	case status == http.StatusForbidden:
		return apperr.Forbidden(msg)
	case status >= 400 && status < 500:
		if msg == "" {
			msg = http.StatusText(status)
		}
		return apperr.Business(status, msg)
	default:
		return apperr.Infrastructure(fmt.Errorf("%s %s: backend status %d", r.method, r.path, status))
	}
}

// errorMessage extracts the error text of a backend error body
func errorMessage(body []byte) string {
	var env messageResponse
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	if env.Error != "" {
		return env.Error
	}
	return env.Message
}

func truncate(body []byte, n int) string {
	if len(body) > n {
		return string(body[:n]) + "..."
	}
	return string(body)
}

// Ping checks that the backend answers at all; any non-5xx status counts
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/public/policies", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode >= 500 {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	return nil
}

func idPath(format string, id int64) string {
	return fmt.Sprintf(format, id)
}
