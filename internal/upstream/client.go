// Package upstream is the portal's client to the remote logbook REST
// API. Every call attaches the current access token; an authorization
// failure triggers at most one token refresh and one replay before the
// session is torn down.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cypher125/siwes/internal/config"
	"github.com/cypher125/siwes/internal/domain"
	"github.com/cypher125/siwes/internal/session"
	"github.com/cypher125/siwes/internal/tokenstore"
	"github.com/cypher125/siwes/pkg/logger"
)

type Client struct {
	baseURL        string
	httpClient     *http.Client
	log            logger.Logger
	accessTTLDays  int
	refreshTTLDays int
}

func NewClient(cfg config.UpstreamConfig, auth config.AuthConfig, log logger.Logger) *Client {
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		log:            log,
		accessTTLDays:  auth.AccessTTLDays,
		refreshTTLDays: auth.RefreshTTLDays,
	}
}

// AccessTTLDays is the cookie lifetime for access tokens.
func (c *Client) AccessTTLDays() int { return c.accessTTLDays }

// RefreshTTLDays is the cookie lifetime for refresh tokens.
func (c *Client) RefreshTTLDays() int { return c.refreshTTLDays }

// Session binds the client to one browser session's credentials. All
// request methods read and write tokens through the bound store so a
// mid-request refresh lands in the caller's cookies.
func (c *Client) Session(tokens tokenstore.Store, cache session.Cache) *Session {
	return &Session{client: c, tokens: tokens, cache: cache}
}

type Session struct {
	client *Client
	tokens tokenstore.Store
	cache  session.Cache
}

func (s *Session) Tokens() tokenstore.Store { return s.tokens }
func (s *Session) Cache() session.Cache     { return s.cache }

func (s *Session) Get(ctx context.Context, path string, out interface{}) error {
	return s.do(ctx, http.MethodGet, path, nil, out, false)
}

func (s *Session) Post(ctx context.Context, path string, body, out interface{}) error {
	return s.do(ctx, http.MethodPost, path, body, out, false)
}

func (s *Session) Put(ctx context.Context, path string, body, out interface{}) error {
	return s.do(ctx, http.MethodPut, path, body, out, false)
}

func (s *Session) Patch(ctx context.Context, path string, body, out interface{}) error {
	return s.do(ctx, http.MethodPatch, path, body, out, false)
}

func (s *Session) Delete(ctx context.Context, path string) error {
	return s.do(ctx, http.MethodDelete, path, nil, nil, false)
}

// do issues one request. retried marks a replay after a refresh; it is
// the loop breaker that bounds every original request to at most one
// refresh attempt and one replay.
func (s *Session) do(ctx context.Context, method, path string, body, out interface{}, retried bool) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.client.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Attach the current access token; an absent token means the call
	// proceeds unauthenticated (login and lookup endpoints rely on this).
	token := s.tokens.Get(tokenstore.AccessToken)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read upstream response: %w", err)
	}

	// A 401 on a request that carried no token is a plain rejection
	// (wrong login credentials, most likely), not an expired session.
	if resp.StatusCode == http.StatusUnauthorized && token != "" && !retried {
		if err := s.refreshAccessToken(ctx); err != nil {
			return err
		}
		// Replay the original request exactly once with the new token.
		return s.do(ctx, method, path, body, out, true)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    extractMessage(resp.StatusCode, raw),
		}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode upstream response: %w", err)
		}
	}
	return nil
}

// refreshAccessToken exchanges the refresh token for a new access token
// and persists it. Any failure is terminal for the session: both tokens
// and the identity snapshot are discarded together so the stores never
// diverge, and ErrSessionExpired tells the caller to navigate to the
// landing page.
func (s *Session) refreshAccessToken(ctx context.Context) error {
	refresh := s.tokens.Get(tokenstore.RefreshToken)
	if refresh == "" {
		s.teardown(ctx)
		return domain.ErrSessionExpired
	}

	payload, err := json.Marshal(map[string]string{"refresh": refresh})
	if err != nil {
		s.teardown(ctx)
		return domain.ErrSessionExpired
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.client.baseURL+"/token/refresh/", bytes.NewReader(payload))
	if err != nil {
		s.teardown(ctx)
		return domain.ErrSessionExpired
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.httpClient.Do(req)
	if err != nil {
		s.teardown(ctx)
		return domain.ErrSessionExpired
	}
	defer resp.Body.Close()

	var result struct {
		Access string `json:"access"`
	}
	if resp.StatusCode != http.StatusOK || json.NewDecoder(resp.Body).Decode(&result) != nil || result.Access == "" {
		s.client.log.Warn("token refresh rejected", "status", resp.StatusCode)
		s.teardown(ctx)
		return domain.ErrSessionExpired
	}

	s.tokens.Set(tokenstore.AccessToken, result.Access, s.client.accessCookieDays(result.Access))
	return nil
}

func (s *Session) teardown(ctx context.Context) {
	s.tokens.Remove(tokenstore.AccessToken)
	s.tokens.Remove(tokenstore.RefreshToken)
	if err := s.cache.Remove(ctx); err != nil {
		s.client.log.Warn("failed to clear session cache", "error", err)
	}
}

// accessCookieDays sizes the replacement access cookie. When the token
// is a JWT its exp claim is peeked without verification, only to align
// the cookie lifetime with the token's; opaque tokens fall back to the
// configured default.
func (c *Client) accessCookieDays(token string) int {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return c.accessTTLDays
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return c.accessTTLDays
	}
	days := int(math.Ceil(time.Until(exp.Time).Hours() / 24))
	if days < 1 || days > c.accessTTLDays {
		return c.accessTTLDays
	}
	return days
}
