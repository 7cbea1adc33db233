package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypher125/siwes/internal/config"
	"github.com/cypher125/siwes/internal/domain"
	"github.com/cypher125/siwes/internal/handler/middleware"
	"github.com/cypher125/siwes/internal/service"
	"github.com/cypher125/siwes/internal/session"
	"github.com/cypher125/siwes/internal/upstream"
	"github.com/cypher125/siwes/pkg/logger"
	"github.com/cypher125/siwes/pkg/validator"
)

// fakeAPI stands in for the remote logbook REST API. It accepts one set
// of credentials, one refresh token, and a small allow-list of access
// tokens.
type fakeAPI struct {
	srv          *httptest.Server
	refreshCalls int
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{}
	validAccess := map[string]bool{"valid-access": true, "renewed-access": true}

	mux := http.NewServeMux()
	// The local toolchain predates Go 1.22's method-qualified ServeMux
	// patterns; requireMethod reproduces their 405 on a method mismatch.
	requireMethod := func(method string, h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Method != method {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			h(w, r)
		}
	}
	mux.HandleFunc("/token/", requireMethod(http.MethodPost, func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Email != "admin@yabatech.edu.ng" || creds.Password != "correct-horse" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"No active account found with the given credentials"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access":  "valid-access",
			"refresh": "good-refresh",
			"user": map[string]interface{}{
				"id": 7, "email": creds.Email,
				"first_name": "Bisi", "last_name": "Adewale", "role": "admin",
			},
		})
	}))
	mux.HandleFunc("/token/refresh/", requireMethod(http.MethodPost, func(w http.ResponseWriter, r *http.Request) {
		f.refreshCalls++
		var body struct {
			Refresh string `json:"refresh"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Refresh != "good-refresh" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Token is invalid or expired"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access": "renewed-access"})
	}))
	mux.HandleFunc("/logout/", requireMethod(http.MethodPost, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	mux.HandleFunc("/admin/dashboard/", requireMethod(http.MethodGet, func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !validAccess[token] {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Given token not valid for any token type"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]int{"total_students": 240})
	}))

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

type portal struct {
	app      *fiber.App
	api      *fakeAPI
	sessions *session.Store
}

func newPortal(t *testing.T) *portal {
	t.Helper()
	api := newFakeAPI(t)

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	log := logger.NewNop()
	client := upstream.NewClient(
		config.UpstreamConfig{BaseURL: api.srv.URL, Timeout: 5 * time.Second},
		config.AuthConfig{AccessTTLDays: 1, RefreshTTLDays: 7},
		log,
	)
	sessions := session.NewStore(redisClient, 7*24*time.Hour)
	validate := validator.New()
	auth := service.NewAuthService(client, validate, log)

	app := fiber.New()
	app.Use(middleware.EdgeGuard())
	app.Use(middleware.AuthContext(auth, client, sessions, "", false))
	SetupRoutes(app,
		NewAuthHandler(),
		NewStudentHandler(validate),
		NewSupervisorHandler(validate),
		NewAdminHandler(),
		NewHealthHandler(redisClient),
	)

	return &portal{app: app, api: api, sessions: sessions}
}

func cookiesOf(resp *http.Response) map[string]*http.Cookie {
	out := make(map[string]*http.Cookie)
	for _, ck := range resp.Cookies() {
		out[ck.Name] = ck
	}
	return out
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func attach(req *http.Request, cookies map[string]*http.Cookie) {
	for _, ck := range cookies {
		if ck.Value != "" {
			req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
		}
	}
}

func TestLoginThenDashboard(t *testing.T) {
	p := newPortal(t)

	resp, err := p.app.Test(jsonRequest(http.MethodPost, "/auth/login",
		`{"email":"admin@yabatech.edu.ng","password":"correct-horse"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookies := cookiesOf(resp)
	require.Contains(t, cookies, "access_token")
	require.Contains(t, cookies, "refresh_token")
	require.Contains(t, cookies, "siwes_sid")
	assert.Equal(t, "valid-access", cookies["access_token"].Value)

	var result domain.LoginResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.Success)
	assert.Equal(t, domain.RoleAdmin, result.Role)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	attach(req, cookies)
	resp, err = p.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "admin reaches the admin tree without a redirect")

	var stats map[string]int
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 240, stats["total_students"])
}

func TestLoginFailureSurfacesUpstreamMessage(t *testing.T) {
	p := newPortal(t)

	resp, err := p.app.Test(jsonRequest(http.MethodPost, "/auth/login",
		`{"email":"admin@yabatech.edu.ng","password":"wrong"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var result domain.LoginResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.False(t, result.Success)
	assert.Equal(t, "No active account found with the given credentials", result.Message)

	cookies := cookiesOf(resp)
	assert.NotContains(t, cookies, "access_token", "no token cookie on a failed login")
}

func TestWrongRoleRedirectsToOwnDashboard(t *testing.T) {
	p := newPortal(t)

	resp, err := p.app.Test(jsonRequest(http.MethodPost, "/auth/login",
		`{"email":"admin@yabatech.edu.ng","password":"correct-horse"}`))
	require.NoError(t, err)
	cookies := cookiesOf(resp)

	req := httptest.NewRequest(http.MethodGet, "/student/profile", nil)
	attach(req, cookies)
	resp, err = p.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin", resp.Header.Get("Location"))
}

func TestNoSessionHitsTheEdgeGuard(t *testing.T) {
	p := newPortal(t)

	resp, err := p.app.Test(httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/login", resp.Header.Get("Location"))
}

func TestExpiredAccessIsRefreshedTransparently(t *testing.T) {
	p := newPortal(t)

	sid := "it-sid-1"
	require.NoError(t, p.sessions.Bind(sid).Set(context.Background(), &domain.Identity{
		ID: 7, Email: "admin@yabatech.edu.ng", Role: domain.RoleAdmin,
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "siwes_sid", Value: sid})
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "stale-access"})
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "good-refresh"})

	resp, err := p.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "the page renders despite the stale access token")
	assert.Equal(t, 1, p.api.refreshCalls)

	cookies := cookiesOf(resp)
	require.Contains(t, cookies, "access_token")
	assert.Equal(t, "renewed-access", cookies["access_token"].Value, "the rotated token lands in the response")
}

func TestDeadSessionRedirectsToLanding(t *testing.T) {
	p := newPortal(t)

	sid := "it-sid-2"
	require.NoError(t, p.sessions.Bind(sid).Set(context.Background(), &domain.Identity{
		ID: 7, Email: "admin@yabatech.edu.ng", Role: domain.RoleAdmin,
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "siwes_sid", Value: sid})
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "stale-access"})
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "dead-refresh"})

	resp, err := p.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	cookies := cookiesOf(resp)
	require.Contains(t, cookies, "access_token")
	assert.Empty(t, cookies["access_token"].Value, "token cookies are expired on teardown")

	snapshot, err := p.sessions.Bind(sid).Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snapshot, "the identity snapshot is gone too")
}

func TestLogoutClearsCookiesAndRedirects(t *testing.T) {
	p := newPortal(t)

	resp, err := p.app.Test(jsonRequest(http.MethodPost, "/auth/login",
		`{"email":"admin@yabatech.edu.ng","password":"correct-horse"}`))
	require.NoError(t, err)
	cookies := cookiesOf(resp)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	attach(req, cookies)
	resp, err = p.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	cleared := cookiesOf(resp)
	require.Contains(t, cleared, "access_token")
	require.Contains(t, cleared, "refresh_token")
	assert.Empty(t, cleared["access_token"].Value)
	assert.Empty(t, cleared["refresh_token"].Value)
}

func TestSessionSnapshotEndpoint(t *testing.T) {
	p := newPortal(t)

	resp, err := p.app.Test(httptest.NewRequest(http.MethodGet, "/auth/session", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap struct {
		IsAuthenticated bool        `json:"is_authenticated"`
		IsLoading       bool        `json:"is_loading"`
		Role            domain.Role `json:"role"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.False(t, snap.IsAuthenticated)
	assert.False(t, snap.IsLoading, "the state is resolved once the middleware has run")

	resp, err = p.app.Test(jsonRequest(http.MethodPost, "/auth/login",
		`{"email":"admin@yabatech.edu.ng","password":"correct-horse"}`))
	require.NoError(t, err)
	cookies := cookiesOf(resp)

	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	attach(req, cookies)
	resp, err = p.app.Test(req)
	require.NoError(t, err)

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.True(t, snap.IsAuthenticated)
	assert.Equal(t, domain.RoleAdmin, snap.Role)
}

func TestRegistrationDoesNotStartASession(t *testing.T) {
	p := newPortal(t)

	resp, err := p.app.Test(jsonRequest(http.MethodPost, "/auth/register",
		`{"email":"new@yabatech.edu.ng","password":"longenough","first_name":"New",
		  "last_name":"User","role":"admin","admin_code":"SECRET"}`))
	require.NoError(t, err)

	// The fake API has no register endpoint, so the attempt fails, but
	// even a successful registration must not set token cookies.
	cookies := cookiesOf(resp)
	assert.NotContains(t, cookies, "access_token")
	assert.NotContains(t, cookies, "refresh_token")
}
