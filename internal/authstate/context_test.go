package authstate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypher125/siwes/internal/config"
	"github.com/cypher125/siwes/internal/domain"
	"github.com/cypher125/siwes/internal/service"
	"github.com/cypher125/siwes/internal/session"
	"github.com/cypher125/siwes/internal/tokenstore"
	"github.com/cypher125/siwes/internal/upstream"
	"github.com/cypher125/siwes/pkg/logger"
	"github.com/cypher125/siwes/pkg/validator"
)

type harness struct {
	ctx       *Context
	tokens    *tokenstore.MemoryStore
	cache     *session.MemoryCache
	navigated []string
}

func newHarness(t *testing.T, upstreamURL string) *harness {
	t.Helper()
	client := upstream.NewClient(
		config.UpstreamConfig{BaseURL: upstreamURL, Timeout: 5 * time.Second},
		config.AuthConfig{AccessTTLDays: 1, RefreshTTLDays: 7},
		logger.NewNop(),
	)
	auth := service.NewAuthService(client, validator.New(), logger.NewNop())

	h := &harness{
		tokens: tokenstore.NewMemoryStore(),
		cache:  session.NewMemoryCache(),
	}
	sess := client.Session(h.tokens, h.cache)
	h.ctx = New(auth, sess, func(path string) {
		h.navigated = append(h.navigated, path)
	})
	return h
}

func TestUninitializedReportsLoading(t *testing.T) {
	h := newHarness(t, "http://unused")
	snap := h.ctx.Snapshot()
	assert.True(t, snap.IsLoading)
	assert.False(t, snap.IsAuthenticated)
}

func TestInitializeRehydratesFromStores(t *testing.T) {
	h := newHarness(t, "http://unused")
	h.tokens.Set(tokenstore.AccessToken, "tok", 1)
	require.NoError(t, h.cache.Set(context.Background(), &domain.Identity{
		ID: 3, Email: "s@yabatech.edu.ng", Role: domain.RoleSupervisor,
	}))

	h.ctx.Initialize(context.Background())

	snap := h.ctx.Snapshot()
	assert.False(t, snap.IsLoading)
	assert.True(t, snap.IsAuthenticated)
	assert.Equal(t, domain.RoleSupervisor, snap.Role)
	require.NotNil(t, snap.User)
	assert.Equal(t, "s@yabatech.edu.ng", snap.User.Email)
}

func TestInitializeWithoutTokenClearsStaleSnapshot(t *testing.T) {
	h := newHarness(t, "http://unused")
	require.NoError(t, h.cache.Set(context.Background(), &domain.Identity{ID: 3, Role: domain.RoleStudent}))

	h.ctx.Initialize(context.Background())

	snap := h.ctx.Snapshot()
	assert.False(t, snap.IsAuthenticated)
	user, _ := h.cache.Get(context.Background())
	assert.Nil(t, user, "stale identity without a token is cleared")
}

func TestInitializeWithTokenButNoSnapshotClearsToken(t *testing.T) {
	h := newHarness(t, "http://unused")
	h.tokens.Set(tokenstore.AccessToken, "tok", 1)
	h.tokens.Set(tokenstore.RefreshToken, "ref", 7)

	h.ctx.Initialize(context.Background())

	snap := h.ctx.Snapshot()
	assert.False(t, snap.IsAuthenticated)
	assert.Empty(t, h.tokens.Get(tokenstore.AccessToken), "token without an identity is cleared")
	assert.Empty(t, h.tokens.Get(tokenstore.RefreshToken))
}

func TestLoginTransitionsOnSuccessOnly(t *testing.T) {
	unauthorized := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if unauthorized {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"bad credentials"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access":  "a",
			"refresh": "r",
			"user": map[string]interface{}{
				"id": 1, "email": "x@yabatech.edu.ng",
				"first_name": "X", "last_name": "Y", "role": "student",
			},
		})
	}))
	defer srv.Close()

	h := newHarness(t, srv.URL)
	h.ctx.Initialize(context.Background())

	req := domain.LoginRequest{Email: "x@yabatech.edu.ng", Password: "pw"}

	result := h.ctx.Login(context.Background(), req)
	require.False(t, result.Success)
	assert.False(t, h.ctx.Snapshot().IsAuthenticated, "failed login leaves state untouched")

	unauthorized = false
	result = h.ctx.Login(context.Background(), req)
	require.True(t, result.Success)

	snap := h.ctx.Snapshot()
	assert.True(t, snap.IsAuthenticated)
	assert.Equal(t, domain.RoleStudent, snap.Role)
}

func TestRegisterDoesNotAuthenticate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	h := newHarness(t, srv.URL)
	h.ctx.Initialize(context.Background())

	result := h.ctx.Register(context.Background(), domain.RegisterRequest{
		Email:      "new@yabatech.edu.ng",
		Password:   "longenough",
		FirstName:  "New",
		LastName:   "User",
		Role:       domain.RoleStudent,
		MatricNo:   "F/ND/22/3210113",
		Department: "Computer Science",
		Level:      "ND1",
	})

	require.True(t, result.Success)
	assert.False(t, h.ctx.Snapshot().IsAuthenticated)
}

func TestLogoutIsUnconditionalAndNavigates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	h := newHarness(t, srv.URL)
	h.tokens.Set(tokenstore.AccessToken, "tok", 1)
	require.NoError(t, h.cache.Set(context.Background(), &domain.Identity{ID: 1, Role: domain.RoleAdmin}))
	h.ctx.Initialize(context.Background())
	require.True(t, h.ctx.Snapshot().IsAuthenticated)

	h.ctx.Logout(context.Background())

	snap := h.ctx.Snapshot()
	assert.False(t, snap.IsAuthenticated)
	assert.Empty(t, h.tokens.Get(tokenstore.AccessToken))
	user, _ := h.cache.Get(context.Background())
	assert.Nil(t, user)
	assert.Equal(t, []string{"/"}, h.navigated)
}
