// Package authstate is the single source of truth for a browser
// session's authentication state. It is an explicit injected object:
// the application root constructs one per session and passes it to
// every consumer, there are no ambient singletons.
package authstate

import (
	"context"
	"sync"

	"github.com/cypher125/siwes/internal/domain"
	"github.com/cypher125/siwes/internal/service"
	"github.com/cypher125/siwes/internal/tokenstore"
	"github.com/cypher125/siwes/internal/upstream"
)

// State machine: Uninitialized -> Loading -> Authenticated | Unauthenticated.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateAuthenticated
	StateUnauthenticated
)

// Snapshot is the immutable view consumers read. Guards branch on
// IsLoading before anything else.
type Snapshot struct {
	User            *domain.Identity
	Role            domain.Role
	IsAuthenticated bool
	IsLoading       bool
}

type Context struct {
	mu       sync.RWMutex
	state    State
	user     *domain.Identity
	auth     *service.AuthService
	sess     *upstream.Session
	navigate func(path string)
}

// New builds an uninitialized context. navigate is invoked for the
// logout side effect and may be nil.
func New(auth *service.AuthService, sess *upstream.Session, navigate func(path string)) *Context {
	return &Context{
		state:    StateUninitialized,
		auth:     auth,
		sess:     sess,
		navigate: navigate,
	}
}

// Initialize rehydrates the state from the token store and session
// cache without a network round-trip. A token without a snapshot (or a
// snapshot without a token) is stale state and gets cleared so the two
// stores never diverge.
func (c *Context) Initialize(ctx context.Context) {
	c.setState(StateLoading, nil)

	token := c.sess.Tokens().Get(tokenstore.AccessToken)
	if token == "" {
		c.clearStores(ctx)
		c.setState(StateUnauthenticated, nil)
		return
	}

	user, err := c.sess.Cache().Get(ctx)
	if err != nil || user == nil {
		c.clearStores(ctx)
		c.setState(StateUnauthenticated, nil)
		return
	}

	c.setState(StateAuthenticated, user)
}

func (c *Context) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := Snapshot{
		IsLoading:       c.state == StateUninitialized || c.state == StateLoading,
		IsAuthenticated: c.state == StateAuthenticated,
	}
	if c.user != nil {
		u := *c.user
		snap.User = &u
		snap.Role = u.Role
	}
	return snap
}

// Session exposes the bound upstream session so resource handlers can
// issue authenticated calls.
func (c *Context) Session() *upstream.Session { return c.sess }

// Login and its variants transition to Authenticated on success only;
// a failed attempt leaves the current state untouched and the caller
// branches on the returned result.

func (c *Context) Login(ctx context.Context, req domain.LoginRequest) domain.LoginResult {
	result := c.auth.Login(ctx, c.sess, req)
	c.adoptLogin(ctx, result)
	return result
}

func (c *Context) LoginWithStaffID(ctx context.Context, req domain.StaffLoginRequest) domain.LoginResult {
	result := c.auth.LoginWithStaffID(ctx, c.sess, req)
	c.adoptLogin(ctx, result)
	return result
}

func (c *Context) LoginWithSurname(ctx context.Context, req domain.SurnameLoginRequest) domain.LoginResult {
	result := c.auth.LoginWithSurname(ctx, c.sess, req)
	c.adoptLogin(ctx, result)
	return result
}

// Register never authenticates; the state is only touched by login and
// logout.
func (c *Context) Register(ctx context.Context, req domain.RegisterRequest) domain.RegisterResult {
	return c.auth.Register(ctx, c.sess, req)
}

// Logout transitions to Unauthenticated from any state and fires the
// navigation side effect to the landing page.
func (c *Context) Logout(ctx context.Context) {
	c.auth.Logout(ctx, c.sess)
	c.setState(StateUnauthenticated, nil)
	if c.navigate != nil {
		c.navigate("/")
	}
}

func (c *Context) adoptLogin(ctx context.Context, result domain.LoginResult) {
	if !result.Success {
		return
	}
	user, err := c.sess.Cache().Get(ctx)
	if err != nil || user == nil {
		// The snapshot was persisted a moment ago; treat a read miss as
		// a cache outage and fall back to the result's role.
		user = &domain.Identity{Role: result.Role}
	}
	c.setState(StateAuthenticated, user)
}

func (c *Context) clearStores(ctx context.Context) {
	c.sess.Tokens().Remove(tokenstore.AccessToken)
	c.sess.Tokens().Remove(tokenstore.RefreshToken)
	_ = c.sess.Cache().Remove(ctx)
}

func (c *Context) setState(state State, user *domain.Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
	c.user = user
}
