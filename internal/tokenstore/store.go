// Package tokenstore holds the bearer credentials for a browser
// session. Tokens live in cookies so the edge guard can see them;
// everything else treats the store as an opaque name/value bag.
package tokenstore

// Cookie names. SessionID keys the redis identity snapshot and carries
// no security sensitivity of its own.
const (
	AccessToken  = "access_token"
	RefreshToken = "refresh_token"
	SessionID    = "siwes_sid"
)

// Store is the token store contract. Get returns an empty string for
// missing names; Remove on a missing name is a no-op.
type Store interface {
	Get(name string) string
	Set(name, value string, ttlDays int)
	Remove(name string)
}
