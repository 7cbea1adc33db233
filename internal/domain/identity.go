package domain

// Identity is the authenticated user's snapshot, persisted in the
// session cache so page loads can rehydrate without a network
// round-trip. Field names follow the upstream API's wire format.
type Identity struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      Role   `json:"role"`
}

// TokenResponse is the upstream token endpoint payload. Role may be
// absent from User on the lookup-then-login paths; callers normalize it.
type TokenResponse struct {
	Access  string   `json:"access"`
	Refresh string   `json:"refresh"`
	User    Identity `json:"user"`
}

// LookupResponse resolves a non-email identifier (staff ID, surname) to
// the email the token exchange needs.
type LookupResponse struct {
	Email string `json:"email"`
}
