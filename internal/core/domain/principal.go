package domain

import "slices"

// RoleID identifies a role held by a user. The values match the role ids
// returned by the datastore's authenticate procedure.
type RoleID int

const (
	RoleAdmin     RoleID = 1
	RoleAuthor    RoleID = 2
	RoleReviewer  RoleID = 3
	RolePublisher RoleID = 4
)

// Valid reports whether r is one of the known roles.
func (r RoleID) Valid() bool {
	return r >= RoleAdmin && r <= RolePublisher
}

func (r RoleID) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleAuthor:
		return "author"
	case RoleReviewer:
		return "reviewer"
	case RolePublisher:
		return "publisher"
	default:
		return "unknown"
	}
}

// Principal is an authenticated user and the roles granted at login.
// A Principal is never mutated; a new login produces a new one.
type Principal struct {
	Username string   `json:"username"`
	Roles    []RoleID `json:"roles"`
}

// NewPrincipal copies roles so the caller's slice can't alias the principal.
func NewPrincipal(username string, roles []RoleID) Principal {
	return Principal{Username: username, Roles: slices.Clone(roles)}
}

// HasRole reports whether the principal holds r.
func (p Principal) HasRole(r RoleID) bool {
	return slices.Contains(p.Roles, r)
}

// Identity is either anonymous or an authenticated Principal.
// The zero value is anonymous.
type Identity struct {
	principal     Principal
	authenticated bool
}

// Anonymous returns the identity of a caller without a valid session.
func Anonymous() Identity {
	return Identity{}
}

// Authenticated wraps p as a signed-in identity.
func Authenticated(p Principal) Identity {
	return Identity{principal: p, authenticated: true}
}

// Principal returns the wrapped principal and whether there is one.
func (i Identity) Principal() (Principal, bool) {
	return i.principal, i.authenticated
}

func (i Identity) IsAnonymous() bool {
	return !i.authenticated
}

// LoginRequest carries credentials for a single authenticate call.
type LoginRequest struct {
	Username string
	Password string
}

// RegisterRequest carries a new account's credentials. The datastore checks
// that ConfirmPassword matches Password.
type RegisterRequest struct {
	Username        string
	Password        string
	ConfirmPassword string
}
