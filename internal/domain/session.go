package domain

// Role authorizes access to role-specific portal areas.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// SessionStatus represents lifecycle states for a portal session.
type SessionStatus string

const (
	StatusUnauthenticated SessionStatus = "UNAUTHENTICATED"
	StatusLoading         SessionStatus = "LOADING"
	StatusAuthenticated   SessionStatus = "AUTHENTICATED"
	StatusError           SessionStatus = "ERROR"
)

// UserIdentity is the verified identity of a signed-in user. The role is only
// meaningful when it was returned by the upstream verify endpoint; identities
// decoded locally from a credential must never be used for authorization.
type UserIdentity struct {
	ID       string
	Email    string
	Username string
	Role     Role
}

// Session is the in-memory authentication state for one portal client.
// A Session with StatusAuthenticated always carries a non-nil User.
type Session struct {
	User         *UserIdentity
	Status       SessionStatus
	ErrorMessage string
}

// Authenticated reports whether the session holds a verified identity.
func (s Session) Authenticated() bool {
	return s.Status == StatusAuthenticated && s.User != nil
}
