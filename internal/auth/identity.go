package auth

// RoleUser is the only role this service grants.
const RoleUser = "ROLE_USER"

// Identity is the authenticated caller established from a verified token.
// It is rebuilt per request and never persisted.
type Identity struct {
	Subject string
	Role    string
}
