package domain

import "github.com/google/uuid"

// Role is the closed set of account roles.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// CanAccessUser is the ownership capability check: admins may act on any
// account, everyone else only on their own.
func CanAccessUser(actorID uuid.UUID, actorRole Role, ownerID uuid.UUID) bool {
	if actorRole == RoleAdmin {
		return true
	}
	return actorID == ownerID
}
