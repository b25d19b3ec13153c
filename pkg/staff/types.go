package staff

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies a staff role. Role hierarchy comparisons belong to the
// admin back-office; for entitlement purposes any active grant is equal.
type Role string

const (
	RoleSupportAgent Role = "support_agent"
	RoleModerator    Role = "moderator"
	RoleAdmin        Role = "admin"
	RoleSuperAdmin   Role = "super_admin"
)

// Valid reports whether the role is one of the known staff roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSupportAgent, RoleModerator, RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// Grant marks a user as staff. Grants are created and revoked by
// super-admin actions; this package only reads them.
type Grant struct {
	UserID    uuid.UUID
	Role      Role
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
