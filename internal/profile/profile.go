package profile

import "time"

type Role string

const (
	RoleCommon    Role = "common"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// ParseRole maps a stored role to a Role. Unknown or empty roles are common.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleModerator, RoleAdmin:
		return Role(s)
	default:
		return RoleCommon
	}
}

// CanModerate reports whether the role may approve/reject bookings and read reports.
func (r Role) CanModerate() bool {
	return r == RoleModerator || r == RoleAdmin
}

type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
