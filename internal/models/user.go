package models

// Role determines which operations a user may perform.
type Role string

const (
	// RoleAdmin can manage groups, members, meetings, movements and reports.
	RoleAdmin Role = "admin"

	// RoleGroupManager can manage members, meetings and movements of groups.
	RoleGroupManager Role = "group_manager"

	// RoleMember can only consult their own balance and movement history.
	RoleMember Role = "member"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleGroupManager, RoleMember:
		return true
	}
	return false
}

// User represents a login identity.
type User struct {
	// ID is the unique identifier for the user.
	ID int64 `json:"id"`

	// Name is the display name of the user.
	Name string `json:"nome"`

	// Email is the user's email address (unique). Used for login.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized.
	PasswordHash string `json:"-"`

	// Role determines the operations this user is allowed to perform.
	Role Role `json:"role"`

	// MemberID links a member-role user to their Member record.
	// Zero when the user is not linked to a member.
	MemberID int64 `json:"member_id,omitempty"`

	// CreatedAt is the Unix timestamp when the user was created.
	CreatedAt int64 `json:"criado_em"`
}
