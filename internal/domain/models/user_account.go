package models

// Role is the authorization role carried by a user account
type Role string

const (
	RoleUser       Role = "user"
	RoleSupervisor Role = "supervisor"
	RoleAdmin      Role = "admin"
)

// ValidRole reports whether r is one of the known roles
func ValidRole(r Role) bool {
	return r == RoleUser || r == RoleSupervisor || r == RoleAdmin
}

// UserAccount is a user record in the file-backed user store. The
// username is the unique key; the store persists accounts keyed by it.
type UserAccount struct {
	Username  string `json:"-"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
	Password  string `json:"password"` // bcrypt hash
	Role      Role   `json:"role"`
	CreatedAt string `json:"created_at,omitempty"`
}

// PublicUser is the JSON shape of a user account with the password
// hash stripped
type PublicUser struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
	Role      Role   `json:"role"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Public returns the account without its password hash
func (u UserAccount) Public() PublicUser {
	return PublicUser{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
