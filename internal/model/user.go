package model

import "fmt"

// Role is the single role a user carries. It is assigned at signup and
// never changes afterwards.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleProjectLead Role = "PL"
	RoleDeveloper   Role = "DEV"
	RoleTester      Role = "TESTER"
)

// ParseRole maps the wire value onto a Role. The vocabulary is shared with
// the frontend and must stay bit-exact.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleProjectLead, RoleDeveloper, RoleTester:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	ID           int64  `json:"id,string"`
}
