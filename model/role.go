package model

import "fmt"

// Role is the closed set of account roles. Every branch on a role must
// handle all three values; unknown strings are rejected at the boundary.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleProfessor  Role = "professor"
	RoleAluno      Role = "aluno"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperadmin, RoleProfessor, RoleAluno:
		return true
	}
	return false
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}
