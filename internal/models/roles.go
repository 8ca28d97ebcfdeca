package models

import (
	"fmt"
	"strings"
)

// Role identifies which category of participant an account represents.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleStartup  Role = "STARTUP"
	RoleInvestor Role = "INVESTOR"
)

// ParseRole accepts a role name in any case.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleStartup, RoleInvestor:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Authority returns the capability token granted to holders of the role.
func (r Role) Authority() string {
	return "ROLE_" + string(r)
}

// Status governs whether an account may sign in.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)
