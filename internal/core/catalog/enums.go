package catalog

import "fmt"

// Role is a user's permission level.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
	RoleViewer   Role = "viewer"
)

// Roles lists every role from most to least privileged.
var Roles = []Role{RoleAdmin, RoleOperator, RoleViewer}

func (r Role) String() string { return string(r) }

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleOperator, RoleViewer:
		return true
	default:
		return false
	}
}

// ParseRole parses a role name.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid role %q", s)
	}
	return r, nil
}

// EPGStatus is the outcome of the last guide refresh.
type EPGStatus string

const (
	EPGStatusIdle     EPGStatus = "idle"
	EPGStatusFetching EPGStatus = "fetching"
	EPGStatusSuccess  EPGStatus = "success"
	EPGStatusError    EPGStatus = "error"
)

func (s EPGStatus) String() string { return string(s) }

// IsValid reports whether s is a known status.
func (s EPGStatus) IsValid() bool {
	switch s {
	case EPGStatusIdle, EPGStatusFetching, EPGStatusSuccess, EPGStatusError:
		return true
	default:
		return false
	}
}

// ParseEPGStatus parses a status name.
func ParseEPGStatus(s string) (EPGStatus, error) {
	st := EPGStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid epg status %q", s)
	}
	return st, nil
}
