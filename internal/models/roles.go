package models

// Roles recognised by the access policy. RoleDisabled marks a deactivated
// account; it never passes login.
const (
	RoleAdmin     = "admin"
	RoleSecretary = "secretary"
	RoleMember    = "member"
	RoleCustomer  = "customer"
	RoleDisabled  = "disabled"

	DefaultRole = RoleCustomer
)

var knownRoles = map[string]struct{}{
	RoleAdmin:     {},
	RoleSecretary: {},
	RoleMember:    {},
	RoleCustomer:  {},
	RoleDisabled:  {},
}

// IsValidRole reports whether role belongs to the closed role set.
func IsValidRole(role string) bool {
	_, ok := knownRoles[role]
	return ok
}

// Roles lists the closed role set in a stable order.
func Roles() []string {
	return []string{RoleAdmin, RoleSecretary, RoleMember, RoleCustomer, RoleDisabled}
}
