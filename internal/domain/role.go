package domain

// Role is the access level carried in the JWT role claim.
type Role string

const (
	RoleViewer Role = "viewer"
	RoleStaff  Role = "staff"
	RoleAdmin  Role = "admin"
)

// roleRank orders roles by privilege.
var roleRank = map[Role]int{
	RoleViewer: 1,
	RoleStaff:  2,
	RoleAdmin:  3,
}

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r carries at least the privilege of other.
func (r Role) AtLeast(other Role) bool {
	return roleRank[r] >= roleRank[other]
}
