package domain

// Role is the closed set of role tags carried by a credential.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleLeader  Role = "leader"
	RoleTeacher Role = "teacher"
)

// IsValid reports whether r is one of the known role tags.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleLeader, RoleTeacher:
		return true
	}
	return false
}

// RoleOption is a role choice offered when creating accounts. The server
// identifies roles by numeric id.
type RoleOption struct {
	ID   int
	Name Role
}

// RoleOptions lists the roles in the order the server numbers them.
var RoleOptions = []RoleOption{
	{ID: 1, Name: RoleAdmin},
	{ID: 2, Name: RoleManager},
	{ID: 3, Name: RoleLeader},
	{ID: 4, Name: RoleTeacher},
}

// RoleRequiresDepartment reports whether an account with the given role id
// must belong to a department (leaders and teachers).
func RoleRequiresDepartment(roleID int) bool {
	return roleID == 3 || roleID == 4
}
