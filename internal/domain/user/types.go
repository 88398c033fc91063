package user

type Role string

const (
	RoleSuperAdmin    Role = "super-admin"
	RoleSubSuperAdmin Role = "sub-super-admin"
	RoleAdmin         Role = "admin"
	RoleManager       Role = "manager"
	RoleStaff         Role = "staff"
)

var roleLevels = map[Role]int{
	RoleStaff:         1,
	RoleManager:       2,
	RoleAdmin:         3,
	RoleSubSuperAdmin: 4,
	RoleSuperAdmin:    5,
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	_, ok := roleLevels[r]
	return ok
}

// Level orders roles from staff (1) to super-admin (5). Unknown roles are 0.
func (r Role) Level() int {
	return roleLevels[r]
}

func (r Role) AtLeast(min Role) bool {
	return r.IsValid() && r.Level() >= min.Level()
}

// SpansRestaurants reports roles that are not pinned to a single restaurant.
func (r Role) SpansRestaurants() bool {
	return r == RoleSuperAdmin || r == RoleSubSuperAdmin
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
