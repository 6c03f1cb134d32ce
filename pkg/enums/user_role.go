package enums

import "fmt"

// UserRole represents a platform account role.
type UserRole string

const (
	RoleCustomer       UserRole = "customer"
	RoleHairDresser    UserRole = "hair_dresser"
	RoleNailTechnician UserRole = "nail_technician"
	RoleVendor         UserRole = "hair_vendor"
	RoleAdmin          UserRole = "admin"
)

var validUserRoles = []UserRole{
	RoleCustomer,
	RoleHairDresser,
	RoleNailTechnician,
	RoleVendor,
	RoleAdmin,
}

// String implements fmt.Stringer.
func (r UserRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known UserRole.
func (r UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// IsProfessional reports whether the role goes through vendor verification.
func (r UserRole) IsProfessional() bool {
	switch r {
	case RoleVendor, RoleHairDresser, RoleNailTechnician:
		return true
	default:
		return false
	}
}

// ParseUserRole converts raw input into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
