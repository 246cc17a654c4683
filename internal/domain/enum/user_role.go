package enum

type UserRole string

const (
	UserRoleOwner   UserRole = "owner"
	UserRoleManager UserRole = "manager"
	UserRoleSeller  UserRole = "seller"
)

func (r UserRole) IsValid() bool {
	return r == UserRoleOwner || r == UserRoleManager || r == UserRoleSeller
}

// CanAuthorizeDiscount reports whether the role may grant POS discounts
// without the manager PIN.
func (r UserRole) CanAuthorizeDiscount() bool {
	return r == UserRoleOwner || r == UserRoleManager
}

func (r *UserRole) UnmarshalJSON(data []byte) error {
	v, err := decodeCode(data, UserRole.IsValid, "role")
	if err != nil {
		return err
	}
	*r = v
	return nil
}
