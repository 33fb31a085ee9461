package job

import (
	"fmt"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/errs"
)

// Role is the capacity in which an actor requests a transition.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleContractor Role = "contractor"
	RoleSystem     Role = "system"
	RoleAdmin      Role = "admin"
)

// ParseRole converts the wire name of a role.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleCustomer, RoleContractor, RoleSystem, RoleAdmin:
		return r, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
	}
}

// Actor identifies who asks for a change. ID is the customer's user id, the
// contractor id or the admin's user id; it is unset for the system.
type Actor struct {
	Role Role
	ID   kernel.UUID
}

// SystemActor is used by delayed tasks and sweeps.
func SystemActor() Actor {
	return Actor{Role: RoleSystem}
}

// Validate requires a known role and an identifier for every role except the system.
func (a Actor) Validate() error {
	if _, err := ParseRole(string(a.Role)); err != nil {
		return err
	}
	if a.Role == RoleSystem {
		return nil
	}
	return a.ID.Validate()
}

func (a Actor) String() string {
	if a.Role == RoleSystem {
		return string(RoleSystem)
	}
	return fmt.Sprintf("%s %s", a.Role, a.ID)
}
