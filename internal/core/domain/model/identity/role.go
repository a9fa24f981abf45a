package identity

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Role is the access level of an identity.
type Role int

const (
	Unknown Role = iota
	Agent
	SuperAgent
	Manager
)

var roleNames = map[Role]string{
	Agent:      "AGENT",
	SuperAgent: "SUPER_AGENT",
	Manager:    "MANAGER",
}

// ParseRole converts the provider's role claim into a Role. Matching ignores case.
func ParseRole(s string) (Role, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for role, name := range roleNames {
		if name == normalized {
			return role, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "UNKNOWN"
}

func (r Role) Validate() error {
	if _, ok := roleNames[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// CanViewAll reports whether the role sees every order instead of only its own.
func (r Role) CanViewAll() bool {
	return r == Manager || r == SuperAgent
}

// CanEditAny reports whether the role may edit or delete orders it did not create.
func (r Role) CanEditAny() bool {
	return r == Manager || r == SuperAgent
}

func (r Role) CanBulkDelete() bool {
	return r == Manager
}

func (r Role) CanManageUsers() bool {
	return r == Manager
}

func (r Role) CanViewDashboard() bool {
	return r == Manager
}

// CanReadUpstream reports whether the role may browse the upstream commerce feed.
func (r Role) CanReadUpstream() bool {
	return r == Manager
}
