// Package access implements the capability gate every service operation is
// evaluated against before touching storage. The gate is a pure predicate:
// no I/O, no side effects, exhaustive over the closed role set.
package access

import "github.com/taskdesk/task-system/internal/core/domain"

// Capability is the access level an operation requires.
type Capability string

const (
	Authenticated Capability = "authenticated"
	Admin         Capability = "admin"
	Staff         Capability = "staff"
)

// Check allows or denies a principal for the required capability. A nil
// principal denies with ErrUnauthenticated; a present principal with the
// wrong role denies with ErrForbidden. Callers map the two to distinct
// responses (redirect vs. explicit denial).
func Check(p *domain.Principal, required Capability) error {
	if p == nil {
		return domain.ErrUnauthenticated
	}
	switch required {
	case Authenticated:
		return nil
	case Admin:
		if p.Role == domain.RoleAdmin {
			return nil
		}
	case Staff:
		if p.Role == domain.RoleStaff {
			return nil
		}
	}
	// Unknown capabilities and unrecognized roles land here: deny, never pass.
	return domain.ErrForbidden
}
