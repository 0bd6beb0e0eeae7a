package workflow

// =============================================================================
// ROLE-SCOPED VISIBILITY
// =============================================================================

// Scope selects which slice of the leave collection a view reads.
type Scope int

const (
	// ScopeHistory is the full record a role may see.
	ScopeHistory Scope = iota
	// ScopeQueue is the subset awaiting that role's decision.
	ScopeQueue
)

// Visible reports whether viewer may see leave under the given scope.
// The rules form a closed table over the four roles:
//
//	staff      history: own            queue: own pending
//	hod        history: department     queue: department pending
//	principal  history: all            queue: ApprovedByHOD
//	admin      history: all            queue: none (read-only aggregates)
func Visible(viewer Identity, leave *LeaveRequest, scope Scope) bool {
	switch viewer.Role {
	case RoleStaff:
		if leave.RequesterEmail != viewer.Email {
			return false
		}
		return scope == ScopeHistory || leave.Status == StatusPending

	case RoleHOD:
		if leave.Department != viewer.Department {
			return false
		}
		return scope == ScopeHistory || leave.Status == StatusPending

	case RolePrincipal:
		return scope == ScopeHistory || leave.Status == StatusApprovedByHOD

	case RoleAdmin:
		return scope == ScopeHistory

	default:
		return false
	}
}

// Filter returns the leaves visible to viewer under scope, preserving order.
func Filter(viewer Identity, leaves []LeaveRequest, scope Scope) []LeaveRequest {
	out := make([]LeaveRequest, 0, len(leaves))
	for i := range leaves {
		if Visible(viewer, &leaves[i], scope) {
			out = append(out, leaves[i])
		}
	}
	return out
}
