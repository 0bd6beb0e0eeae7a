// Package workflow implements the leave-approval domain model: identities,
// leave requests, notifications, and the two-stage approval state machine
// (HOD, then Principal). The package is pure — no I/O, no clock reads; time
// and identifiers are supplied by callers.
package workflow

import "time"

// =============================================================================
// ROLES
// =============================================================================

// Role is the closed set of actor roles. Role checks are always done against
// these constants, never by free-form string comparison.
type Role string

const (
	RoleStaff     Role = "staff"
	RoleHOD       Role = "hod"
	RolePrincipal Role = "principal"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStaff, RoleHOD, RolePrincipal, RoleAdmin:
		return true
	}
	return false
}

// CanDecide reports whether the role participates in the approval chain.
func (r Role) CanDecide() bool {
	return r == RoleHOD || r == RolePrincipal
}

// Identity is an authenticated user. Immutable for the duration of a session;
// re-derived from the credential table at login.
type Identity struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        Role   `json:"role"`
	Department  string `json:"department"`
}

// =============================================================================
// LEAVE REQUESTS
// =============================================================================

// LeaveType is the enumerated set of leave categories staff can apply for.
type LeaveType string

const (
	LeaveSick      LeaveType = "Sick Leave"
	LeaveCasual    LeaveType = "Casual Leave"
	LeaveEarned    LeaveType = "Earned Leave"
	LeaveMaternity LeaveType = "Maternity Leave"
	LeavePaternity LeaveType = "Paternity Leave"
	LeaveEmergency LeaveType = "Emergency Leave"
)

// LeaveTypes lists every valid leave type, in display order.
func LeaveTypes() []LeaveType {
	return []LeaveType{
		LeaveSick, LeaveCasual, LeaveEarned,
		LeaveMaternity, LeavePaternity, LeaveEmergency,
	}
}

// Valid reports whether t is a known leave type.
func (t LeaveType) Valid() bool {
	for _, lt := range LeaveTypes() {
		if t == lt {
			return true
		}
	}
	return false
}

// Status is the approval state of a leave request. Transitions are monotonic:
//
//	Pending → ApprovedByHOD → {ApprovedByPrincipal | RejectedByPrincipal}
//	Pending → RejectedByHOD
//
// ApprovedByPrincipal, RejectedByHOD and RejectedByPrincipal are terminal.
type Status string

const (
	StatusPending             Status = "Pending"
	StatusApprovedByHOD       Status = "ApprovedByHOD"
	StatusApprovedByPrincipal Status = "ApprovedByPrincipal"
	StatusRejectedByHOD       Status = "RejectedByHOD"
	StatusRejectedByPrincipal Status = "RejectedByPrincipal"
)

// Terminal reports whether no further transition is allowed out of s.
func (s Status) Terminal() bool {
	switch s {
	case StatusApprovedByPrincipal, StatusRejectedByHOD, StatusRejectedByPrincipal:
		return true
	}
	return false
}

// Rejected reports whether s is either rejection state.
func (s Status) Rejected() bool {
	return s == StatusRejectedByHOD || s == StatusRejectedByPrincipal
}

// DateLayout is the calendar-date format used for leave start/end dates.
const DateLayout = "2006-01-02"

// LeaveRequest is a single application for leave. Created once by a staff
// action and mutated at most twice afterwards (HOD decision, then Principal
// decision); never deleted.
type LeaveRequest struct {
	ID                  string     `json:"id"`
	RequesterEmail      string     `json:"requesterEmail"`
	RequesterName       string     `json:"requesterName"`
	Department          string     `json:"department"`
	LeaveType           LeaveType  `json:"leaveType"`
	StartDate           string     `json:"startDate"` // DateLayout
	EndDate             string     `json:"endDate"`   // DateLayout
	Reason              string     `json:"reason"`
	Status              Status     `json:"status"`
	AppliedAt           time.Time  `json:"appliedAt"`
	ApproverComments    string     `json:"approverComments"` // newline-joined, append-only
	HODDecisionAt       *time.Time `json:"hodDecisionAt"`
	PrincipalDecisionAt *time.Time `json:"principalDecisionAt"`
}

// Days returns the inclusive span of the request in days, or 0 if either
// date fails to parse.
func (l *LeaveRequest) Days() int {
	start, err := time.Parse(DateLayout, l.StartDate)
	if err != nil {
		return 0
	}
	end, err := time.Parse(DateLayout, l.EndDate)
	if err != nil {
		return 0
	}
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// =============================================================================
// NOTIFICATIONS
// =============================================================================

// Notification is a per-user message produced as a side effect of leave
// creation or a status transition. Append-only: the Read flag is stored and
// round-tripped but nothing in this system flips it yet.
type Notification struct {
	ID             string    `json:"id"`
	RecipientEmail string    `json:"recipientEmail"`
	Message        string    `json:"message"`
	RelatedLeaveID string    `json:"relatedLeaveId"`
	CreatedAt      time.Time `json:"createdAt"`
	Read           bool      `json:"read"`
}
