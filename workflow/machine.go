/*
machine.go - The approval state machine

PURPOSE:
  Pure transition logic for leave requests. Maps (current status, actor
  role, action) to the new status plus the notification text owed to the
  requester. No store access, no clock reads; the decision time is passed
  in so callers and tests control it.

TRANSITION TABLE:
  actor      requires        approve →             reject →
  hod        Pending         ApprovedByHOD         RejectedByHOD
  principal  ApprovedByHOD   ApprovedByPrincipal   RejectedByPrincipal

  Everything else is an illegal transition. Terminal states
  (ApprovedByPrincipal, RejectedByHOD, RejectedByPrincipal) admit nothing.

COMMENTS:
  Reject always requires non-empty comments; approve comments are
  optional. The HOD decision sets the comment trail; the Principal
  decision appends to it with a newline, never overwriting.
*/
package workflow

import (
	"fmt"
	"strings"
	"time"
)

// Action is an approval-chain decision.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// Valid reports whether a is a known action.
func (a Action) Valid() bool { return a == ActionApprove || a == ActionReject }

// Decision is the outcome of a legal transition. Apply copies it onto the
// leave record; Message is the notification text owed to the requester.
type Decision struct {
	NewStatus Status
	Comments  string // full replacement value for ApproverComments
	Message   string
	DecidedAt time.Time
	Stage     Role // RoleHOD or RolePrincipal
}

// Notification texts, following the original system's wording verbatim where
// the reason is echoed back.
const (
	msgSubmitted     = "Your leave application for %s has been submitted successfully."
	msgHODApproved   = "Your leave application has been approved by HOD and forwarded to Principal."
	msgHODRejected   = "Your leave application has been rejected by HOD. Reason: %s"
	msgFinalApproved = "Your leave application has been approved by the Principal. You may proceed with your leave."
	msgFinalRejected = "Your leave application has been rejected by the Principal. Reason: %s"
)

// SubmissionMessage is the confirmation owed to a requester on create.
func SubmissionMessage(t LeaveType) string {
	return fmt.Sprintf(msgSubmitted, t)
}

// Decide evaluates an approval decision against the current state of leave.
// It returns the resulting Decision without mutating anything. Illegal
// combinations return a *TransitionError; a reject without comments returns
// ErrMissingReason before the transition is evaluated.
func Decide(leave *LeaveRequest, actor Role, action Action, comments string, now time.Time) (Decision, error) {
	if !action.Valid() {
		return Decision{}, fmt.Errorf("unknown action %q", action)
	}
	if action == ActionReject && strings.TrimSpace(comments) == "" {
		return Decision{}, ErrMissingReason
	}

	illegal := func() (Decision, error) {
		return Decision{}, &TransitionError{
			LeaveID: leave.ID,
			Status:  leave.Status,
			Actor:   actor,
			Action:  action,
		}
	}

	switch actor {
	case RoleHOD:
		if leave.Status != StatusPending {
			return illegal()
		}
		d := Decision{
			Comments:  comments,
			DecidedAt: now,
			Stage:     RoleHOD,
		}
		if action == ActionApprove {
			d.NewStatus = StatusApprovedByHOD
			d.Message = msgHODApproved
		} else {
			d.NewStatus = StatusRejectedByHOD
			d.Message = fmt.Sprintf(msgHODRejected, comments)
		}
		return d, nil

	case RolePrincipal:
		if leave.Status != StatusApprovedByHOD {
			return illegal()
		}
		d := Decision{
			Comments:  appendComments(leave.ApproverComments, comments),
			DecidedAt: now,
			Stage:     RolePrincipal,
		}
		if action == ActionApprove {
			d.NewStatus = StatusApprovedByPrincipal
			d.Message = msgFinalApproved
		} else {
			d.NewStatus = StatusRejectedByPrincipal
			d.Message = fmt.Sprintf(msgFinalRejected, comments)
		}
		return d, nil

	default:
		// staff and admin never decide
		return illegal()
	}
}

// Apply copies a Decision onto the leave record. Decision timestamps are
// stamped exactly once per stage and never reset.
func (d Decision) Apply(leave *LeaveRequest) {
	leave.Status = d.NewStatus
	leave.ApproverComments = d.Comments
	at := d.DecidedAt
	if d.Stage == RolePrincipal {
		leave.PrincipalDecisionAt = &at
	} else {
		leave.HODDecisionAt = &at
	}
}

// appendComments extends an existing comment trail with a newline separator.
// Prior comments are never overwritten, only extended.
func appendComments(existing, next string) string {
	if existing == "" {
		return next
	}
	return existing + "\n" + next
}
