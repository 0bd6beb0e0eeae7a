package app

import (
	"github.com/shopspring/decimal"

	"github.com/campus/leaveflow/workflow"
)

// =============================================================================
// ADMIN AGGREGATES
// =============================================================================

// Summary is the admin dashboard view: counts by outcome plus requested-day
// totals per leave type. Admin has no decision capability; this is the whole
// of the admin surface.
type Summary struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	InReview int `json:"inReview"` // ApprovedByHOD, awaiting the Principal
	Approved int `json:"approved"` // ApprovedByPrincipal
	Rejected int `json:"rejected"` // rejected at either stage

	// ApprovalRate is final approvals as a percentage of terminal outcomes,
	// rounded to one decimal place. Zero when nothing has reached a terminal
	// state yet.
	ApprovalRate decimal.Decimal `json:"approvalRate"`

	// DaysByType sums the inclusive day span of every request per leave type.
	DaysByType map[workflow.LeaveType]decimal.Decimal `json:"daysByType"`
}

// Summary computes aggregate counts over the full leave collection.
func (a *App) Summary() Summary {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := Summary{
		Total:        len(a.leaves),
		ApprovalRate: decimal.Zero,
		DaysByType:   make(map[workflow.LeaveType]decimal.Decimal),
	}

	terminal := 0
	for i := range a.leaves {
		l := &a.leaves[i]
		switch {
		case l.Status == workflow.StatusPending:
			s.Pending++
		case l.Status == workflow.StatusApprovedByHOD:
			s.InReview++
		case l.Status == workflow.StatusApprovedByPrincipal:
			s.Approved++
		case l.Status.Rejected():
			s.Rejected++
		}
		if l.Status.Terminal() {
			terminal++
		}

		days := decimal.NewFromInt(int64(l.Days()))
		s.DaysByType[l.LeaveType] = s.DaysByType[l.LeaveType].Add(days)
	}

	if terminal > 0 {
		s.ApprovalRate = decimal.NewFromInt(int64(s.Approved)).
			Div(decimal.NewFromInt(int64(terminal))).
			Mul(decimal.NewFromInt(100)).
			Round(1)
	}
	return s
}
