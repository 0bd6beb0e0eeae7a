/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupling the domain model from
  the wire contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Field validation lives in the app layer (LeaveInput.validate); DTOs are
  pure data carriers.
*/
package api

import (
	"time"

	"github.com/campus/leaveflow/workflow"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  IdentityDTO `json:"user"`
}

type IdentityDTO struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
	Department  string `json:"department"`
}

type SubmitLeaveRequest struct {
	LeaveType string `json:"leaveType"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
}

type DecisionRequest struct {
	Comments string `json:"comments"`
}

type LeaveDTO struct {
	ID                  string `json:"id"`
	RequesterEmail      string `json:"requesterEmail"`
	RequesterName       string `json:"requesterName"`
	Department          string `json:"department"`
	LeaveType           string `json:"leaveType"`
	StartDate           string `json:"startDate"`
	EndDate             string `json:"endDate"`
	Reason              string `json:"reason"`
	Status              string `json:"status"`
	AppliedAt           string `json:"appliedAt"`
	ApproverComments    string `json:"approverComments"`
	HODDecisionAt       string `json:"hodDecisionAt,omitempty"`
	PrincipalDecisionAt string `json:"principalDecisionAt,omitempty"`
	Days                int    `json:"days"`
}

type NotificationDTO struct {
	ID             string `json:"id"`
	Message        string `json:"message"`
	RelatedLeaveID string `json:"relatedLeaveId"`
	CreatedAt      string `json:"createdAt"`
	Read           bool   `json:"read"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toIdentityDTO(id workflow.Identity) IdentityDTO {
	return IdentityDTO{
		Email:       id.Email,
		DisplayName: id.DisplayName,
		Role:        string(id.Role),
		Department:  id.Department,
	}
}

func toLeaveDTO(l workflow.LeaveRequest) LeaveDTO {
	dto := LeaveDTO{
		ID:               l.ID,
		RequesterEmail:   l.RequesterEmail,
		RequesterName:    l.RequesterName,
		Department:       l.Department,
		LeaveType:        string(l.LeaveType),
		StartDate:        l.StartDate,
		EndDate:          l.EndDate,
		Reason:           l.Reason,
		Status:           string(l.Status),
		AppliedAt:        l.AppliedAt.Format(time.RFC3339),
		ApproverComments: l.ApproverComments,
		Days:             l.Days(),
	}
	if l.HODDecisionAt != nil {
		dto.HODDecisionAt = l.HODDecisionAt.Format(time.RFC3339)
	}
	if l.PrincipalDecisionAt != nil {
		dto.PrincipalDecisionAt = l.PrincipalDecisionAt.Format(time.RFC3339)
	}
	return dto
}

func toLeaveDTOs(leaves []workflow.LeaveRequest) []LeaveDTO {
	dtos := make([]LeaveDTO, len(leaves))
	for i, l := range leaves {
		dtos[i] = toLeaveDTO(l)
	}
	return dtos
}

func toNotificationDTOs(ns []workflow.Notification) []NotificationDTO {
	dtos := make([]NotificationDTO, len(ns))
	for i, n := range ns {
		dtos[i] = NotificationDTO{
			ID:             n.ID,
			Message:        n.Message,
			RelatedLeaveID: n.RelatedLeaveID,
			CreatedAt:      n.CreatedAt.Format(time.RFC3339),
			Read:           n.Read,
		}
	}
	return dtos
}
