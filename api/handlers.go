/*
handlers.go - HTTP API handlers for the leave approval system

PURPOSE:
  Exposes the application commands via REST. Handles HTTP request/response
  and JSON serialization, delegating every decision to the app package.

ENDPOINTS:
  Auth:
    POST   /api/auth/login        Authenticate, returns session token
    POST   /api/auth/logout       Clear the active session
    GET    /api/auth/me           Current identity

  Leaves:
    POST   /api/leaves            Submit a leave application (staff)
    GET    /api/leaves            Role-scoped history
    GET    /api/leaves/pending    Decision queue (hod, principal)
    POST   /api/leaves/{id}/approve
    POST   /api/leaves/{id}/reject

  Notifications:
    GET    /api/notifications     Own notifications (?limit=N, newest first)

  Admin:
    GET    /api/admin/summary     Aggregate counts (admin only)

ERROR HANDLING:
  Domain errors map to HTTP status by kind:
  - 400: validation failures, reject without a reason
  - 401: bad credentials, missing/expired session
  - 403: wrong role for the route
  - 404: unknown leave id
  - 409: illegal status transition
  - 500: anything else
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/campus/leaveflow/app"
	"github.com/campus/leaveflow/workflow"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	App    *app.App
	Secret string // session token signing key
}

// NewHandler creates a handler around the application state.
func NewHandler(a *app.App, secret string) *Handler {
	return &Handler{App: a, Secret: secret}
}

// =============================================================================
// AUTH HANDLERS
// =============================================================================

// Login authenticates against the credential table and issues a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	id, err := h.App.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	token, err := issueToken(h.Secret, id, timeNow())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to issue session token", err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: token, User: toIdentityDTO(id)})
}

// Logout clears the model-level session. The token itself simply expires.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.App.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the identity carried by the session token.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())
	writeJSON(w, http.StatusOK, toIdentityDTO(id))
}

// =============================================================================
// LEAVE HANDLERS
// =============================================================================

// SubmitLeave creates a new Pending leave application for the caller.
func (h *Handler) SubmitLeave(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	var req SubmitLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	leave, err := h.App.ApplyLeave(r.Context(), id, app.LeaveInput{
		LeaveType: workflow.LeaveType(req.LeaveType),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toLeaveDTO(leave))
}

// ListLeaves returns the caller's role-scoped leave history.
func (h *Handler) ListLeaves(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())
	writeJSON(w, http.StatusOK, toLeaveDTOs(h.App.LeavesFor(id)))
}

// ListPending returns the caller's decision queue.
func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())
	writeJSON(w, http.StatusOK, toLeaveDTOs(h.App.PendingFor(id)))
}

// ApproveLeave runs an approve decision for the caller's stage.
func (h *Handler) ApproveLeave(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, workflow.ActionApprove)
}

// RejectLeave runs a reject decision for the caller's stage.
func (h *Handler) RejectLeave(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, workflow.ActionReject)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, action workflow.Action) {
	id, _ := identityFrom(r.Context())

	var req DecisionRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
	}

	leave, err := h.App.Decide(r.Context(), id, chi.URLParam(r, "id"), action, req.Comments)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toLeaveDTO(leave))
}

// =============================================================================
// NOTIFICATION / ADMIN HANDLERS
// =============================================================================

// ListNotifications returns the caller's notifications. With ?limit=N the
// most recent N are returned newest first; otherwise all, in insertion order.
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer", err)
			return
		}
		writeJSON(w, http.StatusOK, toNotificationDTOs(h.App.RecentNotificationsFor(id.Email, limit)))
		return
	}

	writeJSON(w, http.StatusOK, toNotificationDTOs(h.App.NotificationsFor(id.Email)))
}

// GetSummary returns the admin aggregate view.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.App.Summary())
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps workflow error kinds onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, workflow.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials", nil)
	case errors.Is(err, workflow.ErrMissingReason):
		writeError(w, http.StatusBadRequest, "Rejection requires a reason", err)
	case errors.Is(err, workflow.ErrValidation):
		writeError(w, http.StatusBadRequest, "Invalid leave submission", err)
	case errors.Is(err, workflow.ErrNotFound):
		writeError(w, http.StatusNotFound, "Leave request not found", err)
	case errors.Is(err, workflow.ErrIllegalTransition):
		writeError(w, http.StatusConflict, "Decision not allowed from current status", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}
