package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus/leaveflow/app"
	"github.com/campus/leaveflow/ids"
	"github.com/campus/leaveflow/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

const testSecret = "test-secret"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	a := app.New(app.Config{
		Store: store.NewMemory(),
		IDs:   ids.NewSequence(),
	})
	srv := httptest.NewServer(NewRouter(NewHandler(a, testSecret)))
	t.Cleanup(srv.Close)
	return srv
}

// call performs a JSON request and decodes the response body into out (when
// out is non-nil), returning the status code.
func call(t *testing.T, srv *httptest.Server, method, path, token string, body, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func loginAs(t *testing.T, srv *httptest.Server, email string) string {
	t.Helper()
	var resp LoginResponse
	status := call(t, srv, http.MethodPost, "/api/auth/login", "",
		LoginRequest{Email: email, Password: "123456"}, &resp)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func submitSickLeave(t *testing.T, srv *httptest.Server, token string) LeaveDTO {
	t.Helper()
	var leave LeaveDTO
	status := call(t, srv, http.MethodPost, "/api/leaves", token, SubmitLeaveRequest{
		LeaveType: "Sick Leave",
		StartDate: "2025-06-01",
		EndDate:   "2025-06-03",
		Reason:    "Flu",
	}, &leave)
	require.Equal(t, http.StatusCreated, status)
	return leave
}

// =============================================================================
// AUTH
// =============================================================================

func TestLogin_BadCredentials(t *testing.T) {
	srv := newTestServer(t)

	status := call(t, srv, http.MethodPost, "/api/auth/login", "",
		LoginRequest{Email: "staff@example.com", Password: "nope"}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRoutes_RequireSession(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/api/leaves", "/api/notifications", "/api/auth/me"} {
		status := call(t, srv, http.MethodGet, path, "", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
	}

	status := call(t, srv, http.MethodGet, "/api/leaves", "not-a-token", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestMe_ReturnsTokenIdentity(t *testing.T) {
	srv := newTestServer(t)
	token := loginAs(t, srv, "hod@example.com")

	var me IdentityDTO
	status := call(t, srv, http.MethodGet, "/api/auth/me", token, nil, &me)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "hod@example.com", me.Email)
	assert.Equal(t, "hod", me.Role)
	assert.Equal(t, "Computer Science", me.Department)
}

// =============================================================================
// LEAVE FLOW
// =============================================================================

func TestFlow_SubmitApproveReject(t *testing.T) {
	// GIVEN: The demo users
	// WHEN: Staff submits, HOD approves, Principal rejects with a reason
	// THEN: Each step reflects in status, queues, and notifications

	srv := newTestServer(t)
	staffToken := loginAs(t, srv, "staff@example.com")
	leave := submitSickLeave(t, srv, staffToken)
	assert.Equal(t, "Pending", leave.Status)
	assert.Equal(t, 3, leave.Days)

	// HOD queue holds the new leave
	hodToken := loginAs(t, srv, "hod@example.com")
	var queue []LeaveDTO
	status := call(t, srv, http.MethodGet, "/api/leaves/pending", hodToken, nil, &queue)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, queue, 1)

	var decided LeaveDTO
	status = call(t, srv, http.MethodPost, "/api/leaves/"+leave.ID+"/approve", hodToken, nil, &decided)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ApprovedByHOD", decided.Status)
	assert.NotEmpty(t, decided.HODDecisionAt)

	// Principal rejects with a reason
	principalToken := loginAs(t, srv, "principal@example.com")
	status = call(t, srv, http.MethodPost, "/api/leaves/"+leave.ID+"/reject", principalToken,
		DecisionRequest{Comments: "Insufficient cover"}, &decided)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "RejectedByPrincipal", decided.Status)
	assert.Contains(t, decided.ApproverComments, "Insufficient cover")

	// Requester sees three notifications, newest first with ?limit
	var notifs []NotificationDTO
	status = call(t, srv, http.MethodGet, "/api/notifications?limit=2", staffToken, nil, &notifs)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, notifs, 2)
	assert.Contains(t, notifs[0].Message, "rejected by the Principal")
	assert.Contains(t, notifs[1].Message, "forwarded to Principal")
}

func TestReject_WithoutReason(t *testing.T) {
	srv := newTestServer(t)
	staffToken := loginAs(t, srv, "staff@example.com")
	leave := submitSickLeave(t, srv, staffToken)

	hodToken := loginAs(t, srv, "hod@example.com")
	status := call(t, srv, http.MethodPost, "/api/leaves/"+leave.ID+"/reject", hodToken,
		DecisionRequest{Comments: ""}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// Leave is still pending
	var queue []LeaveDTO
	call(t, srv, http.MethodGet, "/api/leaves/pending", hodToken, nil, &queue)
	require.Len(t, queue, 1)
	assert.Equal(t, "Pending", queue[0].Status)
}

func TestDecide_ErrorStatuses(t *testing.T) {
	srv := newTestServer(t)
	staffToken := loginAs(t, srv, "staff@example.com")
	leave := submitSickLeave(t, srv, staffToken)

	hodToken := loginAs(t, srv, "hod@example.com")
	principalToken := loginAs(t, srv, "principal@example.com")

	// 404 for unknown leave id
	status := call(t, srv, http.MethodPost, "/api/leaves/nope/approve", hodToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// 409 for a principal decision before the HOD stage
	status = call(t, srv, http.MethodPost, "/api/leaves/"+leave.ID+"/approve", principalToken, nil, nil)
	assert.Equal(t, http.StatusConflict, status)

	// 409 for a repeated HOD decision
	status = call(t, srv, http.MethodPost, "/api/leaves/"+leave.ID+"/approve", hodToken, nil, nil)
	require.Equal(t, http.StatusOK, status)
	status = call(t, srv, http.MethodPost, "/api/leaves/"+leave.ID+"/approve", hodToken, nil, nil)
	assert.Equal(t, http.StatusConflict, status)
}

func TestSubmit_ValidationError(t *testing.T) {
	srv := newTestServer(t)
	token := loginAs(t, srv, "staff@example.com")

	status := call(t, srv, http.MethodPost, "/api/leaves", token, SubmitLeaveRequest{
		LeaveType: "Sick Leave",
		StartDate: "2025-06-10",
		EndDate:   "2025-06-01",
		Reason:    "Flu",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

// =============================================================================
// ROLE GATING
// =============================================================================

func TestRoleGates(t *testing.T) {
	srv := newTestServer(t)
	staffToken := loginAs(t, srv, "staff@example.com")
	hodToken := loginAs(t, srv, "hod@example.com")
	adminToken := loginAs(t, srv, "admin@example.com")

	// Only staff submit leaves
	status := call(t, srv, http.MethodPost, "/api/leaves", hodToken, SubmitLeaveRequest{}, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// Staff cannot decide
	leave := submitSickLeave(t, srv, staffToken)
	status = call(t, srv, http.MethodPost, "/api/leaves/"+leave.ID+"/approve", staffToken, nil, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// Summary is admin-only
	status = call(t, srv, http.MethodGet, "/api/admin/summary", staffToken, nil, nil)
	assert.Equal(t, http.StatusForbidden, status)

	var summary map[string]any
	status = call(t, srv, http.MethodGet, "/api/admin/summary", adminToken, nil, &summary)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, summary["total"])
	assert.EqualValues(t, 1, summary["pending"])
}
