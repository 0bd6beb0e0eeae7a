package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campus/leaveflow/workflow"
)

func identities() (staff, hod, principal, admin workflow.Identity) {
	staff = workflow.Identity{Email: "staff@example.com", Role: workflow.RoleStaff, Department: "Computer Science"}
	hod = workflow.Identity{Email: "hod@example.com", Role: workflow.RoleHOD, Department: "Computer Science"}
	principal = workflow.Identity{Email: "principal@example.com", Role: workflow.RolePrincipal, Department: "Administration"}
	admin = workflow.Identity{Email: "admin@example.com", Role: workflow.RoleAdmin, Department: "Administration"}
	return
}

func TestVisible_RoleScoping(t *testing.T) {
	staff, hod, principal, admin := identities()

	ownPending := workflow.LeaveRequest{ID: "l1", RequesterEmail: staff.Email, Department: "Computer Science", Status: workflow.StatusPending}
	otherDept := workflow.LeaveRequest{ID: "l2", RequesterEmail: "bob@example.com", Department: "Physics", Status: workflow.StatusPending}
	forwarded := workflow.LeaveRequest{ID: "l3", RequesterEmail: "bob@example.com", Department: "Physics", Status: workflow.StatusApprovedByHOD}

	// staff: own records only
	assert.True(t, workflow.Visible(staff, &ownPending, workflow.ScopeHistory))
	assert.False(t, workflow.Visible(staff, &otherDept, workflow.ScopeHistory))

	// hod: department-scoped; queue limited to Pending
	assert.True(t, workflow.Visible(hod, &ownPending, workflow.ScopeQueue))
	assert.False(t, workflow.Visible(hod, &otherDept, workflow.ScopeQueue), "other department")
	deptForwarded := forwarded
	deptForwarded.Department = "Computer Science"
	assert.True(t, workflow.Visible(hod, &deptForwarded, workflow.ScopeHistory))
	assert.False(t, workflow.Visible(hod, &deptForwarded, workflow.ScopeQueue), "already decided")

	// principal: queue is ApprovedByHOD across departments, history is everything
	assert.True(t, workflow.Visible(principal, &forwarded, workflow.ScopeQueue))
	assert.False(t, workflow.Visible(principal, &ownPending, workflow.ScopeQueue))
	assert.True(t, workflow.Visible(principal, &ownPending, workflow.ScopeHistory))

	// admin: sees all history, decides nothing
	assert.True(t, workflow.Visible(admin, &otherDept, workflow.ScopeHistory))
	assert.False(t, workflow.Visible(admin, &otherDept, workflow.ScopeQueue))
}

func TestFilter_PreservesOrder(t *testing.T) {
	staff, _, _, _ := identities()

	leaves := []workflow.LeaveRequest{
		{ID: "a", RequesterEmail: staff.Email, Status: workflow.StatusPending},
		{ID: "b", RequesterEmail: "other@example.com", Status: workflow.StatusPending},
		{ID: "c", RequesterEmail: staff.Email, Status: workflow.StatusRejectedByHOD},
	}

	got := workflow.Filter(staff, leaves, workflow.ScopeHistory)
	assert.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}
