package ids_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus/leaveflow/ids"
)

func TestULID_LeaveIDsSortByCreation(t *testing.T) {
	g := ids.NewULID()

	generated := make([]string, 100)
	for i := range generated {
		generated[i] = g.LeaveID()
	}

	assert.True(t, sort.StringsAreSorted(generated),
		"ids generated later must sort after earlier ones")

	seen := make(map[string]bool, len(generated))
	for _, id := range generated {
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestULID_NotificationIDsUniqueUnderRapidCalls(t *testing.T) {
	// Two notifications can be appended within the same millisecond; ids must
	// still never collide.
	g := ids.NewULID()

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := g.NotificationID()
		require.False(t, seen[id])
		seen[id] = true
	}
}

func TestSequence_Deterministic(t *testing.T) {
	g := ids.NewSequence()

	assert.Equal(t, "leave-001", g.LeaveID())
	assert.Equal(t, "notif-002", g.NotificationID())
	assert.Equal(t, "leave-003", g.LeaveID())
}
