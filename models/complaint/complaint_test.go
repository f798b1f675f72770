package complaint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusIsValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusInProgress, StatusResolved, StatusClosed} {
		assert.True(t, s.IsValid(), "expected %q to be valid", s)
	}

	assert.False(t, Status("Submitted").IsValid())
	assert.False(t, Status("").IsValid())
	assert.False(t, Status("pending").IsValid())
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusInProgress, true},
		{StatusPending, StatusResolved, true},
		{StatusPending, StatusClosed, true},
		{StatusInProgress, StatusResolved, true},
		{StatusInProgress, StatusClosed, true},
		{StatusResolved, StatusInProgress, true},
		{StatusResolved, StatusClosed, true},

		{StatusPending, StatusPending, false},
		{StatusInProgress, StatusPending, false},
		{StatusResolved, StatusPending, false},
		{StatusClosed, StatusPending, false},
		{StatusClosed, StatusInProgress, false},
		{StatusClosed, StatusResolved, false},
		{StatusClosed, StatusClosed, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestStaffQueueStatuses(t *testing.T) {
	assert.ElementsMatch(t, []Status{StatusInProgress, StatusResolved}, StaffQueueStatuses)
}
