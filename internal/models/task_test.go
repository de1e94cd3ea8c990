package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTaskPriority_Rank(t *testing.T) {
	require.Equal(t, 2, PriorityUrgent.Rank())
	require.Equal(t, 1, PriorityHigh.Rank())
	require.Equal(t, 0, PriorityLow.Rank())

	// Unknown values rank lowest
	require.Equal(t, 0, TaskPriority("critical").Rank())

	require.Greater(t, PriorityUrgent.Rank(), PriorityHigh.Rank())
	require.Greater(t, PriorityHigh.Rank(), PriorityLow.Rank())
}

func TestTaskPriority_Valid(t *testing.T) {
	require.True(t, PriorityUrgent.Valid())
	require.True(t, PriorityHigh.Valid())
	require.True(t, PriorityLow.Valid())
	require.False(t, TaskPriority("").Valid())
	require.False(t, TaskPriority("critical").Valid())
}

func TestTask_PriorityBadgeClass(t *testing.T) {
	cases := []struct {
		priority TaskPriority
		want     string
	}{
		{PriorityUrgent, "priority-urgent"},
		{PriorityHigh, "priority-high"},
		{PriorityLow, "priority-low"},
		{TaskPriority("bogus"), "priority-low"},
		{TaskPriority(""), "priority-low"},
	}

	for _, tc := range cases {
		task := Task{Priority: tc.priority}
		require.Equal(t, tc.want, task.PriorityBadgeClass())
	}
}

func TestWorker_String(t *testing.T) {
	worker := Worker{
		FirstName: "John",
		LastName:  "Doe",
		Position:  Position{Name: "Engineer"},
	}

	s := worker.String()
	require.Contains(t, s, "John")
	require.Contains(t, s, "Doe")
	require.Contains(t, s, "Engineer")
	require.Equal(t, "John - Doe > Position: Engineer", s)
}
