package types

import "fmt"

// TaskStatus represents the workflow status of a task
type TaskStatus string

const (
	TaskStatusAssigned      TaskStatus = "assigned"
	TaskStatusInProgress    TaskStatus = "inProgress"
	TaskStatusPendingReview TaskStatus = "pendingReview"
	TaskStatusCompleted     TaskStatus = "completed"
	TaskStatusIncomplete    TaskStatus = "incomplete"
)

// AllTaskStatuses returns all valid task statuses
func AllTaskStatuses() []TaskStatus {
	return []TaskStatus{
		TaskStatusAssigned,
		TaskStatusInProgress,
		TaskStatusPendingReview,
		TaskStatusCompleted,
		TaskStatusIncomplete,
	}
}

// ActiveTaskStatuses returns the statuses in which a task can still become
// overdue. Completed and incomplete tasks are terminal.
func ActiveTaskStatuses() []TaskStatus {
	return []TaskStatus{
		TaskStatusAssigned,
		TaskStatusInProgress,
		TaskStatusPendingReview,
	}
}

// IsValid checks if the task status is valid
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusAssigned,
		TaskStatusInProgress,
		TaskStatusPendingReview,
		TaskStatusCompleted,
		TaskStatusIncomplete:
		return true
	default:
		return false
	}
}

// IsActive reports whether the status is non-terminal
func (s TaskStatus) IsActive() bool {
	switch s {
	case TaskStatusAssigned, TaskStatusInProgress, TaskStatusPendingReview:
		return true
	default:
		return false
	}
}

// String returns the string representation of the task status
func (s TaskStatus) String() string {
	return string(s)
}

// ParseTaskStatus parses a string into a TaskStatus
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid task status: %s", s)
	}
	return status, nil
}
