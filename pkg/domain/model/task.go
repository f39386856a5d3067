package model

import (
	"time"

	"github.com/taskbeacon/taskbeacon/pkg/domain/types"
)

// Task represents a tracked task. Tasks are created and mutated by the
// client application; this service only observes them.
type Task struct {
	ID            string
	Title         string
	Status        types.TaskStatus
	Priority      types.TaskPriority
	CreatedBy     string   // creator email
	AssignedTo    []string // assignee emails
	AdminComments string
	DueDate       *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Assignees returns the assignee emails. A nil list means no assignees.
func (t *Task) Assignees() []string {
	if t == nil || t.AssignedTo == nil {
		return nil
	}
	return t.AssignedTo
}

// DisplayTitle returns the task title, substituting a placeholder when the
// document carries none.
func (t *Task) DisplayTitle() string {
	if t == nil || t.Title == "" {
		return "Untitled"
	}
	return t.Title
}

// DaysOverdue returns how many days the task is past due at the given time,
// rounded up. Returns 0 when the task has no due date or is not yet due.
func (t *Task) DaysOverdue(now time.Time) int {
	if t == nil || t.DueDate == nil || !t.DueDate.Before(now) {
		return 0
	}
	elapsed := now.Sub(*t.DueDate)
	days := int(elapsed / (24 * time.Hour))
	if elapsed%(24*time.Hour) > 0 {
		days++
	}
	return days
}
