package types

// TaskPriority represents the priority level of a task
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// AllTaskPriorities returns all valid task priorities
func AllTaskPriorities() []TaskPriority {
	return []TaskPriority{
		TaskPriorityLow,
		TaskPriorityMedium,
		TaskPriorityHigh,
	}
}

// IsValid checks if the task priority is valid
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	default:
		return false
	}
}

// Normalize returns the priority, treating empty or unknown values as medium
func (p TaskPriority) Normalize() TaskPriority {
	if !p.IsValid() {
		return TaskPriorityMedium
	}
	return p
}

// Marker returns the visual severity marker for notification titles
func (p TaskPriority) Marker() string {
	switch p.Normalize() {
	case TaskPriorityHigh:
		return "🔴"
	case TaskPriorityMedium:
		return "🟡"
	default:
		return "🟢"
	}
}

// String returns the string representation of the task priority
func (p TaskPriority) String() string {
	return string(p)
}
