package types

// NotificationType tags a push notification so the client app can route taps
// to the right screen
type NotificationType string

const (
	NotificationTaskAssigned   NotificationType = "task_assigned"
	NotificationTaskStarted    NotificationType = "task_started"
	NotificationTaskSubmitted  NotificationType = "task_submitted"
	NotificationTaskApproved   NotificationType = "task_approved"
	NotificationTaskRejected   NotificationType = "task_rejected"
	NotificationTaskIncomplete NotificationType = "task_incomplete"
	NotificationTaskOverdue    NotificationType = "task_overdue"
	NotificationReportCreated  NotificationType = "report_created"
)

// String returns the string representation of the notification type
func (t NotificationType) String() string {
	return string(t)
}
