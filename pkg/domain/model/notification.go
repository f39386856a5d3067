package model

import (
	"time"

	"github.com/taskbeacon/taskbeacon/pkg/domain/types"
)

// NotificationRecord is a stored notification entry written by the client
// application. This service only deletes stale records during cleanup.
type NotificationRecord struct {
	ID        string
	Title     string
	Body      string
	Type      types.NotificationType
	CreatedAt time.Time
}

// Message is the ephemeral content of one push notification. It is built per
// event and never persisted.
type Message struct {
	Title string
	Body  string
	Data  map[string]string
}

// Notice is a dispatch intent produced by a reaction rule: who to notify
// and what to send. A nil Notice means no notification should be sent.
type Notice struct {
	Recipients []string
	Message    *Message
}

// SendResult is the per-token outcome of a multicast send
type SendResult struct {
	Success bool
	Error   string
}

// MulticastResult is the per-token breakdown returned by the push transport
type MulticastResult struct {
	SuccessCount int
	FailureCount int
	Responses    []SendResult
}
