package model

import "time"

// Report represents an audit report created for a client. Immutable from
// this service's perspective.
type Report struct {
	ID        string
	ClientID  string
	Title     string
	CreatedAt time.Time
}
