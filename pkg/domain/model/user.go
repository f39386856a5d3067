package model

// User represents an application user. Users register FCM tokens from their
// devices; this service only reads them.
type User struct {
	Email     string
	FCMTokens []string
	ClientID  string
}

// Client represents a client organization
type Client struct {
	ID   string
	Name string
}
