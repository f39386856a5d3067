package interfaces

import (
	"context"

	"github.com/taskbeacon/taskbeacon/pkg/domain/model"
)

// UserRepository defines the interface for User data access
type UserRepository interface {
	// GetByEmail retrieves a user by exact email match.
	// Returns ErrNotFound when no user has the given email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// ListByClientID retrieves all users belonging to a client.
	// Returns an empty slice when the client has no users.
	ListByClientID(ctx context.Context, clientID string) ([]*model.User, error)

	// Put creates or replaces a user record. Users are normally written by
	// the client application; this is used for seeding and tests.
	Put(ctx context.Context, user *model.User) error
}

// ClientRepository defines the interface for Client data access
type ClientRepository interface {
	// Get retrieves a client by ID. Returns ErrNotFound when absent.
	Get(ctx context.Context, id string) (*model.Client, error)

	// Put creates or replaces a client record
	Put(ctx context.Context, client *model.Client) error
}
