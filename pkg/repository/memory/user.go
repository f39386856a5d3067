package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/taskbeacon/taskbeacon/pkg/domain/model"
)

type userRepository struct {
	mu    sync.RWMutex
	users map[string]*model.User // key = email
}

func newUserRepository() *userRepository {
	return &userRepository{
		users: make(map[string]*model.User),
	}
}

func copyUser(u *model.User) *model.User {
	copied := &model.User{
		Email:    u.Email,
		ClientID: u.ClientID,
	}
	if u.FCMTokens != nil {
		copied.FCMTokens = make([]string, len(u.FCMTokens))
		copy(copied.FCMTokens, u.FCMTokens)
	}
	return copied
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[email]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("email", email))
	}

	return copyUser(user), nil
}

func (r *userRepository) ListByClientID(ctx context.Context, clientID string) ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var users []*model.User
	for _, u := range r.users {
		if u.ClientID == clientID {
			users = append(users, copyUser(u))
		}
	}

	return users, nil
}

func (r *userRepository) Put(ctx context.Context, user *model.User) error {
	if user.Email == "" {
		return goerr.New("user email is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.Email] = copyUser(user)
	return nil
}

type clientRepository struct {
	mu      sync.RWMutex
	clients map[string]*model.Client
}

func newClientRepository() *clientRepository {
	return &clientRepository{
		clients: make(map[string]*model.Client),
	}
}

func (r *clientRepository) Get(ctx context.Context, id string) (*model.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, exists := r.clients[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "client not found", goerr.V("id", id))
	}

	copied := *client
	return &copied, nil
}

func (r *clientRepository) Put(ctx context.Context, client *model.Client) error {
	if client.ID == "" {
		return goerr.New("client ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *client
	r.clients[client.ID] = &copied
	return nil
}
