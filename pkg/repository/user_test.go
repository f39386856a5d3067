package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/taskbeacon/taskbeacon/pkg/domain/interfaces"
	"github.com/taskbeacon/taskbeacon/pkg/domain/model"
	"github.com/taskbeacon/taskbeacon/pkg/repository/firestore"
	"github.com/taskbeacon/taskbeacon/pkg/repository/memory"
)

func newFirestoreRepo(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}

	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	repo, err := firestore.New(context.Background(), projectID, os.Getenv("FIRESTORE_DATABASE_ID"),
		firestore.WithCollectionPrefix(prefix))
	gt.NoError(t, err).Required()
	return repo
}

func runUserRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("GetByEmail retrieves stored user", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		user := &model.User{
			Email:     "a@x.com",
			FCMTokens: []string{"tok-1", "tok-2"},
			ClientID:  "C1",
		}
		gt.NoError(t, repo.User().Put(ctx, user)).Required()

		got, err := repo.User().GetByEmail(ctx, "a@x.com")
		gt.NoError(t, err).Required()
		gt.Value(t, got.Email).Equal("a@x.com")
		gt.Array(t, got.FCMTokens).Length(2)
		gt.Value(t, got.ClientID).Equal("C1")
	})

	t.Run("GetByEmail returns error for missing user", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.User().GetByEmail(ctx, "nobody@x.com")
		gt.Error(t, err)
	})

	t.Run("ListByClientID returns only matching users", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.User().Put(ctx, &model.User{Email: "a@x.com", ClientID: "C1"})).Required()
		gt.NoError(t, repo.User().Put(ctx, &model.User{Email: "b@x.com", ClientID: "C1"})).Required()
		gt.NoError(t, repo.User().Put(ctx, &model.User{Email: "c@y.com", ClientID: "C2"})).Required()

		users, err := repo.User().ListByClientID(ctx, "C1")
		gt.NoError(t, err).Required()
		gt.Array(t, users).Length(2)
	})

	t.Run("ListByClientID returns empty for unknown client", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		users, err := repo.User().ListByClientID(ctx, "no-such-client")
		gt.NoError(t, err).Required()
		gt.Array(t, users).Length(0)
	})

	t.Run("Put rejects empty email", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.Error(t, repo.User().Put(ctx, &model.User{}))
	})

	t.Run("Client Get retrieves stored client", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Client().Put(ctx, &model.Client{ID: "C1", Name: "Acme Corp"})).Required()

		client, err := repo.Client().Get(ctx, "C1")
		gt.NoError(t, err).Required()
		gt.Value(t, client.Name).Equal("Acme Corp")
	})

	t.Run("Client Get returns error for missing client", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Client().Get(ctx, "missing")
		gt.Error(t, err)
	})
}

func TestUserRepository_Memory(t *testing.T) {
	runUserRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestUserRepository_Firestore(t *testing.T) {
	runUserRepositoryTest(t, newFirestoreRepo)
}
