package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/taskbeacon/taskbeacon/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	usersCollection   = "users"
	clientsCollection = "clients"
)

type userRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newUserRepository(client *firestore.Client) *userRepository {
	return &userRepository{client: client}
}

// userDoc is the Firestore persistence model. Field names follow the schema
// written by the client application.
type userDoc struct {
	Email     string   `firestore:"email"`
	FCMTokens []string `firestore:"fcmTokens"`
	ClientID  string   `firestore:"clientId"`
}

func (r *userRepository) collection() *firestore.CollectionRef {
	if r.collectionPrefix != "" {
		return r.client.Collection(r.collectionPrefix + "_" + usersCollection)
	}
	return r.client.Collection(usersCollection)
}

func (r *userRepository) fromDoc(doc *userDoc) *model.User {
	return &model.User{
		Email:     doc.Email,
		FCMTokens: doc.FCMTokens,
		ClientID:  doc.ClientID,
	}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	iter := r.collection().Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("email", email))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query user by email", goerr.V("email", email))
	}

	var userDoc userDoc
	if err := doc.DataTo(&userDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode user", goerr.V("email", email))
	}

	return r.fromDoc(&userDoc), nil
}

func (r *userRepository) ListByClientID(ctx context.Context, clientID string) ([]*model.User, error) {
	iter := r.collection().Where("clientId", "==", clientID).Documents(ctx)
	defer iter.Stop()

	var users []*model.User
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate users", goerr.V("clientId", clientID))
		}

		var userDoc userDoc
		if err := doc.DataTo(&userDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode user", goerr.V("doc_id", doc.Ref.ID))
		}

		users = append(users, r.fromDoc(&userDoc))
	}

	return users, nil
}

func (r *userRepository) Put(ctx context.Context, user *model.User) error {
	if user.Email == "" {
		return goerr.New("user email is required")
	}

	doc := &userDoc{
		Email:     user.Email,
		FCMTokens: user.FCMTokens,
		ClientID:  user.ClientID,
	}

	_, err := r.collection().Doc(user.Email).Set(ctx, doc)
	if err != nil {
		return goerr.Wrap(err, "failed to put user", goerr.V("email", user.Email))
	}

	return nil
}

type clientRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newClientRepository(client *firestore.Client) *clientRepository {
	return &clientRepository{client: client}
}

type clientDoc struct {
	Name string `firestore:"name"`
}

func (r *clientRepository) collection() *firestore.CollectionRef {
	if r.collectionPrefix != "" {
		return r.client.Collection(r.collectionPrefix + "_" + clientsCollection)
	}
	return r.client.Collection(clientsCollection)
}

func (r *clientRepository) Get(ctx context.Context, id string) (*model.Client, error) {
	doc, err := r.collection().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "client not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get client", goerr.V("id", id))
	}

	var c clientDoc
	if err := doc.DataTo(&c); err != nil {
		return nil, goerr.Wrap(err, "failed to decode client", goerr.V("id", id))
	}

	return &model.Client{ID: id, Name: c.Name}, nil
}

func (r *clientRepository) Put(ctx context.Context, client *model.Client) error {
	if client.ID == "" {
		return goerr.New("client ID is required")
	}

	_, err := r.collection().Doc(client.ID).Set(ctx, &clientDoc{Name: client.Name})
	if err != nil {
		return goerr.Wrap(err, "failed to put client", goerr.V("id", client.ID))
	}

	return nil
}
