package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/taskbeacon/taskbeacon/pkg/domain/model"
	"google.golang.org/api/iterator"
)

const notificationsCollection = "notifications"

type notificationRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newNotificationRepository(client *firestore.Client) *notificationRepository {
	return &notificationRepository{client: client}
}

type notificationDoc struct {
	Title     string    `firestore:"title"`
	Body      string    `firestore:"body"`
	Type      string    `firestore:"type"`
	CreatedAt time.Time `firestore:"createdAt"`
}

func (r *notificationRepository) collection() *firestore.CollectionRef {
	if r.collectionPrefix != "" {
		return r.client.Collection(r.collectionPrefix + "_" + notificationsCollection)
	}
	return r.client.Collection(notificationsCollection)
}

func (r *notificationRepository) Put(ctx context.Context, record *model.NotificationRecord) error {
	id := record.ID
	if id == "" {
		id = uuid.NewString()
	}

	doc := &notificationDoc{
		Title:     record.Title,
		Body:      record.Body,
		Type:      record.Type.String(),
		CreatedAt: record.CreatedAt,
	}

	_, err := r.collection().Doc(id).Set(ctx, doc)
	if err != nil {
		return goerr.Wrap(err, "failed to put notification record", goerr.V("id", id))
	}

	return nil
}

// DeleteOlderThan removes all records created before cutoff in a single
// BulkWriter pass. BulkWriter handles the 500-operation batch limit.
func (r *notificationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	iter := r.collection().Where("createdAt", "<", cutoff).Documents(ctx)
	defer iter.Stop()

	var refs []*firestore.DocumentRef
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, goerr.Wrap(err, "failed to iterate stale notification records")
		}
		refs = append(refs, doc.Ref)
	}

	if len(refs) == 0 {
		return 0, nil
	}

	bulkWriter := r.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(refs))
	for _, ref := range refs {
		job, err := bulkWriter.Delete(ref)
		if err != nil {
			bulkWriter.End()
			return 0, goerr.Wrap(err, "failed to add Delete operation to bulk writer")
		}
		jobs = append(jobs, job)
	}
	bulkWriter.End()

	// Count only the deletes that actually went through
	deleted := 0
	failed := 0
	var lastErr error
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			failed++
			lastErr = err
			continue
		}
		deleted++
	}

	if failed > 0 {
		return deleted, goerr.Wrap(lastErr, "some notification deletes failed",
			goerr.V("failed", failed),
			goerr.V("deleted", deleted),
		)
	}

	return deleted, nil
}

func (r *notificationRepository) Count(ctx context.Context) (int, error) {
	iter := r.collection().Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, goerr.Wrap(err, "failed to iterate notification records")
		}
		count++
	}

	return count, nil
}
