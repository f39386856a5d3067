package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/taskbeacon/taskbeacon/pkg/domain/model"
	"github.com/taskbeacon/taskbeacon/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const tasksCollection = "tasks"

type taskRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newTaskRepository(client *firestore.Client) *taskRepository {
	return &taskRepository{client: client}
}

// taskDoc is the Firestore persistence model. Field names follow the schema
// written by the client application.
type taskDoc struct {
	Title         string     `firestore:"title"`
	Status        string     `firestore:"status"`
	Priority      string     `firestore:"priority"`
	CreatedBy     string     `firestore:"createdBy"`
	AssignedTo    []string   `firestore:"assignedTo"`
	AdminComments string     `firestore:"adminComments"`
	DueDate       *time.Time `firestore:"dueDate"`
	CreatedAt     time.Time  `firestore:"createdAt"`
	UpdatedAt     time.Time  `firestore:"updatedAt"`
}

func (r *taskRepository) collection() *firestore.CollectionRef {
	if r.collectionPrefix != "" {
		return r.client.Collection(r.collectionPrefix + "_" + tasksCollection)
	}
	return r.client.Collection(tasksCollection)
}

func taskFromDoc(id string, doc *taskDoc) *model.Task {
	return &model.Task{
		ID:            id,
		Title:         doc.Title,
		Status:        types.TaskStatus(doc.Status),
		Priority:      types.TaskPriority(doc.Priority),
		CreatedBy:     doc.CreatedBy,
		AssignedTo:    doc.AssignedTo,
		AdminComments: doc.AdminComments,
		DueDate:       doc.DueDate,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}

func taskToDoc(task *model.Task) *taskDoc {
	return &taskDoc{
		Title:         task.Title,
		Status:        task.Status.String(),
		Priority:      task.Priority.String(),
		CreatedBy:     task.CreatedBy,
		AssignedTo:    task.AssignedTo,
		AdminComments: task.AdminComments,
		DueDate:       task.DueDate,
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
	}
}

// DecodeTask converts a Firestore document snapshot into a Task. Used by
// the change watcher, which receives raw snapshots.
func DecodeTask(doc *firestore.DocumentSnapshot) (*model.Task, error) {
	var td taskDoc
	if err := doc.DataTo(&td); err != nil {
		return nil, goerr.Wrap(err, "failed to decode task", goerr.V("doc_id", doc.Ref.ID))
	}
	return taskFromDoc(doc.Ref.ID, &td), nil
}

func (r *taskRepository) Get(ctx context.Context, id string) (*model.Task, error) {
	doc, err := r.collection().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get task", goerr.V("id", id))
	}

	var td taskDoc
	if err := doc.DataTo(&td); err != nil {
		return nil, goerr.Wrap(err, "failed to decode task", goerr.V("id", id))
	}

	return taskFromDoc(id, &td), nil
}

func (r *taskRepository) Put(ctx context.Context, task *model.Task) error {
	id := task.ID
	if id == "" {
		id = uuid.NewString()
	}

	_, err := r.collection().Doc(id).Set(ctx, taskToDoc(task))
	if err != nil {
		return goerr.Wrap(err, "failed to put task", goerr.V("id", id))
	}

	return nil
}

func (r *taskRepository) ListOverdue(ctx context.Context, now time.Time) ([]*model.Task, error) {
	statuses := make([]string, 0, len(types.ActiveTaskStatuses()))
	for _, s := range types.ActiveTaskStatuses() {
		statuses = append(statuses, s.String())
	}

	iter := r.collection().
		Where("dueDate", "<", now).
		Where("status", "in", statuses).
		Documents(ctx)
	defer iter.Stop()

	var tasks []*model.Task
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate overdue tasks")
		}

		var td taskDoc
		if err := doc.DataTo(&td); err != nil {
			return nil, goerr.Wrap(err, "failed to decode task", goerr.V("doc_id", doc.Ref.ID))
		}

		tasks = append(tasks, taskFromDoc(doc.Ref.ID, &td))
	}

	return tasks, nil
}
