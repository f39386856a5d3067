package firestore

import (
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/taskbeacon/taskbeacon/pkg/domain/model"
)

// reportDoc is the Firestore persistence model. Reports are written by the
// client application and only observed here.
type reportDoc struct {
	ClientID  string    `firestore:"clientId"`
	Title     string    `firestore:"title"`
	CreatedAt time.Time `firestore:"createdAt"`
}

// DecodeReport converts a Firestore document snapshot into a Report. Used
// by the change watcher, which receives raw snapshots.
func DecodeReport(doc *firestore.DocumentSnapshot) (*model.Report, error) {
	var rd reportDoc
	if err := doc.DataTo(&rd); err != nil {
		return nil, goerr.Wrap(err, "failed to decode report", goerr.V("doc_id", doc.Ref.ID))
	}
	return &model.Report{
		ID:        doc.Ref.ID,
		ClientID:  rd.ClientID,
		Title:     rd.Title,
		CreatedAt: rd.CreatedAt,
	}, nil
}
