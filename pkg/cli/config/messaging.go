package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/taskbeacon/taskbeacon/pkg/service/messaging"
	"github.com/taskbeacon/taskbeacon/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Messaging holds CLI flags for the push transport configuration
type Messaging struct {
	backend         string
	projectID       string
	credentialsFile string
}

// Flags returns CLI flags for messaging configuration
func (m *Messaging) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "messaging-backend",
			Usage:       "Push transport backend (fcm or dryrun)",
			Category:    "Messaging",
			Value:       "fcm",
			Sources:     cli.EnvVars("TASKBEACON_MESSAGING_BACKEND"),
			Destination: &m.backend,
		},
		&cli.StringFlag{
			Name:        "fcm-project-id",
			Usage:       "Firebase project ID for Cloud Messaging (defaults to the Firestore project ID)",
			Category:    "Messaging",
			Sources:     cli.EnvVars("TASKBEACON_FCM_PROJECT_ID"),
			Destination: &m.projectID,
		},
		&cli.StringFlag{
			Name:        "fcm-credentials-file",
			Usage:       "Service account credentials file (Application Default Credentials when empty)",
			Category:    "Messaging",
			Sources:     cli.EnvVars("TASKBEACON_FCM_CREDENTIALS_FILE"),
			Destination: &m.credentialsFile,
		},
	}
}

// Configure initializes the push transport. fallbackProjectID is used when
// no dedicated FCM project ID is set.
func (m *Messaging) Configure(ctx context.Context, fallbackProjectID string) (messaging.Service, error) {
	switch m.backend {
	case "fcm":
		projectID := m.projectID
		if projectID == "" {
			projectID = fallbackProjectID
		}
		if projectID == "" {
			return nil, goerr.New("fcm-project-id is required when using fcm backend")
		}
		svc, err := messaging.NewFCM(ctx, projectID, m.credentialsFile)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize FCM transport")
		}
		logging.Default().Info("Using FCM push transport", "project_id", projectID)
		return svc, nil

	case "dryrun":
		logging.Default().Info("Using dry-run push transport (no deliveries)")
		return messaging.NewDryRun(), nil

	default:
		return nil, goerr.New("invalid messaging backend", goerr.V("backend", m.backend))
	}
}
