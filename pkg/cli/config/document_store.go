package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/interfaces"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/repository/firestore"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/repository/memory"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/utils/logging"
)

// DocumentStore holds CLI flags for the remote document store
type DocumentStore struct {
	backend          string
	projectID        string
	databaseID       string
	collectionPrefix string
}

// Flags returns CLI flags for document store configuration
func (r *DocumentStore) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "document-store",
			Usage:       "Document store backend type (firestore or memory)",
			Category:    "Document store",
			Value:       "firestore",
			Sources:     cli.EnvVars("CIVICSYNC_DOCUMENT_STORE"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore Project ID (required when using firestore backend)",
			Category:    "Document store",
			Sources:     cli.EnvVars("CIVICSYNC_FIRESTORE_PROJECT_ID"),
			Destination: &r.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore Database ID",
			Category:    "Document store",
			Sources:     cli.EnvVars("CIVICSYNC_FIRESTORE_DATABASE_ID"),
			Destination: &r.databaseID,
		},
		&cli.StringFlag{
			Name:        "firestore-collection-prefix",
			Usage:       "Prefix added to every Firestore collection name",
			Category:    "Document store",
			Sources:     cli.EnvVars("CIVICSYNC_FIRESTORE_COLLECTION_PREFIX"),
			Destination: &r.collectionPrefix,
		},
	}
}

// Backend returns the configured backend type
func (r *DocumentStore) Backend() string {
	return r.backend
}

// ProjectID returns the Firestore project ID
func (r *DocumentStore) ProjectID() string {
	return r.projectID
}

// Configure initializes and returns a document store based on the configured backend.
// The caller is responsible for calling Close() on the returned store.
func (r *DocumentStore) Configure(ctx context.Context) (interfaces.DocumentStore, error) {
	switch r.backend {
	case "firestore":
		if r.projectID == "" {
			return nil, goerr.Wrap(ErrMissingOption, "firestore-project-id is required when using firestore backend",
				goerr.V(OptionKey, "firestore-project-id"))
		}

		var opts []firestore.Option
		if r.collectionPrefix != "" {
			opts = append(opts, firestore.WithCollectionPrefix(r.collectionPrefix))
		}
		store, err := firestore.New(ctx, r.projectID, r.databaseID, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize firestore document store")
		}
		logging.From(ctx).Info("Using Firestore document store",
			"project_id", r.projectID,
			"database_id", r.databaseID,
			"collection_prefix", r.collectionPrefix,
		)
		return store, nil

	case "memory":
		logging.From(ctx).Warn("Using in-memory document store (development mode)")
		return memory.NewDocumentStore(), nil

	default:
		return nil, goerr.Wrap(ErrUnsupportedBackend, "invalid document store backend", goerr.V(BackendKey, r.backend))
	}
}
