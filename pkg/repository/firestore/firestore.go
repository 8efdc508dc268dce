package firestore

import (
	"context"
	"strconv"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/status"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/document"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/interfaces"
)

const deleteBatchSize = 500

// DocumentStore is the Firestore implementation of interfaces.DocumentStore.
// Document ids are the decimal primary keys.
type DocumentStore struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.DocumentStore = &DocumentStore{}

type Option func(*DocumentStore)

// WithCollectionPrefix prefixes every collection name, used to isolate tests
func WithCollectionPrefix(prefix string) Option {
	return func(s *DocumentStore) {
		s.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*DocumentStore, error) {
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID))
	}

	s := &DocumentStore{client: client}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *DocumentStore) collection(name string) *firestore.CollectionRef {
	if s.collectionPrefix != "" {
		return s.client.Collection(s.collectionPrefix + "_" + name)
	}
	return s.client.Collection(name)
}

func (s *DocumentStore) List(ctx context.Context, collection string) ([]document.Document, error) {
	iter := s.collection(collection).Documents(ctx)
	defer iter.Stop()

	docs := make([]document.Document, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate documents",
				goerr.V("collection", collection),
				goerr.V("code", status.Code(err).String()))
		}

		doc := document.Document(snap.Data())
		if !doc.Has(document.FieldID) {
			// clients that write with set(docId, ...) may omit the key field
			doc[document.FieldID] = snap.Ref.ID
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

func (s *DocumentStore) Set(ctx context.Context, collection string, id int64, doc document.Document) error {
	docID := strconv.FormatInt(id, 10)
	if _, err := s.collection(collection).Doc(docID).Set(ctx, map[string]any(doc)); err != nil {
		return goerr.Wrap(err, "failed to set document",
			goerr.V("collection", collection),
			goerr.V("id", id),
			goerr.V("code", status.Code(err).String()))
	}
	return nil
}

func (s *DocumentStore) DeleteAll(ctx context.Context, collection string) (int, error) {
	totalDeleted := 0

	for {
		iter := s.collection(collection).Limit(deleteBatchSize).Documents(ctx)
		bulkWriter := s.client.BulkWriter(ctx)
		var jobs []*firestore.BulkWriterJob

		for {
			snap, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				iter.Stop()
				bulkWriter.End()
				return totalDeleted, goerr.Wrap(err, "failed to iterate documents for deletion", goerr.V("collection", collection))
			}

			job, err := bulkWriter.Delete(snap.Ref)
			if err != nil {
				iter.Stop()
				bulkWriter.End()
				return totalDeleted, goerr.Wrap(err, "failed to delete document",
					goerr.V("collection", collection),
					goerr.V("doc_id", snap.Ref.ID))
			}
			jobs = append(jobs, job)
		}
		iter.Stop()
		bulkWriter.End()

		for _, job := range jobs {
			if _, err := job.Results(); err != nil {
				return totalDeleted, goerr.Wrap(err, "failed to delete document",
					goerr.V("collection", collection),
					goerr.V("code", status.Code(err).String()))
			}
			totalDeleted++
		}

		if len(jobs) < deleteBatchSize {
			break
		}
	}

	return totalDeleted, nil
}

func (s *DocumentStore) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
