package interfaces

import (
	"context"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/document"
)

// DocumentStore is the remote document database used by offline clients.
// Documents are keyed by the decimal string of their primary key.
type DocumentStore interface {
	// List returns every document of collection
	List(ctx context.Context, collection string) ([]document.Document, error)

	// Set creates or overwrites the document with id
	Set(ctx context.Context, collection string, id int64, doc document.Document) error

	// DeleteAll removes every document of collection and returns how many were removed
	DeleteAll(ctx context.Context, collection string) (int, error)

	Close() error
}
