package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/document"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/interfaces"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/repository/firestore"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/repository/memory"
)

func newFirestoreDocumentStore(t *testing.T) interfaces.DocumentStore {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")
	if databaseID == "" {
		t.Skip("TEST_FIRESTORE_DATABASE_ID not set")
	}

	ctx := context.Background()
	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	store, err := firestore.New(ctx, projectID, databaseID, firestore.WithCollectionPrefix(prefix))
	if err != nil {
		t.Fatalf("failed to create firestore document store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close firestore document store: %v", err)
		}
	})
	return store
}

func TestMemoryDocumentStore(t *testing.T) {
	runDocumentStoreTest(t, func(t *testing.T) interfaces.DocumentStore {
		return memory.NewDocumentStore()
	})
}

func TestFirestoreDocumentStore(t *testing.T) {
	runDocumentStoreTest(t, newFirestoreDocumentStore)
}

func runDocumentStoreTest(t *testing.T, newStore func(t *testing.T) interfaces.DocumentStore) {
	t.Helper()

	t.Run("Set then List", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		gt.NoError(t, store.Set(ctx, "work_types", 2, document.Document{
			"id": int64(2), "label": "lighting", "last_update": int64(1717230600123),
		})).Required()
		gt.NoError(t, store.Set(ctx, "work_types", 1, document.Document{
			"id": int64(1), "label": "road", "last_update": int64(1717230600000),
		})).Required()

		docs, err := store.List(ctx, "work_types")
		gt.NoError(t, err).Required()
		gt.Array(t, docs).Length(2)

		labels := map[int64]string{}
		for _, doc := range docs {
			id, ok := doc.ID()
			gt.Bool(t, ok).True()
			label, _ := doc.String("label")
			labels[id] = label
		}
		gt.Value(t, labels[1]).Equal("road")
		gt.Value(t, labels[2]).Equal("lighting")
	})

	t.Run("Set overwrites the whole document", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		gt.NoError(t, store.Set(ctx, "enterprises", 5, document.Document{"id": int64(5), "name": "Colas", "email": "a@b.c"})).Required()
		gt.NoError(t, store.Set(ctx, "enterprises", 5, document.Document{"id": int64(5), "name": "Colas MG"})).Required()

		docs, err := store.List(ctx, "enterprises")
		gt.NoError(t, err).Required()
		gt.Array(t, docs).Length(1)
		name, _ := docs[0].String("name")
		gt.Value(t, name).Equal("Colas MG")
		gt.Bool(t, docs[0].Has("email")).False()
	})

	t.Run("DeleteAll empties only the named collection", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		for i := int64(1); i <= 3; i++ {
			gt.NoError(t, store.Set(ctx, "reports", i, document.Document{"id": i})).Required()
		}
		gt.NoError(t, store.Set(ctx, "users", 1, document.Document{"id": int64(1)})).Required()

		n, err := store.DeleteAll(ctx, "reports")
		gt.NoError(t, err).Required()
		gt.Number(t, n).Equal(3)

		docs, err := store.List(ctx, "reports")
		gt.NoError(t, err).Required()
		gt.Array(t, docs).Length(0)

		users, err := store.List(ctx, "users")
		gt.NoError(t, err).Required()
		gt.Array(t, users).Length(1)

		n, err = store.DeleteAll(ctx, "never_written")
		gt.NoError(t, err).Required()
		gt.Number(t, n).Equal(0)
	})
}
