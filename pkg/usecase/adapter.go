package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/document"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/interfaces"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/model"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/types"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/utils/logging"
)

// syncAdapter moves one entity kind between the primary store and the
// document store.
type syncAdapter interface {
	Kind() types.EntityKind

	// PullSince upserts every document newer than both watermark and the
	// matching row, and returns how many rows were written.
	PullSince(ctx context.Context, watermark time.Time) (int, error)

	// PushAll overwrites the remote document of every row and returns how
	// many documents were written.
	PushAll(ctx context.Context) (int, error)
}

type record[T any] interface {
	*T
	model.Record
}

// adapter implements syncAdapter for one kind. decode fills row from doc and
// returns false when a reference cannot be resolved; fields that fail to
// coerce keep the value row already had.
type adapter[T any, P record[T]] struct {
	kind   types.EntityKind
	repo   interfaces.Repository
	store  interfaces.DocumentStore
	table  func(interfaces.Repository) interfaces.EntityRepository[T]
	decode func(ctx context.Context, repo interfaces.Repository, doc document.Document, row P) (bool, error)
	encode func(ctx context.Context, repo interfaces.Repository, row P) (document.Document, error)
}

func (a *adapter[T, P]) Kind() types.EntityKind {
	return a.kind
}

func (a *adapter[T, P]) PullSince(ctx context.Context, watermark time.Time) (int, error) {
	collection := a.kind.Collection()
	docs, err := a.store.List(ctx, collection)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list remote documents", goerr.V(CollectionKey, collection))
	}

	ctx = logging.With(ctx, logging.From(ctx).With(KindKey, a.kind))
	watermark = model.Timestamp(watermark)

	count := 0
	err = a.repo.WithTx(ctx, func(ctx context.Context) error {
		count = 0
		for _, doc := range docs {
			written, err := a.pullOne(ctx, doc, watermark)
			if err != nil {
				return err
			}
			if written {
				count++
			}
		}
		return nil
	})
	if err != nil {
		return 0, goerr.Wrap(err, "failed to pull documents", goerr.V(KindKey, a.kind))
	}

	logging.From(ctx).Debug("pulled documents", "listed", len(docs), "written", count)
	return count, nil
}

func (a *adapter[T, P]) pullOne(ctx context.Context, doc document.Document, watermark time.Time) (bool, error) {
	logger := logging.From(ctx)

	id, ok := doc.ID()
	if !ok {
		logger.Debug("skip document without usable id", "id", doc[document.FieldID])
		return false, nil
	}

	updatedAt, ok := doc.LastUpdate()
	if !ok {
		logger.Debug("skip document without usable last_update", "id", id)
		return false, nil
	}
	updatedAt = model.Timestamp(updatedAt)
	if !updatedAt.After(watermark) {
		return false, nil
	}

	var row P
	existing, err := a.table(a.repo).Get(ctx, id)
	switch {
	case err == nil:
		row = P(existing)
		if !updatedAt.After(row.LastUpdated()) {
			return false, nil
		}
	case errors.Is(err, interfaces.ErrNotFound):
		row = P(new(T))
	default:
		return false, goerr.Wrap(err, "failed to get existing row", goerr.V("id", id))
	}

	row.SetRecordID(id)
	resolved, err := a.decode(ctx, a.repo, doc, row)
	if err != nil {
		return false, goerr.Wrap(err, "failed to decode document", goerr.V("id", id))
	}
	if !resolved {
		logger.Debug("skip document with unresolved reference", "id", id)
		return false, nil
	}

	// The remote timestamp is kept so the row and the document compare equal
	// until one side changes again.
	row.SetLastUpdated(updatedAt)
	if err := a.table(a.repo).Save(ctx, (*T)(row)); err != nil {
		return false, goerr.Wrap(err, "failed to save row", goerr.V("id", id))
	}
	return true, nil
}

func (a *adapter[T, P]) PushAll(ctx context.Context) (int, error) {
	type keyed struct {
		id  int64
		doc document.Document
	}

	var docs []keyed
	err := a.repo.WithTx(ctx, func(ctx context.Context) error {
		rows, err := a.table(a.repo).List(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to list rows")
		}

		docs = make([]keyed, 0, len(rows))
		for _, v := range rows {
			row := P(v)
			doc, err := a.encode(ctx, a.repo, row)
			if err != nil {
				return goerr.Wrap(err, "failed to encode row", goerr.V("id", row.RecordID()))
			}
			doc[document.FieldID] = row.RecordID()
			doc[document.FieldLastUpdate] = document.Millis(row.LastUpdated())
			docs = append(docs, keyed{id: row.RecordID(), doc: doc})
		}
		return nil
	})
	if err != nil {
		return 0, goerr.Wrap(err, "failed to read rows for push", goerr.V(KindKey, a.kind))
	}

	collection := a.kind.Collection()
	for i, d := range docs {
		if err := a.store.Set(ctx, collection, d.id, d.doc); err != nil {
			return i, goerr.Wrap(err, "failed to write remote document",
				goerr.V(CollectionKey, collection),
				goerr.V("id", d.id))
		}
	}

	return len(docs), nil
}

// refLookup resolves a reference by primary key
type refLookup func(ctx context.Context, id int64) (bool, error)

func lookup[T any](table interfaces.EntityRepository[T]) refLookup {
	return func(ctx context.Context, id int64) (bool, error) {
		if _, err := table.Get(ctx, id); err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return false, nil
			}
			return false, err
		}
		return true, nil
	}
}

// requiredRef decodes a mandatory reference. ok is false when the field is
// missing, unparsable or points to a row that does not exist.
func requiredRef(ctx context.Context, doc document.Document, field string, exists refLookup) (int64, bool, error) {
	id, ok := doc.Key(field)
	if !ok {
		logging.From(ctx).Debug("missing required reference", "field", field, "value", doc[field])
		return 0, false, nil
	}
	found, err := exists(ctx, id)
	if err != nil {
		return 0, false, goerr.Wrap(err, "failed to resolve reference", goerr.V("field", field), goerr.V("ref", id))
	}
	if !found {
		logging.From(ctx).Debug("unresolved reference", "field", field, "ref", id)
	}
	return id, found, nil
}

// optionalRef decodes a nullable reference. An absent reference is nil and
// ok; a present one must parse and resolve.
func optionalRef(ctx context.Context, doc document.Document, field string, exists refLookup) (*int64, bool, error) {
	id, present, ok := doc.OptionalKey(field)
	if !present {
		return nil, true, nil
	}
	if !ok {
		logging.From(ctx).Debug("unparsable optional reference", "field", field, "value", doc[field])
		return nil, false, nil
	}
	found, err := exists(ctx, *id)
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to resolve reference", goerr.V("field", field), goerr.V("ref", *id))
	}
	if !found {
		logging.From(ctx).Debug("unresolved reference", "field", field, "ref", *id)
	}
	return id, found, nil
}

// set returns a sink that assigns a coerced value only when coercion succeeded
func set[V any](dst *V) func(V, bool) {
	return func(v V, ok bool) {
		if ok {
			*dst = v
		}
	}
}
