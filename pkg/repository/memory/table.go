package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/interfaces"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/model"
)

type recordPtr[T any] interface {
	*T
	model.Record
}

// table is a generic in-memory table keyed by record id. Rows are stored by
// value and copied on the way in and out, so callers never share state with
// the store.
type table[T any, P recordPtr[T]] struct {
	name   string
	mu     sync.RWMutex
	rows   map[int64]T
	nextID int64
	clone  func(v *T) T
}

func newTable[T any, P recordPtr[T]](name string) *table[T, P] {
	return &table[T, P]{
		name:  name,
		rows:  make(map[int64]T),
		clone: func(v *T) T { return *v },
	}
}

func (t *table[T, P]) withClone(clone func(v *T) T) *table[T, P] {
	t.clone = clone
	return t
}

func (t *table[T, P]) Get(ctx context.Context, id int64) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	if !ok {
		return nil, goerr.Wrap(interfaces.ErrNotFound, t.name+" not found", goerr.V("id", id))
	}
	copied := t.clone(&row)
	return &copied, nil
}

func (t *table[T, P]) List(ctx context.Context) ([]*T, error) {
	return t.filter(nil), nil
}

func (t *table[T, P]) Save(ctx context.Context, v *T) error {
	if v == nil {
		return goerr.New("cannot save nil row", goerr.V("table", t.name))
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	p := P(v)
	id := p.RecordID()
	if id == 0 {
		t.nextID++
		id = t.nextID
		p.SetRecordID(id)
	} else if id > t.nextID {
		t.nextID = id
	}

	t.rows[id] = t.clone(v)
	return nil
}

// filter returns copies of the rows matching pred (all rows when nil), ordered by id
func (t *table[T, P]) filter(pred func(v *T) bool) []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := slices.Sorted(maps.Keys(t.rows))
	result := make([]*T, 0, len(ids))
	for _, id := range ids {
		row := t.rows[id]
		if pred != nil && !pred(&row) {
			continue
		}
		copied := t.clone(&row)
		result = append(result, &copied)
	}
	return result
}

// snapshot captures the table contents and returns a function restoring them
func (t *table[T, P]) snapshot() func() {
	t.mu.RLock()
	rows := make(map[int64]T, len(t.rows))
	for id, row := range t.rows {
		rows[id] = t.clone(&row)
	}
	nextID := t.nextID
	t.mu.RUnlock()

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.rows = rows
		t.nextID = nextID
	}
}
