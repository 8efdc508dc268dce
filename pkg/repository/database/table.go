package database

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/interfaces"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/model"
)

// table is the gorm implementation of interfaces.EntityRepository
type table[T any] struct {
	db   *Database
	name string
}

func newTable[T any](db *Database, name string) *table[T] {
	return &table[T]{db: db, name: name}
}

func (t *table[T]) Get(ctx context.Context, id int64) (*T, error) {
	var row T
	if err := t.db.conn(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, goerr.Wrap(interfaces.ErrNotFound, t.name+" not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get "+t.name, goerr.V("id", id))
	}
	return &row, nil
}

func (t *table[T]) List(ctx context.Context) ([]*T, error) {
	return t.find(t.db.conn(ctx).Order("id asc"))
}

func (t *table[T]) Save(ctx context.Context, v *T) error {
	if v == nil {
		return goerr.New("cannot save nil row", goerr.V("table", t.name))
	}
	if err := t.db.conn(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(v).Error; err != nil {
		return goerr.Wrap(err, "failed to save "+t.name, goerr.V("id", recordID(v)))
	}
	return nil
}

func (t *table[T]) find(query *gorm.DB) ([]*T, error) {
	var rows []*T
	if err := query.Find(&rows).Error; err != nil {
		return nil, goerr.Wrap(err, "failed to list "+t.name)
	}
	return rows, nil
}

func recordID(v any) int64 {
	if r, ok := v.(model.Record); ok {
		return r.RecordID()
	}
	return 0
}
