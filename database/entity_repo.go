package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/lifestyle-cms-backend/errs"
	"gorm.io/gorm"
)

// entityRepo holds the CRUD shared by every domain table. T is the model struct.
type entityRepo[T any] struct {
	db     *gorm.DB
	entity string
}

func newEntityRepo[T any](db *gorm.DB, entity string) entityRepo[T] {
	return entityRepo[T]{db: db, entity: entity}
}

// FindAll returns every row in insertion order
func (r entityRepo[T]) FindAll(ctx context.Context) ([]T, error) {
	rows := []T{}
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, errs.NewDatabaseError("list", r.entity, err)
	}
	return rows, nil
}

// FindByID returns the row with id or errs.ErrNotFound
func (r entityRepo[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var row T
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound(r.entity)
	}
	if err != nil {
		return nil, errs.NewDatabaseError("find", r.entity, err)
	}
	return &row, nil
}

// FindByIDs returns the rows whose id is in ids, in no particular order
func (r entityRepo[T]) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]T, error) {
	rows := []T{}
	if len(ids) == 0 {
		return rows, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, errs.NewDatabaseError("list", r.entity, err)
	}
	return rows, nil
}

// Add inserts a new row
func (r entityRepo[T]) Add(ctx context.Context, row *T) error {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return errs.NewDatabaseError("create", r.entity, err)
	}
	return nil
}

// Update writes every column of an existing row
func (r entityRepo[T]) Update(ctx context.Context, row *T) error {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return errs.NewDatabaseError("update", r.entity, err)
	}
	return nil
}

// Delete removes a row by id, returning errs.ErrNotFound when nothing matched
func (r entityRepo[T]) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return errs.NewDatabaseError("delete", r.entity, result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound(r.entity)
	}
	return nil
}

// ReplaceAll deletes every row and inserts rows in their place. Run it inside a transaction.
func (r entityRepo[T]) ReplaceAll(ctx context.Context, rows []T) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("1 = 1").Delete(new(T)).Error; err != nil {
		return errs.NewDatabaseError("clear", r.entity, err)
	}
	if len(rows) == 0 {
		return nil
	}
	if err := db.CreateInBatches(rows, 100).Error; err != nil {
		return errs.NewDatabaseError("restore", r.entity, err)
	}
	return nil
}
