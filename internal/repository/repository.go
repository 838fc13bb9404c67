package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates every repository.
type Repository struct {
	db *gorm.DB

	Group      GroupRepository
	Brother    BrotherRepository
	Territory  TerritoryRepository
	Assignment AssignmentRepository
}

// NewRepository creates the aggregate over db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:         db,
		Group:      NewGroupRepo(db),
		Brother:    NewBrotherRepo(db),
		Territory:  NewTerritoryRepo(db),
		Assignment: NewAssignmentRepo(db),
	}
}

// Transaction runs fn with repositories bound to one transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
// An aggregate built without a database (tests) runs fn on itself.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

// softDelete marks a row as deleted and records who did it.
func softDelete(ctx context.Context, db *gorm.DB, m interface{}, column, id, deletedBy string) error {
	updates := map[string]interface{}{
		"deleted_at": gorm.Expr("CURRENT_TIMESTAMP"),
	}
	if deletedBy != "" {
		updates["deleted_by"] = deletedBy
	}
	return db.WithContext(ctx).
		Model(m).
		Where(column+" = ?", id).
		Updates(updates).Error
}
