package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a lookup by primary key matches no row.
var ErrNotFound = errors.New("record not found")

// LockMode selects the row lock taken by LockByID inside a transaction.
type LockMode string

const (
	// LockShare blocks concurrent deletes and updates of the row.
	LockShare LockMode = "SHARE"
	// LockUpdate blocks every other writer and share-locker of the row.
	LockUpdate LockMode = "UPDATE"
)

func (m LockMode) clause() clause.Locking {
	return clause.Locking{Strength: string(m)}
}

// Store groups the repositories whose writes must commit together.
type Store interface {
	Suppliers() SupplierRepository
	Inventory() InventoryRepository
	// WithTx runs fn in one transaction; the Store passed to fn is bound to it.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Suppliers() SupplierRepository {
	return NewSupplierRepo(s.db)
}

func (s *gormStore) Inventory() InventoryRepository {
	return NewInventoryRepo(s.db)
}

func (s *gormStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
