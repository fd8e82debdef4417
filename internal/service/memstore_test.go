package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"go-inventory-api/internal/model"
	"go-inventory-api/internal/repository"
	"go-inventory-api/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
)

// memStore is an in-memory repository.Store. WithTx snapshots state and
// restores it when fn fails, and writes enforce the same constraints the
// PostgreSQL schema declares.
type memStore struct {
	suppliers    map[uint]model.Supplier
	items        map[uint]model.InventoryItem
	nextSupplier uint
	nextItem     uint
	clock        time.Time
	// frozenClock stamps every insert with the same time, as rows written
	// in one PostgreSQL transaction share CURRENT_TIMESTAMP.
	frozenClock bool

	// blindEmailCheck makes EmailTaken always report false, as if a
	// concurrent writer inserted the same email after the check.
	blindEmailCheck bool
	// readErr, when set, is returned by every list and find.
	readErr error
	txCount int
}

func newMemStore() *memStore {
	return &memStore{
		suppliers: make(map[uint]model.Supplier),
		items:     make(map[uint]model.InventoryItem),
		clock:     time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) tick() time.Time {
	if m.frozenClock {
		return m.clock
	}
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) Suppliers() repository.SupplierRepository { return memSuppliers{m} }
func (m *memStore) Inventory() repository.InventoryRepository { return memInventory{m} }

func (m *memStore) WithTx(ctx context.Context, fn func(tx repository.Store) error) error {
	m.txCount++
	suppliers := make(map[uint]model.Supplier, len(m.suppliers))
	for k, v := range m.suppliers {
		suppliers[k] = v
	}
	items := make(map[uint]model.InventoryItem, len(m.items))
	for k, v := range m.items {
		items[k] = v
	}

	if err := fn(m); err != nil {
		m.suppliers = suppliers
		m.items = items
		return err
	}
	return nil
}

type memSuppliers struct{ m *memStore }

func (r memSuppliers) sorted() []model.Supplier {
	out := make([]model.Supplier, 0, len(r.m.suppliers))
	for _, s := range r.m.suppliers {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CompanyName != out[j].CompanyName {
			return out[i].CompanyName < out[j].CompanyName
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r memSuppliers) ListBrief(ctx context.Context) ([]model.SupplierBrief, error) {
	if r.m.readErr != nil {
		return nil, r.m.readErr
	}
	out := make([]model.SupplierBrief, 0)
	for _, s := range r.sorted() {
		out = append(out, model.SupplierBrief{ID: s.ID, CompanyName: s.CompanyName})
	}
	return out, nil
}

func (r memSuppliers) ListSummaries(ctx context.Context) ([]model.SupplierSummary, error) {
	if r.m.readErr != nil {
		return nil, r.m.readErr
	}
	out := make([]model.SupplierSummary, 0)
	for _, s := range r.sorted() {
		out = append(out, model.SupplierSummary{ID: s.ID, CompanyName: s.CompanyName, Phone: s.Phone, Email: s.Email})
	}
	return out, nil
}

func (r memSuppliers) FindByID(ctx context.Context, id uint) (*model.Supplier, error) {
	if r.m.readErr != nil {
		return nil, r.m.readErr
	}
	s, ok := r.m.suppliers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r memSuppliers) LockByID(ctx context.Context, id uint, _ repository.LockMode) (*model.Supplier, error) {
	return r.FindByID(ctx, id)
}

func (r memSuppliers) EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error) {
	if r.m.blindEmailCheck {
		return false, nil
	}
	return r.emailOwner(email, exceptID), nil
}

func (r memSuppliers) emailOwner(email string, exceptID uint) bool {
	for _, s := range r.m.suppliers {
		if s.ID != exceptID && strings.EqualFold(s.Email, email) {
			return true
		}
	}
	return false
}

func (r memSuppliers) Create(ctx context.Context, s *model.Supplier) error {
	if r.emailOwner(s.Email, 0) {
		return &pgconn.PgError{Code: database.CodeUniqueViolation, ConstraintName: "proveedores_email_lower_key"}
	}
	r.m.nextSupplier++
	s.ID = r.m.nextSupplier
	s.RegisteredAt = r.m.tick()
	r.m.suppliers[s.ID] = *s
	return nil
}

func (r memSuppliers) Update(ctx context.Context, s *model.Supplier) error {
	existing, ok := r.m.suppliers[s.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.emailOwner(s.Email, s.ID) {
		return &pgconn.PgError{Code: database.CodeUniqueViolation, ConstraintName: "proveedores_email_lower_key"}
	}
	existing.CompanyName = s.CompanyName
	existing.Phone = s.Phone
	existing.Email = s.Email
	r.m.suppliers[s.ID] = existing
	return nil
}

func (r memSuppliers) Delete(ctx context.Context, id uint) error {
	if _, ok := r.m.suppliers[id]; !ok {
		return repository.ErrNotFound
	}
	for _, it := range r.m.items {
		if it.SupplierID == id {
			return &pgconn.PgError{Code: database.CodeForeignKeyViolation, ConstraintName: "fk_inventario_supplier"}
		}
	}
	delete(r.m.suppliers, id)
	return nil
}

type memInventory struct{ m *memStore }

func (r memInventory) listing(it model.InventoryItem) model.InventoryListing {
	s := r.m.suppliers[it.SupplierID]
	return model.InventoryListing{
		ID:           it.ID,
		Name:         it.Name,
		Description:  it.Description,
		Stock:        it.Stock,
		UnitCost:     it.UnitCost,
		RegisteredAt: it.RegisteredAt,
		SupplierID:   s.ID,
		CompanyName:  s.CompanyName,
	}
}

func (r memInventory) List(ctx context.Context) ([]model.InventoryListing, error) {
	if r.m.readErr != nil {
		return nil, r.m.readErr
	}
	out := make([]model.InventoryListing, 0)
	for _, it := range r.m.items {
		out = append(out, r.listing(it))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].RegisteredAt.Equal(out[j].RegisteredAt) {
			return out[i].RegisteredAt.After(out[j].RegisteredAt)
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r memInventory) ListBySupplier(ctx context.Context, supplierID uint) ([]model.InventoryListing, error) {
	if r.m.readErr != nil {
		return nil, r.m.readErr
	}
	out := make([]model.InventoryListing, 0)
	for _, it := range r.m.items {
		if it.SupplierID == supplierID {
			out = append(out, r.listing(it))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r memInventory) FindDetail(ctx context.Context, id uint) (*model.InventoryDetail, error) {
	if r.m.readErr != nil {
		return nil, r.m.readErr
	}
	it, ok := r.m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	s := r.m.suppliers[it.SupplierID]
	return &model.InventoryDetail{InventoryListing: r.listing(it), Phone: s.Phone, Email: s.Email}, nil
}

func (r memInventory) LockByID(ctx context.Context, id uint, _ repository.LockMode) (*model.InventoryItem, error) {
	it, ok := r.m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &it, nil
}

func (r memInventory) CountBySupplier(ctx context.Context, supplierID uint) (int64, error) {
	var n int64
	for _, it := range r.m.items {
		if it.SupplierID == supplierID {
			n++
		}
	}
	return n, nil
}

func (r memInventory) checkRow(it *model.InventoryItem) error {
	if _, ok := r.m.suppliers[it.SupplierID]; !ok {
		return &pgconn.PgError{Code: database.CodeForeignKeyViolation, ConstraintName: "fk_inventario_supplier"}
	}
	if it.Stock < 0 || it.UnitCost.IsNegative() {
		return &pgconn.PgError{Code: database.CodeCheckViolation}
	}
	return nil
}

func (r memInventory) Create(ctx context.Context, it *model.InventoryItem) error {
	if err := r.checkRow(it); err != nil {
		return err
	}
	r.m.nextItem++
	it.ID = r.m.nextItem
	it.RegisteredAt = r.m.tick()
	r.m.items[it.ID] = *it
	return nil
}

func (r memInventory) Update(ctx context.Context, it *model.InventoryItem) error {
	existing, ok := r.m.items[it.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if err := r.checkRow(it); err != nil {
		return err
	}
	existing.SupplierID = it.SupplierID
	existing.Name = it.Name
	existing.Description = it.Description
	existing.Stock = it.Stock
	existing.UnitCost = it.UnitCost
	r.m.items[it.ID] = existing
	return nil
}

func (r memInventory) Delete(ctx context.Context, id uint) error {
	if _, ok := r.m.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.m.items, id)
	return nil
}

// recorder is a Notifier that keeps every published action.
type recorder struct {
	actions []string
}

func (r *recorder) Publish(action string, _ interface{}, _ string) {
	r.actions = append(r.actions, action)
}
