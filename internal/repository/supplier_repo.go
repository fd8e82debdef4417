package repository

import (
	"context"
	"fmt"

	"go-inventory-api/internal/model"

	"gorm.io/gorm"
)

type SupplierRepository interface {
	ListBrief(ctx context.Context) ([]model.SupplierBrief, error)
	ListSummaries(ctx context.Context) ([]model.SupplierSummary, error)
	FindByID(ctx context.Context, id uint) (*model.Supplier, error)
	LockByID(ctx context.Context, id uint, mode LockMode) (*model.Supplier, error)
	// EmailTaken reports whether another supplier (not exceptID) uses email,
	// ignoring case.
	EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error)
	Create(ctx context.Context, supplier *model.Supplier) error
	Update(ctx context.Context, supplier *model.Supplier) error
	Delete(ctx context.Context, id uint) error
}

type supplierRepo struct {
	db *gorm.DB
}

func NewSupplierRepo(db *gorm.DB) SupplierRepository {
	return &supplierRepo{db}
}

func (r *supplierRepo) ListBrief(ctx context.Context) ([]model.SupplierBrief, error) {
	suppliers := make([]model.SupplierBrief, 0)
	err := r.db.WithContext(ctx).
		Model(&model.Supplier{}).
		Select("id_proveedor, nombre_compania").
		Order("nombre_compania ASC, id_proveedor ASC").
		Scan(&suppliers).Error
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return suppliers, nil
}

func (r *supplierRepo) ListSummaries(ctx context.Context) ([]model.SupplierSummary, error) {
	suppliers := make([]model.SupplierSummary, 0)
	err := r.db.WithContext(ctx).
		Model(&model.Supplier{}).
		Select("id_proveedor, nombre_compania, telefono, email").
		Order("nombre_compania ASC, id_proveedor ASC").
		Scan(&suppliers).Error
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return suppliers, nil
}

func (r *supplierRepo) FindByID(ctx context.Context, id uint) (*model.Supplier, error) {
	var supplier model.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &supplier, nil
}

// LockByID only takes effect inside WithTx.
func (r *supplierRepo) LockByID(ctx context.Context, id uint, mode LockMode) (*model.Supplier, error) {
	var supplier model.Supplier
	if err := r.db.WithContext(ctx).Clauses(mode.clause()).First(&supplier, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &supplier, nil
}

func (r *supplierRepo) EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&model.Supplier{}).Where("lower(email) = lower(?)", email)
	if exceptID != 0 {
		q = q.Where("id_proveedor <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check supplier email: %w", err)
	}
	return count > 0, nil
}

func (r *supplierRepo) Create(ctx context.Context, supplier *model.Supplier) error {
	return r.db.WithContext(ctx).Create(supplier).Error
}

// Update replaces every mutable column; fecha_registro is left alone.
func (r *supplierRepo) Update(ctx context.Context, supplier *model.Supplier) error {
	result := r.db.WithContext(ctx).
		Model(&model.Supplier{}).
		Where("id_proveedor = ?", supplier.ID).
		Updates(map[string]interface{}{
			"nombre_compania": supplier.CompanyName,
			"telefono":        supplier.Phone,
			"email":           supplier.Email,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *supplierRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Supplier{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
