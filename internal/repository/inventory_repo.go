package repository

import (
	"context"
	"fmt"

	"go-inventory-api/internal/model"

	"gorm.io/gorm"
)

type InventoryRepository interface {
	List(ctx context.Context) ([]model.InventoryListing, error)
	ListBySupplier(ctx context.Context, supplierID uint) ([]model.InventoryListing, error)
	FindDetail(ctx context.Context, id uint) (*model.InventoryDetail, error)
	LockByID(ctx context.Context, id uint, mode LockMode) (*model.InventoryItem, error)
	CountBySupplier(ctx context.Context, supplierID uint) (int64, error)
	Create(ctx context.Context, item *model.InventoryItem) error
	Update(ctx context.Context, item *model.InventoryItem) error
	Delete(ctx context.Context, id uint) error
}

const listingColumns = `i.id_inventario, i.nombre, i.descripcion, i.stock, i.costo_unitario, i.fecha_registro,
	p.id_proveedor, p.nombre_compania`

type inventoryRepo struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) InventoryRepository {
	return &inventoryRepo{db}
}

// joined starts a query over inventario (alias i) joined to its supplier (alias p).
func (r *inventoryRepo) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("inventario AS i").
		Joins("INNER JOIN proveedores AS p ON p.id_proveedor = i.id_proveedor")
}

func (r *inventoryRepo) List(ctx context.Context) ([]model.InventoryListing, error) {
	items := make([]model.InventoryListing, 0)
	err := r.joined(ctx).
		Select(listingColumns).
		Order("i.fecha_registro DESC, i.nombre ASC, i.id_inventario ASC").
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	return items, nil
}

func (r *inventoryRepo) ListBySupplier(ctx context.Context, supplierID uint) ([]model.InventoryListing, error) {
	items := make([]model.InventoryListing, 0)
	err := r.joined(ctx).
		Select(listingColumns).
		Where("i.id_proveedor = ?", supplierID).
		Order("i.nombre ASC, i.id_inventario ASC").
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list inventory by supplier: %w", err)
	}
	return items, nil
}

func (r *inventoryRepo) FindDetail(ctx context.Context, id uint) (*model.InventoryDetail, error) {
	var detail model.InventoryDetail
	result := r.joined(ctx).
		Select(listingColumns+", p.telefono, p.email").
		Where("i.id_inventario = ?", id).
		Limit(1).
		Scan(&detail)
	if result.Error != nil {
		return nil, fmt.Errorf("find inventory item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &detail, nil
}

// LockByID only takes effect inside WithTx.
func (r *inventoryRepo) LockByID(ctx context.Context, id uint, mode LockMode) (*model.InventoryItem, error) {
	var item model.InventoryItem
	if err := r.db.WithContext(ctx).Clauses(mode.clause()).First(&item, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (r *inventoryRepo) CountBySupplier(ctx context.Context, supplierID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.InventoryItem{}).
		Where("id_proveedor = ?", supplierID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count supplier items: %w", err)
	}
	return count, nil
}

func (r *inventoryRepo) Create(ctx context.Context, item *model.InventoryItem) error {
	return r.db.WithContext(ctx).Omit("Supplier").Create(item).Error
}

// Update replaces every mutable column; fecha_registro is left alone.
func (r *inventoryRepo) Update(ctx context.Context, item *model.InventoryItem) error {
	result := r.db.WithContext(ctx).
		Model(&model.InventoryItem{}).
		Where("id_inventario = ?", item.ID).
		Updates(map[string]interface{}{
			"id_proveedor":   item.SupplierID,
			"nombre":         item.Name,
			"descripcion":    item.Description,
			"stock":          item.Stock,
			"costo_unitario": item.UnitCost,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *inventoryRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.InventoryItem{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
