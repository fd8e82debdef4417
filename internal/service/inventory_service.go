package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-inventory-api/internal/model"
	"go-inventory-api/internal/repository"
	"go-inventory-api/pkg/apperror"
	"go-inventory-api/pkg/formval"
	"go-inventory-api/pkg/validator"

	"github.com/shopspring/decimal"
)

type InventoryService interface {
	List(ctx context.Context) ([]model.InventoryListing, error)
	ListBySupplier(ctx context.Context, supplierID uint) ([]model.InventoryListing, error)
	GetByID(ctx context.Context, id uint) (*model.InventoryDetail, error)
	Create(ctx context.Context, req *InventoryRequest) (*model.InventoryItem, error)
	Update(ctx context.Context, id uint, req *InventoryRequest) (*model.InventoryItem, error)
	Delete(ctx context.Context, id uint) (*model.InventoryItem, error)
}

// InventoryRequest is the body of POST and PUT /inventario. Numeric fields
// accept numbers or numeric strings; absent stock and cost default to 0.
type InventoryRequest struct {
	SupplierID  formval.Number `json:"id_proveedor"`
	Name        string         `json:"nombre"`
	Description *string        `json:"descripcion"`
	Stock       formval.Number `json:"stock"`
	UnitCost    formval.Number `json:"costo_unitario"`
}

// inventoryFields holds the values of an InventoryRequest that passed the
// typed parse step, ready for struct validation.
type inventoryFields struct {
	SupplierID uint   `json:"id_proveedor" validate:"required"`
	Name       string `json:"nombre" validate:"required,max=150"`
}

// toItem validates req without touching the database.
func (req *InventoryRequest) toItem() (*model.InventoryItem, error) {
	supplierID, _, idErr := req.SupplierID.ID()
	fields := inventoryFields{
		SupplierID: supplierID,
		Name:       strings.TrimSpace(req.Name),
	}
	if idErr == nil {
		if err := fieldErrors(validator.ValidateStruct(&fields), "id_proveedor y nombre son obligatorios"); err != nil {
			return nil, err
		}
	} else {
		if fields.Name == "" {
			return nil, apperror.Validation("Campos requeridos faltantes", "id_proveedor y nombre son obligatorios")
		}
		return nil, apperror.Validation("Proveedor no válido", "id_proveedor debe ser un número entero positivo")
	}

	stock, err := req.Stock.Count(0)
	if err != nil {
		return nil, numberError("Stock inválido", "stock", err)
	}

	unitCost, err := req.UnitCost.Amount(decimal.Zero, model.UnitCostPrecision, model.UnitCostScale)
	if err != nil {
		return nil, numberError("Costo inválido", "costo unitario", err)
	}

	return &model.InventoryItem{
		SupplierID:  fields.SupplierID,
		Name:        fields.Name,
		Description: blankToNil(req.Description),
		Stock:       stock,
		UnitCost:    unitCost,
	}, nil
}

type inventoryService struct {
	store    repository.Store
	notifier Notifier
}

func NewInventoryService(store repository.Store, notifier Notifier) InventoryService {
	return &inventoryService{
		store:    store,
		notifier: notifierOrNoop(notifier),
	}
}

func (s *inventoryService) List(ctx context.Context) ([]model.InventoryListing, error) {
	items, err := s.store.Inventory().List(ctx)
	if err != nil {
		return nil, apperror.Internal("Error al obtener el inventario", err)
	}
	return items, nil
}

// ListBySupplier returns an empty list, not an error, for unknown suppliers.
func (s *inventoryService) ListBySupplier(ctx context.Context, supplierID uint) ([]model.InventoryListing, error) {
	items, err := s.store.Inventory().ListBySupplier(ctx, supplierID)
	if err != nil {
		return nil, apperror.Internal("Error al obtener productos del proveedor", err)
	}
	return items, nil
}

func (s *inventoryService) GetByID(ctx context.Context, id uint) (*model.InventoryDetail, error) {
	item, err := s.store.Inventory().FindDetail(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, itemNotFound(id)
	}
	if err != nil {
		return nil, apperror.Internal("Error al obtener producto", err)
	}
	return item, nil
}

func (s *inventoryService) Create(ctx context.Context, req *InventoryRequest) (*model.InventoryItem, error) {
	// 1. Validate request
	item, err := req.toItem()
	if err != nil {
		return nil, err
	}

	// 2. Supplier check and insert share a transaction; FOR SHARE keeps the
	// supplier from being deleted until the insert commits.
	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		if err := s.requireSupplier(ctx, tx, item.SupplierID); err != nil {
			return err
		}
		return tx.Inventory().Create(ctx, item)
	})
	if err != nil {
		return nil, translateWrite(err, "Error al agregar producto al inventario", nil, func() error {
			return supplierInvalid(item.SupplierID)
		})
	}

	s.notifier.Publish(ActionItemCreated, item,
		fmt.Sprintf("Producto '%s' agregado al inventario", item.Name))
	return item, nil
}

func (s *inventoryService) Update(ctx context.Context, id uint, req *InventoryRequest) (*model.InventoryItem, error) {
	item, err := req.toItem()
	if err != nil {
		return nil, err
	}

	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		existing, err := tx.Inventory().LockByID(ctx, id, repository.LockUpdate)
		if errors.Is(err, repository.ErrNotFound) {
			return itemNotFound(id)
		}
		if err != nil {
			return err
		}

		if err := s.requireSupplier(ctx, tx, item.SupplierID); err != nil {
			return err
		}

		item.ID = existing.ID
		item.RegisteredAt = existing.RegisteredAt
		return tx.Inventory().Update(ctx, item)
	})
	if err != nil {
		return nil, translateWrite(err, "Error al actualizar producto", nil, func() error {
			return supplierInvalid(item.SupplierID)
		})
	}

	s.notifier.Publish(ActionItemUpdated, item,
		fmt.Sprintf("Producto '%s' actualizado", item.Name))
	return item, nil
}

func (s *inventoryService) Delete(ctx context.Context, id uint) (*model.InventoryItem, error) {
	var deleted *model.InventoryItem
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		existing, err := tx.Inventory().LockByID(ctx, id, repository.LockUpdate)
		if errors.Is(err, repository.ErrNotFound) {
			return itemNotFound(id)
		}
		if err != nil {
			return err
		}
		if err := tx.Inventory().Delete(ctx, id); err != nil {
			return err
		}
		deleted = existing
		return nil
	})
	if err != nil {
		// nothing references inventario, so no foreign-key branch here
		return nil, translateWrite(err, "Error al eliminar producto", nil, nil)
	}

	s.notifier.Publish(ActionItemDeleted, deleted,
		fmt.Sprintf("Producto '%s' eliminado del inventario", deleted.Name))
	return deleted, nil
}

func (s *inventoryService) requireSupplier(ctx context.Context, tx repository.Store, supplierID uint) error {
	_, err := tx.Suppliers().LockByID(ctx, supplierID, repository.LockShare)
	if errors.Is(err, repository.ErrNotFound) {
		return supplierInvalid(supplierID)
	}
	return err
}
