package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-inventory-api/internal/model"
	"go-inventory-api/internal/repository"
	"go-inventory-api/pkg/apperror"
	"go-inventory-api/pkg/validator"
)

type SupplierService interface {
	ListBrief(ctx context.Context) ([]model.SupplierBrief, error)
	ListAll(ctx context.Context) ([]model.SupplierSummary, error)
	GetByID(ctx context.Context, id uint) (*model.Supplier, error)
	Create(ctx context.Context, req *SupplierRequest) (*model.Supplier, error)
	Update(ctx context.Context, id uint, req *SupplierRequest) (*model.Supplier, error)
	Delete(ctx context.Context, id uint) (*model.Supplier, error)
}

// SupplierRequest is the body of POST and PUT /proveedores.
type SupplierRequest struct {
	CompanyName string  `json:"nombre_compania" validate:"required,max=150"`
	Phone       *string `json:"telefono" validate:"omitempty,max=20"`
	Email       string  `json:"email" validate:"required,max=100,simple_email"`
}

func (r *SupplierRequest) normalize() {
	r.CompanyName = strings.TrimSpace(r.CompanyName)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = blankToNil(r.Phone)
}

func (r *SupplierRequest) validate() error {
	r.normalize()
	return fieldErrors(validator.ValidateStruct(r), "nombre_compania y email son obligatorios")
}

type supplierService struct {
	store    repository.Store
	notifier Notifier
}

func NewSupplierService(store repository.Store, notifier Notifier) SupplierService {
	return &supplierService{
		store:    store,
		notifier: notifierOrNoop(notifier),
	}
}

func (s *supplierService) ListBrief(ctx context.Context) ([]model.SupplierBrief, error) {
	suppliers, err := s.store.Suppliers().ListBrief(ctx)
	if err != nil {
		return nil, apperror.Internal("Error al obtener la lista de proveedores", err)
	}
	return suppliers, nil
}

func (s *supplierService) ListAll(ctx context.Context) ([]model.SupplierSummary, error) {
	suppliers, err := s.store.Suppliers().ListSummaries(ctx)
	if err != nil {
		return nil, apperror.Internal("Error al obtener la lista completa de proveedores", err)
	}
	return suppliers, nil
}

func (s *supplierService) GetByID(ctx context.Context, id uint) (*model.Supplier, error) {
	supplier, err := s.store.Suppliers().FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, supplierNotFound(id)
	}
	if err != nil {
		return nil, apperror.Internal("Error al obtener proveedor", err)
	}
	return supplier, nil
}

func (s *supplierService) Create(ctx context.Context, req *SupplierRequest) (*model.Supplier, error) {
	// 1. Validate request
	if err := req.validate(); err != nil {
		return nil, err
	}

	supplier := &model.Supplier{
		CompanyName: req.CompanyName,
		Phone:       req.Phone,
		Email:       req.Email,
	}

	// 2. Check email and insert in one transaction
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		taken, err := tx.Suppliers().EmailTaken(ctx, supplier.Email, 0)
		if err != nil {
			return err
		}
		if taken {
			return emailTaken()
		}
		return tx.Suppliers().Create(ctx, supplier)
	})
	if err != nil {
		return nil, translateWrite(err, "Error al crear proveedor", emailTaken, nil)
	}

	s.notifier.Publish(ActionSupplierCreated, supplier,
		fmt.Sprintf("Proveedor '%s' creado", supplier.CompanyName))
	return supplier, nil
}

func (s *supplierService) Update(ctx context.Context, id uint, req *SupplierRequest) (*model.Supplier, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var updated *model.Supplier
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		existing, err := tx.Suppliers().LockByID(ctx, id, repository.LockUpdate)
		if errors.Is(err, repository.ErrNotFound) {
			return supplierNotFound(id)
		}
		if err != nil {
			return err
		}

		taken, err := tx.Suppliers().EmailTaken(ctx, req.Email, id)
		if err != nil {
			return err
		}
		if taken {
			return emailTaken()
		}

		existing.CompanyName = req.CompanyName
		existing.Phone = req.Phone
		existing.Email = req.Email
		if err := tx.Suppliers().Update(ctx, existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, translateWrite(err, "Error al actualizar proveedor", emailTaken, nil)
	}

	s.notifier.Publish(ActionSupplierUpdated, updated,
		fmt.Sprintf("Proveedor '%s' actualizado", updated.CompanyName))
	return updated, nil
}

// Delete refuses while any inventory item still references the supplier.
func (s *supplierService) Delete(ctx context.Context, id uint) (*model.Supplier, error) {
	var deleted *model.Supplier
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		// FOR UPDATE waits for item writers holding FOR SHARE on this row
		existing, err := tx.Suppliers().LockByID(ctx, id, repository.LockUpdate)
		if errors.Is(err, repository.ErrNotFound) {
			return supplierNotFound(id)
		}
		if err != nil {
			return err
		}

		items, err := tx.Inventory().CountBySupplier(ctx, id)
		if err != nil {
			return err
		}
		if items > 0 {
			return supplierInUse(items)
		}

		if err := tx.Suppliers().Delete(ctx, id); err != nil {
			return err
		}
		deleted = existing
		return nil
	})
	if err != nil {
		return nil, translateWrite(err, "Error al eliminar proveedor", nil, func() error {
			return apperror.Conflict("No se puede eliminar", "Este proveedor tiene productos asociados en el inventario")
		})
	}

	s.notifier.Publish(ActionSupplierDeleted, deleted,
		fmt.Sprintf("Proveedor '%s' eliminado", deleted.CompanyName))
	return deleted, nil
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
