package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is a stocked product, always tied to exactly one supplier.
type InventoryItem struct {
	ID          uint            `gorm:"column:id_inventario;primaryKey;autoIncrement" json:"id_inventario"`
	SupplierID  uint            `gorm:"column:id_proveedor;not null;index" json:"id_proveedor"`
	Name        string          `gorm:"column:nombre;type:varchar(150);not null" json:"nombre"`
	Description *string         `gorm:"column:descripcion;type:text" json:"descripcion"`
	Stock       int             `gorm:"column:stock;not null;check:inventario_stock_check,stock >= 0" json:"stock"`
	UnitCost    decimal.Decimal `gorm:"column:costo_unitario;type:numeric(10,2);not null;check:inventario_costo_unitario_check,costo_unitario >= 0" json:"costo_unitario"`
	Registration

	// RESTRICT keeps a supplier from being deleted while it still owns items.
	Supplier *Supplier `gorm:"foreignKey:SupplierID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (InventoryItem) TableName() string {
	return "inventario"
}

// Numeric column limits for costo_unitario.
const (
	UnitCostPrecision = 10
	UnitCostScale     = 2
)

// InventoryListing is an item joined with its supplier's id and name.
type InventoryListing struct {
	ID           uint            `gorm:"column:id_inventario" json:"id_inventario"`
	Name         string          `gorm:"column:nombre" json:"nombre"`
	Description  *string         `gorm:"column:descripcion" json:"descripcion"`
	Stock        int             `gorm:"column:stock" json:"stock"`
	UnitCost     decimal.Decimal `gorm:"column:costo_unitario" json:"costo_unitario"`
	RegisteredAt time.Time       `gorm:"column:fecha_registro" json:"fecha_registro"`
	SupplierID   uint            `gorm:"column:id_proveedor" json:"id_proveedor"`
	CompanyName  string          `gorm:"column:nombre_compania" json:"nombre_compania"`
}

// InventoryDetail adds the supplier's contact data to a listing.
type InventoryDetail struct {
	InventoryListing
	Phone *string `gorm:"column:telefono" json:"telefono"`
	Email string  `gorm:"column:email" json:"email"`
}

// InventoryStats summarizes stock for the dashboard.
type InventoryStats struct {
	TotalSuppliers int64           `gorm:"column:total_suppliers" json:"total_suppliers"`
	TotalItems     int64           `gorm:"column:total_items" json:"total_items"`
	TotalUnits     int64           `gorm:"column:total_units" json:"total_units"`
	LowStockCount  int64           `gorm:"column:low_stock_count" json:"low_stock_count"`
	LowStockBelow  int             `gorm:"-" json:"low_stock_below"`
	TotalValuation decimal.Decimal `gorm:"column:total_valuation" json:"total_valuation"`
}
