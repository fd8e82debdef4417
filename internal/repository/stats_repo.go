package repository

import (
	"context"
	"fmt"

	"go-inventory-api/internal/model"

	"gorm.io/gorm"
)

type StatsRepository interface {
	InventoryStats(ctx context.Context, lowStockBelow int) (*model.InventoryStats, error)
}

type statsRepo struct {
	db *gorm.DB
}

func NewStatsRepo(db *gorm.DB) StatsRepository {
	return &statsRepo{db}
}

func (r *statsRepo) InventoryStats(ctx context.Context, lowStockBelow int) (*model.InventoryStats, error) {
	var stats model.InventoryStats

	// one pass over inventario; the supplier count is a scalar subquery
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM proveedores)                   AS total_suppliers,
			COUNT(i.id_inventario)                                AS total_items,
			COALESCE(SUM(i.stock), 0)                             AS total_units,
			COUNT(*) FILTER (WHERE i.stock < ?)                   AS low_stock_count,
			COALESCE(SUM(i.stock * i.costo_unitario), 0)          AS total_valuation
		FROM inventario AS i
	`, lowStockBelow).Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("inventory stats: %w", err)
	}

	stats.LowStockBelow = lowStockBelow
	return &stats, nil
}
