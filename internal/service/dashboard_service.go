package service

import (
	"context"

	"go-inventory-api/internal/model"
	"go-inventory-api/internal/repository"
	"go-inventory-api/pkg/apperror"
)

// DefaultLowStockBelow is the stock level under which an item counts as low.
const DefaultLowStockBelow = 10

type DashboardService interface {
	GetInventoryStats(ctx context.Context, lowStockBelow int) (*model.InventoryStats, error)
}

type dashboardService struct {
	statsRepo repository.StatsRepository
}

func NewDashboardService(statsRepo repository.StatsRepository) DashboardService {
	return &dashboardService{statsRepo: statsRepo}
}

func (s *dashboardService) GetInventoryStats(ctx context.Context, lowStockBelow int) (*model.InventoryStats, error) {
	if lowStockBelow <= 0 {
		lowStockBelow = DefaultLowStockBelow
	}
	stats, err := s.statsRepo.InventoryStats(ctx, lowStockBelow)
	if err != nil {
		return nil, apperror.Internal("Error al obtener estadísticas", err)
	}
	return stats, nil
}
