package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"inventory-api/internal/dto"
	"inventory-api/internal/repository"
	"inventory-api/internal/response"
)

// InventoryService defines the interface for inventory-wide reporting
type InventoryService interface {
	GetStats(ctx context.Context, categoryID *uuid.UUID) (*dto.InventoryStatsResponse, error)
}

// inventoryServiceImpl is the implementation of InventoryService
type inventoryServiceImpl struct {
	productRepo repository.ProductRepository
}

// NewInventoryService creates a new instance of InventoryService
func NewInventoryService(productRepo repository.ProductRepository) InventoryService {
	return &inventoryServiceImpl{productRepo: productRepo}
}

// GetStats aggregates the active catalog: totals, per-category rollups
// and the share of products in each stock alert state. A category ID
// narrows every aggregate to that category.
func (s *inventoryServiceImpl) GetStats(ctx context.Context, categoryID *uuid.UUID) (*dto.InventoryStatsResponse, error) {
	totals, err := s.productRepo.Totals(ctx, categoryID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to aggregate inventory", err.Error())
	}

	byCategory, err := s.productRepo.TotalsByCategory(ctx, categoryID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to aggregate categories", err.Error())
	}

	categoriesStats := make([]dto.CategoryStats, 0, len(byCategory))
	for _, row := range byCategory {
		categoriesStats = append(categoriesStats, dto.CategoryStats{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			ProductCount: row.ProductCount,
			TotalStock:   row.TotalStock,
			TotalValue:   row.TotalValue,
		})
	}

	return &dto.InventoryStatsResponse{
		TotalProducts:       totals.TotalProducts,
		TotalStock:          totals.TotalStock,
		LowStockCount:       totals.LowStockCount,
		OutOfStockCount:     totals.OutOfStockCount,
		TotalInventoryValue: totals.TotalInventoryValue,
		CategoriesStats:     categoriesStats,
		StockAlerts:         stockAlerts(totals),
	}, nil
}

// stockAlerts turns the alert counts into percentages of the active
// catalog, rounded to two decimals. Sold-out products count as low
// stock too, so the healthy share is the complement of the low share
// alone.
func stockAlerts(totals *repository.InventoryTotals) dto.StockAlerts {
	if totals.TotalProducts == 0 {
		return dto.StockAlerts{
			LowStockPercentage:     decimal.Zero,
			OutOfStockPercentage:   decimal.Zero,
			HealthyStockPercentage: decimal.Zero,
		}
	}

	total := decimal.NewFromInt(totals.TotalProducts)
	hundred := decimal.NewFromInt(100)
	low := decimal.NewFromInt(totals.LowStockCount).Mul(hundred).Div(total).Round(2)
	out := decimal.NewFromInt(totals.OutOfStockCount).Mul(hundred).Div(total).Round(2)

	return dto.StockAlerts{
		LowStockPercentage:     low,
		OutOfStockPercentage:   out,
		HealthyStockPercentage: hundred.Sub(low),
	}
}
