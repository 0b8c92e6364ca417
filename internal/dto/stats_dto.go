package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryStats aggregates the active products of one category.
type CategoryStats struct {
	CategoryID   uuid.UUID       `json:"category_id"`
	CategoryName string          `json:"category_name"`
	ProductCount int64           `json:"product_count"`
	TotalStock   int64           `json:"total_stock"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// StockAlerts expresses the share of products in each alert state as a
// percentage of the active catalog.
type StockAlerts struct {
	LowStockPercentage     decimal.Decimal `json:"low_stock_percentage"`
	OutOfStockPercentage   decimal.Decimal `json:"out_of_stock_percentage"`
	HealthyStockPercentage decimal.Decimal `json:"healthy_stock_percentage"`
}

// InventoryStatsResponse is the payload of GET /inventory/stats/.
type InventoryStatsResponse struct {
	TotalProducts       int64           `json:"total_products"`
	TotalStock          int64           `json:"total_stock"`
	LowStockCount       int64           `json:"low_stock_count"`
	OutOfStockCount     int64           `json:"out_of_stock_count"`
	TotalInventoryValue decimal.Decimal `json:"total_inventory_value"`
	CategoriesStats     []CategoryStats `json:"categories_stats"`
	StockAlerts         StockAlerts     `json:"stock_alerts"`
}
