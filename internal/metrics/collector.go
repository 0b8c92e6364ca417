package metrics

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BusinessMetricsCollector collects business metrics periodically
type BusinessMetricsCollector struct {
	db      *gorm.DB
	metrics *Metrics
	logger  *zap.Logger
	ticker  *time.Ticker
	done    chan bool
}

// NewBusinessMetricsCollector creates a new collector
func NewBusinessMetricsCollector(db *gorm.DB, metrics *Metrics, logger *zap.Logger) *BusinessMetricsCollector {
	return &BusinessMetricsCollector{
		db:      db,
		metrics: metrics,
		logger:  logger,
		ticker:  time.NewTicker(60 * time.Second),
		done:    make(chan bool),
	}
}

// Start begins collecting metrics
func (c *BusinessMetricsCollector) Start() {
	go func() {
		c.collect()

		for {
			select {
			case <-c.ticker.C:
				c.collect()
			case <-c.done:
				return
			}
		}
	}()
}

// Stop stops the collector
func (c *BusinessMetricsCollector) Stop() {
	c.ticker.Stop()
	c.done <- true
}

// collect gathers business metrics
func (c *BusinessMetricsCollector) collect() {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic in business metrics collection",
				zap.Any("panic", r),
			)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var productCount int64
	if err := c.db.WithContext(ctx).Table("products").
		Where("is_deleted = ?", false).
		Count(&productCount).Error; err != nil {
		c.logger.Error("Failed to count products", zap.Error(err))
	} else {
		c.metrics.SetProductsTotal(productCount)
	}

	var categoryCount int64
	if err := c.db.WithContext(ctx).Table("categories").
		Where("is_deleted = ?", false).
		Count(&categoryCount).Error; err != nil {
		c.logger.Error("Failed to count categories", zap.Error(err))
	} else {
		c.metrics.SetCategoriesTotal(categoryCount)
	}

	var alerts struct {
		LowStock   int64
		OutOfStock int64
		Value      float64
	}
	err := c.db.WithContext(ctx).Table("products").
		Select(
			"COALESCE(SUM(CASE WHEN stock <= min_stock THEN 1 ELSE 0 END), 0) AS low_stock, " +
				"COALESCE(SUM(CASE WHEN stock = 0 THEN 1 ELSE 0 END), 0) AS out_of_stock, " +
				"COALESCE(SUM(price * stock), 0) AS value").
		Where("is_deleted = ? AND is_active = ?", false, true).
		Scan(&alerts).Error
	if err != nil {
		c.logger.Error("Failed to aggregate stock alerts", zap.Error(err))
	} else {
		c.metrics.SetLowStockProducts(alerts.LowStock)
		c.metrics.SetOutOfStockProducts(alerts.OutOfStock)
		c.metrics.SetInventoryValue(alerts.Value)
	}
}
