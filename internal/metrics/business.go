package metrics

// IncrementProductCreated increments product creation counter
func (m *Metrics) IncrementProductCreated() {
	m.safeExecute("IncrementProductCreated", func() {
		m.ProductCreatedTotal.Inc()
	})
}

// RecordStockMovement increments the stock movement counter for an operation
func (m *Metrics) RecordStockMovement(operation string) {
	m.safeExecute("RecordStockMovement", func() {
		m.StockMovementsTotal.WithLabelValues(operation).Inc()
	})
}

// SetProductsTotal sets total products gauge
func (m *Metrics) SetProductsTotal(count int64) {
	m.safeExecute("SetProductsTotal", func() {
		m.ProductsTotal.Set(float64(count))
	})
}

// SetCategoriesTotal sets total categories gauge
func (m *Metrics) SetCategoriesTotal(count int64) {
	m.safeExecute("SetCategoriesTotal", func() {
		m.CategoriesTotal.Set(float64(count))
	})
}

// SetLowStockProducts sets the low stock gauge
func (m *Metrics) SetLowStockProducts(count int64) {
	m.safeExecute("SetLowStockProducts", func() {
		m.LowStockProducts.Set(float64(count))
	})
}

// SetOutOfStockProducts sets the out of stock gauge
func (m *Metrics) SetOutOfStockProducts(count int64) {
	m.safeExecute("SetOutOfStockProducts", func() {
		m.OutOfStockProducts.Set(float64(count))
	})
}

// SetInventoryValue sets the inventory value gauge
func (m *Metrics) SetInventoryValue(value float64) {
	m.safeExecute("SetInventoryValue", func() {
		m.InventoryValue.Set(value)
	})
}
