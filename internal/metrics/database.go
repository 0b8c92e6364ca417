package metrics

import (
	"database/sql"
	"strings"
	"time"
)

// inventoryTables is the fixed set of table label values. Folding
// anything else into "other" keeps the query metrics' cardinality
// bounded even if a migration adds scratch tables.
var inventoryTables = map[string]struct{}{
	"categories":     {},
	"products":       {},
	"product_images": {},
}

// UpdateDBStats updates database connection pool metrics
func (m *Metrics) UpdateDBStats(statsInterface interface{}) {
	m.safeExecute("UpdateDBStats", func() {
		stats, ok := statsInterface.(sql.DBStats)
		if !ok {
			return
		}
		m.DBConnectionsOpen.Set(float64(stats.OpenConnections))
		m.DBConnectionsInUse.Set(float64(stats.InUse))
		m.DBConnectionsIdle.Set(float64(stats.Idle))
		m.DBConnectionsMax.Set(float64(stats.MaxOpenConnections))
		m.DBConnectionWaitTotal.Add(float64(stats.WaitCount))
		m.DBConnectionWaitDuration.Add(stats.WaitDuration.Seconds())
	})
}

// RecordDBQuery records database query metrics
func (m *Metrics) RecordDBQuery(operation, table string, duration time.Duration, err error) {
	m.safeExecute("RecordDBQuery", func() {
		operation = normalizeOperation(operation)
		table = normalizeTable(table)
		m.DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())

		if err != nil {
			m.DBQueryErrors.WithLabelValues(operation, table).Inc()
		}
	})
}

// normalizeOperation converts operation to lowercase
func normalizeOperation(op string) string {
	return strings.ToLower(op)
}

// normalizeTable maps the table name onto the inventory schema
func normalizeTable(table string) string {
	if _, ok := inventoryTables[table]; ok {
		return table
	}
	if table == "" {
		return "unknown"
	}
	return "other"
}
