package database

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// mockMetricsRecorder captures recorded queries for assertions
type mockMetricsRecorder struct {
	queries   []queryRecord
	statsCall int
}

type queryRecord struct {
	operation string
	table     string
	duration  time.Duration
	err       error
}

func (m *mockMetricsRecorder) RecordDBQuery(operation, table string, duration time.Duration, err error) {
	m.queries = append(m.queries, queryRecord{
		operation: operation,
		table:     table,
		duration:  duration,
		err:       err,
	})
}

func (m *mockMetricsRecorder) UpdateDBStats(stats interface{}) {
	if _, ok := stats.(sql.DBStats); ok {
		m.statsCall++
	}
}

// stockCount is a minimal model for exercising the callbacks
type stockCount struct {
	ID        string `gorm:"type:text;primaryKey"`
	SKU       string `gorm:"type:varchar(64)"`
	Stock     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (stockCount) TableName() string {
	return "stock_counts"
}

func setupCallbackTestDB(t *testing.T) (*gorm.DB, *mockMetricsRecorder) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "Failed to open test database")
	require.NoError(t, db.AutoMigrate(&stockCount{}), "Failed to migrate test model")

	recorder := &mockMetricsRecorder{}
	RegisterMetricsCallbacks(db, recorder)
	return db, recorder
}

func TestRegisterMetricsCallbacks_RecordsEachOperation(t *testing.T) {
	db, recorder := setupCallbackTestDB(t)

	row := stockCount{ID: uuid.New().String(), SKU: "CAM2BLU-TEST", Stock: 5}
	require.NoError(t, db.Create(&row).Error)

	var found stockCount
	require.NoError(t, db.First(&found, "id = ?", row.ID).Error)

	require.NoError(t, db.Model(&row).Update("Stock", 7).Error)
	require.NoError(t, db.Delete(&row).Error)

	require.Len(t, recorder.queries, 4)
	wantOps := []string{"insert", "select", "update", "delete"}
	for i, want := range wantOps {
		assert.Equal(t, want, recorder.queries[i].operation, "operation %d", i)
		assert.Equal(t, "stock_counts", recorder.queries[i].table, "table for operation %d", i)
		assert.Greater(t, recorder.queries[i].duration, time.Duration(0), "duration for operation %d", i)
		assert.NoError(t, recorder.queries[i].err, "error for operation %d", i)
	}
}

func TestRegisterMetricsCallbacks_RecordsErrors(t *testing.T) {
	db, recorder := setupCallbackTestDB(t)

	var found stockCount
	err := db.First(&found, "id = ?", uuid.New().String()).Error
	require.Error(t, err)

	require.Len(t, recorder.queries, 1)
	assert.Equal(t, "select", recorder.queries[0].operation)
	assert.Error(t, recorder.queries[0].err)
}

func TestRegisterMetricsCallbacks_DuplicateKeyError(t *testing.T) {
	db, recorder := setupCallbackTestDB(t)

	id := uuid.New().String()
	require.NoError(t, db.Create(&stockCount{ID: id, SKU: "A"}).Error)
	recorder.queries = nil

	err := db.Create(&stockCount{ID: id, SKU: "B"}).Error
	require.Error(t, err)

	require.Len(t, recorder.queries, 1)
	assert.Equal(t, "insert", recorder.queries[0].operation)
	assert.Error(t, recorder.queries[0].err)
}

func TestRegisterMetricsCallbacks_Transaction(t *testing.T) {
	db, recorder := setupCallbackTestDB(t)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&stockCount{ID: uuid.New().String(), SKU: "A"}).Error; err != nil {
			return err
		}
		return tx.Create(&stockCount{ID: uuid.New().String(), SKU: "B"}).Error
	})
	require.NoError(t, err)

	insertCount := 0
	for _, q := range recorder.queries {
		if q.operation == "insert" {
			insertCount++
		}
	}
	assert.GreaterOrEqual(t, insertCount, 2)
}

func TestStartDBStatsCollector_Shutdown(t *testing.T) {
	db, recorder := setupCallbackTestDB(t)

	done := StartDBStatsCollector(db, recorder)
	time.Sleep(50 * time.Millisecond)
	close(done)
	time.Sleep(50 * time.Millisecond)
	// Passes as long as the goroutine exits without panic or deadlock
}
