package services

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vendormetrics/vendor-performance-api/models"
)

func TestArchiveSnapshotWithMock(t *testing.T) {
	mock := NewMockArchiveService()
	mock.SetAsMockForTesting()
	defer SetArchiveService(nil)

	date := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	record := &models.HistoricalPerformance{
		ID:                  7,
		VendorID:            3,
		Date:                date,
		OnTimeDeliveryRate:  75.0,
		QualityRatingAvg:    4.2,
		AverageResponseTime: 42.5,
		FulfillmentRate:     75.0,
	}

	ArchiveSnapshot(record)

	key := fmt.Sprintf("snapshots/3/%d.json", date.Unix())
	assert.True(t, mock.SnapshotExists(key), "snapshot should be archived under the vendor/timestamp key")

	var stored models.HistoricalPerformance
	assert.NoError(t, json.Unmarshal(mock.Snapshots()[key], &stored))
	assert.Equal(t, record.VendorID, stored.VendorID)
	assert.InDelta(t, 75.0, stored.FulfillmentRate, 1e-9)
}

func TestArchiveSnapshotNoopWhenUnconfigured(t *testing.T) {
	SetArchiveService(nil)

	record := &models.HistoricalPerformance{VendorID: 1, Date: time.Now()}

	// Must not panic or error when archiving is disabled
	ArchiveSnapshot(record)
}

func TestMockArchiveServiceClear(t *testing.T) {
	mock := NewMockArchiveService()
	assert.NoError(t, mock.PutSnapshot("snapshots/1/1.json", []byte(`{}`)))
	assert.True(t, mock.SnapshotExists("snapshots/1/1.json"))

	mock.Clear()
	assert.False(t, mock.SnapshotExists("snapshots/1/1.json"))
	assert.Empty(t, mock.Snapshots())
}
