package controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vendormetrics/vendor-performance-api/models"
	"github.com/vendormetrics/vendor-performance-api/services"
)

func TestGetVendorPerformance(t *testing.T) {
	db := setupTestDB(t)

	vendor := models.Vendor{Name: "Acme Supplies", VendorCode: "ACME-1"}
	db.Create(&vendor)

	rating := 4.0
	ack := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	db.Create(&models.PurchaseOrder{
		PONumber:           "PO-1",
		VendorID:           vendor.ID,
		Items:              []byte(`[]`),
		Quantity:           1,
		Status:             models.StatusCompleted,
		QualityRating:      &rating,
		IssueDate:          time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		AcknowledgmentDate: &ack,
	})
	db.Create(&models.PurchaseOrder{
		PONumber: "PO-2",
		VendorID: vendor.ID,
		Items:    []byte(`[]`),
		Quantity: 1,
		Status:   models.StatusPending,
	})

	router := setupTestRouter()
	router.GET("/vendors/:id/performance", GetVendorPerformance)

	t.Run("metrics are computed from the live order set", func(t *testing.T) {
		// Stale cached columns on the vendor row must not leak through
		db.Model(&models.Vendor{}).Where("id = ?", vendor.ID).
			Update("fulfillment_rate", 99.0)

		w, response := performRequest(t, router, http.MethodGet, fmt.Sprintf("/vendors/%d/performance", vendor.ID), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		data := response["data"].(map[string]interface{})
		assert.InDelta(t, 50.0, data["on_time_delivery_rate"].(float64), 1e-9)
		assert.InDelta(t, 4.0, data["quality_rating_avg"].(float64), 1e-9)
		assert.InDelta(t, 90.0, data["average_response_time"].(float64), 1e-9)
		assert.InDelta(t, 50.0, data["fulfillment_rate"].(float64), 1e-9)
	})

	t.Run("vendor with no orders reports zeros", func(t *testing.T) {
		empty := models.Vendor{Name: "Idle Vendor", VendorCode: "IDLE-1"}
		db.Create(&empty)

		w, response := performRequest(t, router, http.MethodGet, fmt.Sprintf("/vendors/%d/performance", empty.ID), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		data := response["data"].(map[string]interface{})
		assert.Zero(t, data["on_time_delivery_rate"].(float64))
		assert.Zero(t, data["quality_rating_avg"].(float64))
		assert.Zero(t, data["average_response_time"].(float64))
		assert.Zero(t, data["fulfillment_rate"].(float64))
	})

	t.Run("unknown vendor", func(t *testing.T) {
		w, response := performRequest(t, router, http.MethodGet, "/vendors/9999/performance", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assertErrorCode(t, response, "VENDOR_NOT_FOUND")
	})
}

func TestCreateHistoricalPerformance(t *testing.T) {
	db := setupTestDB(t)

	mockArchive := services.NewMockArchiveService()
	mockArchive.SetAsMockForTesting()
	defer services.SetArchiveService(nil)

	existing := models.Vendor{Name: "Acme Supplies", VendorCode: "ACME-1"}
	db.Create(&existing)

	snapshotBody := func(vendorCode string) map[string]interface{} {
		return map[string]interface{}{
			"vendor": map[string]interface{}{
				"name":        "Acme Supplies",
				"vendor_code": vendorCode,
			},
			"date":                  "2024-03-01T00:00:00Z",
			"on_time_delivery_rate": 75.0,
			"quality_rating_avg":    4.2,
			"average_response_time": 120.0,
			"fulfillment_rate":      75.0,
		}
	}

	router := setupTestRouter()
	router.POST("/historical_performances", CreateHistoricalPerformance)

	t.Run("snapshot for existing vendor", func(t *testing.T) {
		w, response := performRequest(t, router, http.MethodPost, "/historical_performances", snapshotBody("ACME-1"))

		assert.Equal(t, http.StatusCreated, w.Code)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, float64(existing.ID), data["vendor_id"])
		assert.InDelta(t, 75.0, data["on_time_delivery_rate"].(float64), 1e-9)

		nested := data["vendor"].(map[string]interface{})
		assert.Equal(t, "ACME-1", nested["vendor_code"])

		// A JSON copy lands in the archive
		date, _ := time.Parse(time.RFC3339, "2024-03-01T00:00:00Z")
		key := fmt.Sprintf("snapshots/%d/%d.json", existing.ID, date.Unix())
		assert.True(t, mockArchive.SnapshotExists(key))
	})

	t.Run("snapshot for unknown vendor code creates the vendor", func(t *testing.T) {
		w, _ := performRequest(t, router, http.MethodPost, "/historical_performances", snapshotBody("NEW-1"))

		assert.Equal(t, http.StatusCreated, w.Code)

		var vendor models.Vendor
		assert.NoError(t, db.Where("vendor_code = ?", "NEW-1").First(&vendor).Error)
		assert.Equal(t, "Acme Supplies", vendor.Name)
	})

	t.Run("explicit zero metric values are accepted", func(t *testing.T) {
		body := snapshotBody("ACME-1")
		body["on_time_delivery_rate"] = 0.0
		body["quality_rating_avg"] = 0.0
		body["average_response_time"] = 0.0
		body["fulfillment_rate"] = 0.0
		body["date"] = "2024-04-01T00:00:00Z"

		w, response := performRequest(t, router, http.MethodPost, "/historical_performances", body)

		assert.Equal(t, http.StatusCreated, w.Code)
		data := response["data"].(map[string]interface{})
		assert.Zero(t, data["fulfillment_rate"].(float64))
	})

	t.Run("missing vendor code", func(t *testing.T) {
		body := snapshotBody("")
		w, response := performRequest(t, router, http.MethodPost, "/historical_performances", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assertErrorCode(t, response, "VALIDATION_ERROR")
	})

	t.Run("missing metric field", func(t *testing.T) {
		body := snapshotBody("ACME-1")
		delete(body, "fulfillment_rate")

		w, response := performRequest(t, router, http.MethodPost, "/historical_performances", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assertErrorCode(t, response, "VALIDATION_ERROR")
	})
}

func TestListHistoricalPerformances(t *testing.T) {
	db := setupTestDB(t)

	vendor := models.Vendor{Name: "Acme Supplies", VendorCode: "ACME-1"}
	db.Create(&vendor)
	db.Create(&models.HistoricalPerformance{VendorID: vendor.ID, Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), FulfillmentRate: 50.0})
	db.Create(&models.HistoricalPerformance{VendorID: vendor.ID, Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), FulfillmentRate: 75.0})

	router := setupTestRouter()
	router.GET("/historical_performances", ListHistoricalPerformances)

	w, response := performRequest(t, router, http.MethodGet, "/historical_performances", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	data := response["data"].([]interface{})
	assert.Len(t, data, 2)

	first := data[0].(map[string]interface{})
	nested := first["vendor"].(map[string]interface{})
	assert.Equal(t, "ACME-1", nested["vendor_code"])
}
