package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vendormetrics/vendor-performance-api/config"
	"github.com/vendormetrics/vendor-performance-api/models"
	"github.com/vendormetrics/vendor-performance-api/services"
)

// VendorPayload represents the nested vendor body accepted when creating a
// historical performance snapshot. The vendor is resolved by code
// (get-or-create).
type VendorPayload struct {
	Name           string `json:"name" binding:"omitempty"`
	ContactDetails string `json:"contact_details" binding:"omitempty"`
	Address        string `json:"address" binding:"omitempty"`
	VendorCode     string `json:"vendor_code" binding:"required"`
}

// CreateHistoricalPerformanceRequest represents the request body for
// recording a performance snapshot. Metric values are pointers so an
// explicit 0 passes the required check.
type CreateHistoricalPerformanceRequest struct {
	Vendor              VendorPayload `json:"vendor" binding:"required"`
	Date                time.Time     `json:"date" binding:"required"`
	OnTimeDeliveryRate  *float64      `json:"on_time_delivery_rate" binding:"required"`
	QualityRatingAvg    *float64      `json:"quality_rating_avg" binding:"required"`
	AverageResponseTime *float64      `json:"average_response_time" binding:"required"`
	FulfillmentRate     *float64      `json:"fulfillment_rate" binding:"required"`
}

// GetVendorPerformance handles GET /api/v1/vendors/:id/performance - returns
// the vendor's four metrics freshly computed from the current order set, not
// the cached copy on the vendor row. Requires a bearer token.
func GetVendorPerformance(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var vendor models.Vendor
	if err := db.First(&vendor, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VENDOR_NOT_FOUND",
				"message": "Vendor not found",
			},
		})
		return
	}

	var orders []models.PurchaseOrder
	if err := db.Where("vendor_id = ?", vendor.ID).Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load purchase orders",
			},
		})
		return
	}

	perf := services.ComputeVendorPerformance(orders)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    perf,
	})
}

// ListHistoricalPerformances handles GET /api/v1/historical_performances -
// lists all recorded performance snapshots
func ListHistoricalPerformances(c *gin.Context) {
	db := config.GetDB()

	var records []models.HistoricalPerformance
	if err := db.Preload("Vendor").Order("id").Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list historical performances",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    records,
	})
}

// CreateHistoricalPerformance handles POST /api/v1/historical_performances -
// appends a performance snapshot for a vendor resolved via get-or-create.
// Snapshots are write-only from the metrics engine's perspective: nothing in
// the recalculation path ever reads them back.
func CreateHistoricalPerformance(c *gin.Context) {
	var req CreateHistoricalPerformanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	vendor, err := services.GetOrCreateVendorByCode(db, req.Vendor.VendorCode, models.Vendor{
		Name:           req.Vendor.Name,
		ContactDetails: req.Vendor.ContactDetails,
		Address:        req.Vendor.Address,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to resolve vendor",
			},
		})
		return
	}

	record := models.HistoricalPerformance{
		VendorID:            vendor.ID,
		Date:                req.Date,
		OnTimeDeliveryRate:  *req.OnTimeDeliveryRate,
		QualityRatingAvg:    *req.QualityRatingAvg,
		AverageResponseTime: *req.AverageResponseTime,
		FulfillmentRate:     *req.FulfillmentRate,
	}

	if err := db.Create(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create historical performance",
			},
		})
		return
	}

	// Load the vendor relationship to return complete data
	if err := db.Preload("Vendor").First(&record, record.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load historical performance details",
			},
		})
		return
	}

	// Secondary JSON copy to the archive bucket, when configured.
	services.ArchiveSnapshot(&record)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    record,
	})
}
