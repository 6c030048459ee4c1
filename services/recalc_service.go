package services

import (
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/vendormetrics/vendor-performance-api/models"
	"github.com/vendormetrics/vendor-performance-api/prometheus"
)

// vendorLocks serializes order writes per vendor. Recalculation reads the
// vendor's whole order set and writes the vendor row, so two concurrent
// order saves for the same vendor must not interleave or one recomputation
// would overwrite the other with a stale aggregate. Saves for different
// vendors proceed in parallel.
var vendorLocks sync.Map

func lockVendor(vendorID uint) *sync.Mutex {
	mu, _ := vendorLocks.LoadOrStore(vendorID, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m
}

// RecalculateVendorMetrics recomputes the four performance metrics from the
// vendor's current full order set and persists them onto the vendor row.
// It runs on the transaction handle supplied by the caller, so the order
// write and the metrics write commit or roll back together.
func RecalculateVendorMetrics(tx *gorm.DB, vendorID uint) error {
	var orders []models.PurchaseOrder
	if err := tx.Where("vendor_id = ?", vendorID).Find(&orders).Error; err != nil {
		return fmt.Errorf("failed to load purchase orders for vendor %d: %w", vendorID, err)
	}

	perf := ComputeVendorPerformance(orders)

	if err := tx.Model(&models.Vendor{}).Where("id = ?", vendorID).Updates(map[string]interface{}{
		"on_time_delivery_rate": perf.OnTimeDeliveryRate,
		"quality_rating_avg":    perf.QualityRatingAvg,
		"average_response_time": perf.AverageResponseTime,
		"fulfillment_rate":      perf.FulfillmentRate,
	}).Error; err != nil {
		return fmt.Errorf("failed to persist metrics for vendor %d: %w", vendorID, err)
	}

	prometheus.RecalculationsTotal.Inc()
	return nil
}

// SavePurchaseOrder persists a purchase order (creating it when new) and
// recomputes the owning vendor's metrics in the same transaction. This is the
// single write path for orders: every create and update goes through here so
// the vendor row can never be left stale relative to its order set.
func SavePurchaseOrder(db *gorm.DB, po *models.PurchaseOrder) error {
	mu := lockVendor(po.VendorID)
	defer mu.Unlock()

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(po).Error; err != nil {
			return err
		}
		return RecalculateVendorMetrics(tx, po.VendorID)
	})
}

// DeletePurchaseOrder removes a purchase order and recomputes the owning
// vendor's metrics in the same transaction. Deletes change the metric inputs
// just like saves do, so they trigger recomputation too.
func DeletePurchaseOrder(db *gorm.DB, po *models.PurchaseOrder) error {
	mu := lockVendor(po.VendorID)
	defer mu.Unlock()

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(po).Error; err != nil {
			return err
		}
		return RecalculateVendorMetrics(tx, po.VendorID)
	})
}

// GetOrCreateVendorByCode resolves a vendor code to an existing vendor or
// creates a new one. The uniqueness invariant is enforced by the database
// index; if a concurrent request creates the same code first, the resulting
// uniqueness conflict is resolved by retrying the lookup, so two racing
// resolutions can never produce duplicate vendor rows.
func GetOrCreateVendorByCode(db *gorm.DB, code string, attrs models.Vendor) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := db.Where("vendor_code = ?", code).First(&vendor).Error; err == nil {
		return &vendor, nil
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	vendor = attrs
	vendor.ID = 0
	vendor.VendorCode = code
	if err := db.Create(&vendor).Error; err != nil {
		if IsUniqueViolation(err) {
			// Lost the creation race; the row exists now.
			var existing models.Vendor
			if lookupErr := db.Where("vendor_code = ?", code).First(&existing).Error; lookupErr != nil {
				return nil, lookupErr
			}
			return &existing, nil
		}
		return nil, err
	}

	return &vendor, nil
}

// IsUniqueViolation reports whether err is a unique-constraint failure.
// Matching on the message text works with both PostgreSQL and SQLite.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique")
}
