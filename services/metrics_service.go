package services

import (
	"github.com/vendormetrics/vendor-performance-api/models"
)

// VendorPerformance holds the four derived metrics for a vendor
type VendorPerformance struct {
	OnTimeDeliveryRate  float64 `json:"on_time_delivery_rate"`
	QualityRatingAvg    float64 `json:"quality_rating_avg"`
	AverageResponseTime float64 `json:"average_response_time"`
	FulfillmentRate     float64 `json:"fulfillment_rate"`
}

// completionRate returns the percentage of orders with status "completed"
// over all orders regardless of status, or 0 when the vendor has no orders.
// Result is in [0, 100].
func completionRate(orders []models.PurchaseOrder) float64 {
	if len(orders) == 0 {
		return 0
	}

	completed := 0
	for _, po := range orders {
		if po.Status == models.StatusCompleted {
			completed++
		}
	}

	return float64(completed) / float64(len(orders)) * 100
}

// OnTimeDeliveryRate computes the on-time delivery rate for a vendor's order
// set. The "completed" status is used as the sole proxy for on-time delivery;
// no delivery-date comparison is performed. Intentionally identical to
// FulfillmentRate.
func OnTimeDeliveryRate(orders []models.PurchaseOrder) float64 {
	return completionRate(orders)
}

// FulfillmentRate computes the fulfillment rate for a vendor's order set:
// the fraction of all orders that reached "completed" status, as a
// percentage. Intentionally identical to OnTimeDeliveryRate.
func FulfillmentRate(orders []models.PurchaseOrder) float64 {
	return completionRate(orders)
}

// QualityRatingAvg computes the arithmetic mean of quality ratings over
// completed orders that carry a rating. Orders without a rating, or in any
// other status, are excluded from both numerator and denominator. Returns 0
// when no completed order is rated.
func QualityRatingAvg(orders []models.PurchaseOrder) float64 {
	sum := 0.0
	count := 0
	for _, po := range orders {
		if po.Status == models.StatusCompleted && po.QualityRating != nil {
			sum += *po.QualityRating
			count++
		}
	}

	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// AverageResponseTime computes the mean response time in minutes over orders
// that have an acknowledgment date. Unacknowledged orders are excluded
// entirely. Returns 0 when no order has been acknowledged. Inverted dates
// produce negative values and are not clamped.
func AverageResponseTime(orders []models.PurchaseOrder) float64 {
	sum := 0.0
	count := 0
	for _, po := range orders {
		if po.AcknowledgmentDate != nil {
			sum += po.ResponseTimeMinutes()
			count++
		}
	}

	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// ComputeVendorPerformance computes all four metrics from a vendor's full
// order set. All metrics are total functions: an empty or non-qualifying
// order set maps to 0, never to an error or NaN.
func ComputeVendorPerformance(orders []models.PurchaseOrder) VendorPerformance {
	return VendorPerformance{
		OnTimeDeliveryRate:  OnTimeDeliveryRate(orders),
		QualityRatingAvg:    QualityRatingAvg(orders),
		AverageResponseTime: AverageResponseTime(orders),
		FulfillmentRate:     FulfillmentRate(orders),
	}
}
