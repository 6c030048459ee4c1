package models

import (
	"time"
)

// Vendor represents a vendor the company issues purchase orders to.
// The four rate/average fields are derived from the vendor's purchase order
// history and are recomputed whenever an order is saved; they are never
// written directly by API clients.
type Vendor struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"not null" json:"name"`
	ContactDetails string `gorm:"type:text" json:"contact_details"`
	Address        string `gorm:"type:text" json:"address"`
	VendorCode     string `gorm:"uniqueIndex;not null" json:"vendor_code"` // stable unique code, case-sensitive

	// Derived performance metrics, default 0.
	OnTimeDeliveryRate  float64 `gorm:"not null;default:0" json:"on_time_delivery_rate"`
	QualityRatingAvg    float64 `gorm:"not null;default:0" json:"quality_rating_avg"`
	AverageResponseTime float64 `gorm:"not null;default:0" json:"average_response_time"`
	FulfillmentRate     float64 `gorm:"not null;default:0" json:"fulfillment_rate"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Vendor model
func (Vendor) TableName() string {
	return "vendors"
}
