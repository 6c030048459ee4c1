package models

import (
	"time"
)

// HistoricalPerformance is a point-in-time snapshot of a vendor's metrics.
// Rows are append-only: they are created through the API and never read back
// by the metrics computation.
type HistoricalPerformance struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	VendorID uint      `gorm:"not null;index" json:"vendor_id"` // foreign key to vendors table
	Vendor   Vendor    `gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE" json:"vendor"`
	Date     time.Time `gorm:"not null" json:"date"`

	OnTimeDeliveryRate  float64 `gorm:"not null" json:"on_time_delivery_rate"`
	QualityRatingAvg    float64 `gorm:"not null" json:"quality_rating_avg"`
	AverageResponseTime float64 `gorm:"not null" json:"average_response_time"`
	FulfillmentRate     float64 `gorm:"not null" json:"fulfillment_rate"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the HistoricalPerformance model
func (HistoricalPerformance) TableName() string {
	return "historical_performances"
}
