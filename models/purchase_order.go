package models

import (
	"encoding/json"
	"time"
)

// Purchase order statuses.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// PurchaseOrder represents a purchase order issued to a vendor
type PurchaseOrder struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	PONumber           string          `gorm:"uniqueIndex;not null" json:"po_number"`
	VendorID           uint            `gorm:"not null;index" json:"vendor_id"` // foreign key to vendors table
	Vendor             Vendor          `gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE" json:"-"`
	OrderDate          time.Time       `gorm:"not null" json:"order_date"`
	DeliveryDate       time.Time       `gorm:"not null" json:"delivery_date"`
	Items              json.RawMessage `gorm:"type:jsonb;not null" json:"items"` // opaque to metrics logic
	Quantity           int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	Status             string          `gorm:"not null;default:'pending'" json:"status"` // pending, completed, delivered, cancelled
	QualityRating      *float64        `json:"quality_rating"`                           // nullable, only meaningful when completed
	IssueDate          time.Time       `gorm:"not null" json:"issue_date"`
	AcknowledgmentDate *time.Time      `json:"acknowledgment_date"` // nullable, set when the vendor acknowledges
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the PurchaseOrder model
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// ResponseTimeMinutes returns the elapsed minutes between the issue date and
// the acknowledgment date, or 0 if the order has not been acknowledged.
// An acknowledgment earlier than the issue date yields a negative value; the
// result is deliberately not clamped.
func (po *PurchaseOrder) ResponseTimeMinutes() float64 {
	if po.AcknowledgmentDate == nil {
		return 0
	}
	return po.AcknowledgmentDate.Sub(po.IssueDate).Minutes()
}
