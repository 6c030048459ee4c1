package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vendormetrics/vendor-performance-api/config"
	"github.com/vendormetrics/vendor-performance-api/models"
	"github.com/vendormetrics/vendor-performance-api/services"
)

// CreatePurchaseOrderRequest represents the request body for creating a
// purchase order. The vendor is referenced by code, not internal ID; an
// unknown code creates the vendor.
type CreatePurchaseOrderRequest struct {
	PONumber           string          `json:"po_number" binding:"required"`
	VendorCode         string          `json:"vendor_code" binding:"required"`
	OrderDate          time.Time       `json:"order_date" binding:"required"`
	DeliveryDate       time.Time       `json:"delivery_date" binding:"required"`
	Items              json.RawMessage `json:"items" binding:"required"`
	Quantity           int             `json:"quantity" binding:"required,gt=0"`
	Status             string          `json:"status" binding:"required,oneof=pending completed delivered cancelled"`
	QualityRating      *float64        `json:"quality_rating" binding:"omitempty"`
	IssueDate          time.Time       `json:"issue_date" binding:"required"`
	AcknowledgmentDate *time.Time      `json:"acknowledgment_date" binding:"omitempty"`
}

// UpdatePurchaseOrderRequest represents the request body for a full update
// of a purchase order. The owning vendor cannot be reassigned.
type UpdatePurchaseOrderRequest struct {
	PONumber           string          `json:"po_number" binding:"required"`
	OrderDate          time.Time       `json:"order_date" binding:"required"`
	DeliveryDate       time.Time       `json:"delivery_date" binding:"required"`
	Items              json.RawMessage `json:"items" binding:"required"`
	Quantity           int             `json:"quantity" binding:"required,gt=0"`
	Status             string          `json:"status" binding:"required,oneof=pending completed delivered cancelled"`
	QualityRating      *float64        `json:"quality_rating" binding:"omitempty"`
	IssueDate          time.Time       `json:"issue_date" binding:"required"`
	AcknowledgmentDate *time.Time      `json:"acknowledgment_date" binding:"omitempty"`
}

// ListPurchaseOrders handles GET /api/v1/purchase_orders - lists purchase
// orders, optionally filtered by the vendor_id query parameter
func ListPurchaseOrders(c *gin.Context) {
	db := config.GetDB()

	query := db.Order("id")
	if vendorID := c.Query("vendor_id"); vendorID != "" {
		query = query.Where("vendor_id = ?", vendorID)
	}

	var orders []models.PurchaseOrder
	if err := query.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list purchase orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// CreatePurchaseOrder handles POST /api/v1/purchase_orders - creates a new
// purchase order, resolving the vendor by code (get-or-create). The order
// write and the owning vendor's metric recomputation commit in the same
// transaction.
func CreatePurchaseOrder(c *gin.Context) {
	var req CreatePurchaseOrderRequest
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
	vendor, err := services.GetOrCreateVendorByCode(db, req.VendorCode, models.Vendor{})
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

	order := models.PurchaseOrder{
		PONumber:           req.PONumber,
		VendorID:           vendor.ID,
		OrderDate:          req.OrderDate,
		DeliveryDate:       req.DeliveryDate,
		Items:              req.Items,
		Quantity:           req.Quantity,
		Status:             req.Status,
		QualityRating:      req.QualityRating,
		IssueDate:          req.IssueDate,
		AcknowledgmentDate: req.AcknowledgmentDate,
	}

	if err := services.SavePurchaseOrder(db, &order); err != nil {
		if services.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PO_NUMBER_EXISTS",
					"message": "A purchase order with this PO number already exists",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create purchase order",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// GetPurchaseOrder handles GET /api/v1/purchase_orders/:id - retrieves a
// single purchase order
func GetPurchaseOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var order models.PurchaseOrder
	if err := db.First(&order, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PO_NOT_FOUND",
				"message": "Purchase order not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdatePurchaseOrder handles PUT /api/v1/purchase_orders/:id - full update
// of a purchase order, followed by metric recomputation in the same
// transaction
func UpdatePurchaseOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdatePurchaseOrderRequest
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
	var order models.PurchaseOrder
	if err := db.First(&order, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PO_NOT_FOUND",
				"message": "Purchase order not found",
			},
		})
		return
	}

	order.PONumber = req.PONumber
	order.OrderDate = req.OrderDate
	order.DeliveryDate = req.DeliveryDate
	order.Items = req.Items
	order.Quantity = req.Quantity
	order.Status = req.Status
	order.QualityRating = req.QualityRating
	order.IssueDate = req.IssueDate
	order.AcknowledgmentDate = req.AcknowledgmentDate

	if err := services.SavePurchaseOrder(db, &order); err != nil {
		if services.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PO_NUMBER_EXISTS",
					"message": "A purchase order with this PO number already exists",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update purchase order",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// DeletePurchaseOrder handles DELETE /api/v1/purchase_orders/:id - deletes a
// purchase order and recomputes the owning vendor's metrics
func DeletePurchaseOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var order models.PurchaseOrder
	if err := db.First(&order, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PO_NOT_FOUND",
				"message": "Purchase order not found",
			},
		})
		return
	}

	if err := services.DeletePurchaseOrder(db, &order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete purchase order",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Purchase order deleted",
	})
}

// GetAcknowledgment handles GET /api/v1/purchase_orders/:id/acknowledge -
// returns the order's acknowledgment date, or a 400 error when none is set
func GetAcknowledgment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var order models.PurchaseOrder
	if err := db.First(&order, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PO_NOT_FOUND",
				"message": "Purchase order not found",
			},
		})
		return
	}

	if order.AcknowledgmentDate == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ACKNOWLEDGMENT_NOT_SET",
				"message": "Acknowledgment date is not available",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"acknowledgment_date": order.AcknowledgmentDate,
		},
	})
}
