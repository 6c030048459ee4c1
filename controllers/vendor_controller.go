package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vendormetrics/vendor-performance-api/config"
	"github.com/vendormetrics/vendor-performance-api/models"
	"github.com/vendormetrics/vendor-performance-api/services"
)

// CreateVendorRequest represents the request body for creating a vendor
type CreateVendorRequest struct {
	Name           string `json:"name" binding:"required"`
	ContactDetails string `json:"contact_details" binding:"omitempty"`
	Address        string `json:"address" binding:"omitempty"`
	VendorCode     string `json:"vendor_code" binding:"required"`
}

// UpdateVendorRequest represents the request body for updating a vendor.
// The derived metric fields are deliberately absent: they are recomputed
// from order data and never user-edited.
type UpdateVendorRequest struct {
	Name           string `json:"name" binding:"omitempty"`
	ContactDetails string `json:"contact_details" binding:"omitempty"`
	Address        string `json:"address" binding:"omitempty"`
	VendorCode     string `json:"vendor_code" binding:"omitempty"`
}

// parseIDParam parses the numeric :id URL parameter. On failure it writes a
// 400 response and returns false.
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "ID must be a positive integer",
			},
		})
		return 0, false
	}
	return uint(id), true
}

// ListVendors handles GET /api/v1/vendors - lists all vendors
func ListVendors(c *gin.Context) {
	db := config.GetDB()

	var vendors []models.Vendor
	if err := db.Order("id").Find(&vendors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list vendors",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    vendors,
	})
}

// CreateVendor handles POST /api/v1/vendors - creates a new vendor
func CreateVendor(c *gin.Context) {
	var req CreateVendorRequest
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

	vendor := models.Vendor{
		Name:           req.Name,
		ContactDetails: req.ContactDetails,
		Address:        req.Address,
		VendorCode:     req.VendorCode,
	}

	db := config.GetDB()
	if err := db.Create(&vendor).Error; err != nil {
		if services.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VENDOR_CODE_EXISTS",
					"message": "A vendor with this vendor code already exists",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create vendor",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    vendor,
	})
}

// GetVendor handles GET /api/v1/vendors/:id - retrieves a single vendor
func GetVendor(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    vendor,
	})
}

// UpdateVendor handles PUT /api/v1/vendors/:id - updates a vendor's display
// data. Submitting the vendor's current code is a no-op on the uniqueness
// check; any other duplicate code is rejected.
func UpdateVendor(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateVendorRequest
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

	// Update fields if provided
	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.ContactDetails != "" {
		updates["contact_details"] = req.ContactDetails
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if req.VendorCode != "" && req.VendorCode != vendor.VendorCode {
		updates["vendor_code"] = req.VendorCode
	}

	// If no fields to update, return current vendor
	if len(updates) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    vendor,
		})
		return
	}

	if err := db.Model(&vendor).Updates(updates).Error; err != nil {
		if services.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VENDOR_CODE_EXISTS",
					"message": "A vendor with this vendor code already exists",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update vendor",
			},
		})
		return
	}

	// Fetch updated vendor to return
	if err := db.First(&vendor, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch updated vendor",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    vendor,
	})
}

// DeleteVendor handles DELETE /api/v1/vendors/:id - deletes a vendor and
// cascades deletion of its purchase orders and performance snapshots
func DeleteVendor(c *gin.Context) {
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

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vendor_id = ?", id).Delete(&models.PurchaseOrder{}).Error; err != nil {
			return err
		}
		if err := tx.Where("vendor_id = ?", id).Delete(&models.HistoricalPerformance{}).Error; err != nil {
			return err
		}
		return tx.Delete(&vendor).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete vendor",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Vendor deleted",
	})
}
