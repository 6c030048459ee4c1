package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vendormetrics/vendor-performance-api/config"
	"github.com/vendormetrics/vendor-performance-api/models"
)

// setupTestDB creates an in-memory database with all models migrated and
// installs it as the active database
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&models.Vendor{}, &models.PurchaseOrder{}, &models.HistoricalPerformance{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	return db
}

// setupTestRouter creates a bare Gin router in test mode
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// performRequest executes an HTTP request against the router and returns the
// recorder plus the decoded JSON body
func performRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Response should be valid JSON: %v (body: %s)", err, w.Body.String())
		}
	}

	return w, response
}

// assertErrorCode asserts the standard error envelope with the given code
func assertErrorCode(t *testing.T, response map[string]interface{}, code string) {
	t.Helper()

	success, ok := response["success"].(bool)
	if !ok || success {
		t.Fatalf("Expected error envelope, got: %v", response)
	}
	errorData, ok := response["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected error object, got: %v", response)
	}
	if errorData["code"] != code {
		t.Fatalf("Expected error code %q, got %v", code, errorData["code"])
	}
}
