package testutil

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vendormetrics/vendor-performance-api/config"
	"github.com/vendormetrics/vendor-performance-api/models"
)

// RequireTestEnvironment ensures that tests are running in the test environment.
// This prevents accidental execution of tests against production or development databases.
// It will fail the test immediately if GO_ENV is not set to "test".
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env != "test" {
		t.Fatalf("SAFETY CHECK FAILED: Tests must run with GO_ENV=test to prevent data loss. Current GO_ENV=%q. Set GO_ENV=test before running tests.", env)
	}
}

// MustSetTestEnvironment sets GO_ENV to test and fails if it cannot be set.
// Use this in TestMain or suite setup functions.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	if err := os.Setenv("GO_ENV", "test"); err != nil {
		t.Fatalf("Failed to set GO_ENV=test: %v", err)
	}

	if os.Getenv("GO_ENV") != "test" {
		t.Fatal("Failed to verify GO_ENV=test")
	}
}

// SetupTestDatabase opens an in-memory SQLite database, runs the full
// migration set, and installs it as the global handle so handlers pick
// it up. Connections are capped at one because the recalculation path
// issues concurrent writes.
func SetupTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to access underlying sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Vendor{},
		&models.PurchaseOrder{},
		&models.HistoricalPerformance{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	return db
}

// NewTestVendor returns an unsaved vendor fixture with the given code
func NewTestVendor(code string) models.Vendor {
	return models.Vendor{
		Name:           "Vendor " + code,
		ContactDetails: code + "@example.com",
		Address:        "1 Supply Street",
		VendorCode:     code,
	}
}

// NewTestOrder returns an unsaved purchase order fixture for the vendor
func NewTestOrder(poNumber string, vendorID uint, status string) models.PurchaseOrder {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return models.PurchaseOrder{
		PONumber:     poNumber,
		VendorID:     vendorID,
		OrderDate:    now,
		DeliveryDate: now.AddDate(0, 0, 7),
		Items:        []byte(`[{"sku":"widget","qty":5}]`),
		Quantity:     5,
		Status:       status,
		IssueDate:    now,
	}
}

// PrintEnvironmentInfo prints the current test environment configuration.
// Useful for debugging test environment issues.
func PrintEnvironmentInfo() {
	fmt.Printf("Test Environment Info:\n")
	fmt.Printf("  GO_ENV: %s\n", os.Getenv("GO_ENV"))
	fmt.Printf("  DATABASE_URL: %s\n", maskDatabaseURL(os.Getenv("DATABASE_URL")))
	fmt.Printf("  PORT: %s\n", os.Getenv("PORT"))
}

// maskDatabaseURL masks sensitive parts of the database URL for safe printing
func maskDatabaseURL(url string) string {
	if url == "" {
		return "(not set)"
	}
	if len(url) > 20 {
		suffix := " [WARNING: may not be test DB]"
		if strings.Contains(url, "test") {
			suffix = " [contains 'test']"
		}
		return url[:20] + "..." + suffix
	}
	return url
}
