package config

import (
	"fmt"
	"os"
	"testing"
)

// TestMain runs before all tests in the config package.
// It refuses to run outside GO_ENV=test so a stray run can never touch a
// development or production database.
func TestMain(m *testing.M) {
	env := os.Getenv("GO_ENV")
	if env != "test" {
		fmt.Fprintf(os.Stderr, "\nSAFETY CHECK FAILED: tests must run with GO_ENV=test (current GO_ENV=%q).\n"+
			"Run them as: GO_ENV=test go test ./...\n\n", env)
		os.Exit(1)
	}

	// Run tests
	os.Exit(m.Run())
}
