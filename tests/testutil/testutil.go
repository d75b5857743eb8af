package testutil

import (
	"fmt"
	"os"
	"testing"
)

// CheckTestEnvironment reports an error unless GO_ENV is "test", so suites
// that read .env files or open stores never pick up a real configuration.
func CheckTestEnvironment() error {
	if env := os.Getenv("GO_ENV"); env != "test" {
		return fmt.Errorf("tests must run with GO_ENV=test (current GO_ENV=%q); run: GO_ENV=test go test ./...", env)
	}
	return nil
}

// MustSetTestEnvironment sets GO_ENV to test and fails if it cannot be set.
// Use this in suite setup functions.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	t.Setenv("GO_ENV", "test")
	if err := CheckTestEnvironment(); err != nil {
		t.Fatal(err)
	}
}
