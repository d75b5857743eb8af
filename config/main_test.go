package config

import (
	"fmt"
	"os"
	"testing"

	"github.com/kendall-kelly/ecom-reports/tests/testutil"
)

// TestMain refuses to run the config tests outside GO_ENV=test, since they
// load .env.<GO_ENV> files from the working directory.
func TestMain(m *testing.M) {
	if err := testutil.CheckTestEnvironment(); err != nil {
		fmt.Fprintf(os.Stderr, "config tests: %v\n", err)
		os.Exit(1)
	}
	os.Exit(m.Run())
}
