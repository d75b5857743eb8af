package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/kendall-kelly/ecom-reports/models"
	"github.com/kendall-kelly/ecom-reports/services"
	"github.com/kendall-kelly/ecom-reports/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns its stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func commandEnv(t *testing.T) string {
	t.Helper()
	testutil.MustSetTestEnvironment(t)

	dir := t.TempDir()
	t.Setenv("DATABASE_URL", filepath.Join(dir, "ecom.db"))
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("AWS_S3_BUCKET", "")
	return dir
}

func TestLoadAndReportCommands(t *testing.T) {
	dir := commandEnv(t)
	dataDir := filepath.Join(dir, "data")
	require.NoError(t, os.Mkdir(dataDir, 0755))
	testutil.WriteFiles(t, dataDir, testutil.CSVFiles(testutil.StoreDataset()))

	out, err := execute(t, "load", "--data-dir", dataDir, "--fresh")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Inserted records")
	assert.Regexp(t, `customers\s+3 rows`, out)
	assert.Regexp(t, `order_items\s+7 rows`, out)
	assert.Regexp(t, `total\s+23 rows`, out)

	reportDir := filepath.Join(dir, "reports")
	out, err = execute(t, "report", "--out", reportDir, "--publish=false")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Report statistics")
	assert.Contains(t, out, "Sample row 6")

	for _, name := range []string{services.ReportCSV, services.ReportPDF, services.ReportDOCX, services.StatusChartPNG, services.ProductsChartPNG} {
		info, err := os.Stat(filepath.Join(reportDir, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}
}

func TestLoadCommandSchemaMismatch(t *testing.T) {
	dir := commandEnv(t)
	dataDir := filepath.Join(dir, "data")
	require.NoError(t, os.Mkdir(dataDir, 0755))

	files := testutil.CSVFiles(testutil.StoreDataset())
	files["orders.csv"] = "order_id,customer_id,order_date\n1,1,2024-03-05\n"
	testutil.WriteFiles(t, dataDir, files)

	_, err := execute(t, "load", "--data-dir", dataDir, "--fresh")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrSchemaMismatch)
}

func TestReportCommandPublishRequiresBucket(t *testing.T) {
	dir := commandEnv(t)

	_, err := execute(t, "report", "--out", filepath.Join(dir, "reports"), "--publish")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AWS_S3_BUCKET")
}

func TestReportCommandEmptyStore(t *testing.T) {
	dir := commandEnv(t)

	// no tables yet: the fact query cannot run
	_, err := execute(t, "report", "--out", filepath.Join(dir, "reports"), "--publish=false")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrStorageUnavailable)
}
