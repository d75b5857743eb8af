package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/ecom-reports/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// newTestRouter builds the full router over a seeded in-memory store
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewMigratedDB(t)
	testutil.Seed(t, db, testutil.StoreDataset())

	router, err := setupRouter(routerDeps{
		db:          db,
		reportDir:   t.TempDir(),
		timeout:     5 * time.Second,
		corsOrigins: []string{"*"},
	})
	require.NoError(t, err)
	return router
}

// TestHealthEndpointIntegration tests the /api/v1/health endpoint with full routing
func TestHealthEndpointIntegration(t *testing.T) {
	router := newTestRouter(t)

	req, _ := http.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "Expected status 200 OK")

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err, "Response should be valid JSON")
	assert.Equal(t, true, response["success"])
	assert.Equal(t, "E-commerce reports API is running", response["message"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

// TestHealthEndpointMethod tests that only GET method is allowed
func TestHealthEndpointMethod(t *testing.T) {
	router := newTestRouter(t)

	for _, method := range []string{"POST", "PUT", "DELETE"} {
		req, _ := http.NewRequest(method, "/api/v1/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code, "%s should not be allowed", method)
	}
}

// TestAPIV1Prefix tests that the endpoints require the /api/v1 prefix
func TestAPIV1Prefix(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/health", "/summary", "/shipping_status"} {
		req, _ := http.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code, "%s should require /api/v1 prefix", path)
	}
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t)

	req, _ := http.NewRequest("OPTIONS", "/api/v1/summary", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

// ReportAPISuite exercises every dashboard endpoint against one seeded store
type ReportAPISuite struct {
	suite.Suite
	db        *gorm.DB
	router    *gin.Engine
	reportDir string
}

func (s *ReportAPISuite) SetupTest() {
	testutil.MustSetTestEnvironment(s.T())
	gin.SetMode(gin.TestMode)

	s.db = testutil.NewMigratedDB(s.T())
	testutil.Seed(s.T(), s.db, testutil.StoreDataset())
	s.reportDir = s.T().TempDir()

	router, err := setupRouter(routerDeps{
		db:          s.db,
		reportDir:   s.reportDir,
		timeout:     5 * time.Second,
		corsOrigins: []string{"*"},
	})
	s.Require().NoError(err)
	s.router = router
}

func (s *ReportAPISuite) get(path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest("GET", path, nil))

	var body map[string]interface{}
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w, body
}

func (s *ReportAPISuite) TestDashboardPage() {
	w, _ := s.get("/")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "₹111,500.00")
	s.Contains(w.Body.String(), "Unique Orders")
}

func (s *ReportAPISuite) TestDatabaseStatus() {
	w, body := s.get("/api/v1/database/status")
	s.Equal(http.StatusOK, w.Code)
	s.Empty(body["missing"])
}

func (s *ReportAPISuite) TestSummary() {
	w, body := s.get("/api/v1/summary")
	s.Require().Equal(http.StatusOK, w.Code)

	data := body["data"].(map[string]interface{})
	s.Equal(float64(6), data["total_records"])
	s.Equal(float64(4), data["total_orders"])
	s.Equal(111500.0, data["total_revenue"])
}

func (s *ReportAPISuite) TestEveryAggregateEndpoint() {
	for _, path := range []string{
		"/api/v1/shipping_status",
		"/api/v1/top_products",
		"/api/v1/category_sales",
		"/api/v1/city_orders",
		"/api/v1/payment_methods",
		"/api/v1/courier_performance",
		"/api/v1/recent_orders",
	} {
		w, body := s.get(path)
		s.Equal(http.StatusOK, w.Code, path)
		s.Equal(true, body["success"], path)
		s.NotEmpty(body["data"], path)
	}
}

func (s *ReportAPISuite) TestCourierPerformance() {
	_, body := s.get("/api/v1/courier_performance")

	traces := body["data"].(map[string]interface{})["data"].([]interface{})
	s.Require().Len(traces, 2)
	total := traces[0].(map[string]interface{})
	delivered := traces[1].(map[string]interface{})

	// BlueDart: orders 1 and 3, three rows, all delivered; Delhivery: orders 2 and 4, three rows
	s.Equal([]interface{}{"BlueDart", "Delhivery"}, total["x"])
	s.Equal([]interface{}{3.0, 3.0}, total["y"])
	s.Equal([]interface{}{3.0, 0.0}, delivered["y"])
}

func (s *ReportAPISuite) TestStoreGoesAway() {
	s.Require().NoError(s.db.Migrator().DropTable("shipping"))

	w, body := s.get("/api/v1/top_products")
	s.Equal(http.StatusServiceUnavailable, w.Code)
	s.Equal("STORAGE_UNAVAILABLE", body["error"].(map[string]interface{})["code"])
}

func (s *ReportAPISuite) TestDownloadReport() {
	s.Require().NoError(os.WriteFile(filepath.Join(s.reportDir, "ecommerce_report.csv"), []byte("customer_name\n"), 0644))

	w, body := s.get("/api/v1/reports")
	s.Equal(http.StatusOK, w.Code)
	s.Len(body["data"], 1)

	w, _ = s.get("/api/v1/reports/ecommerce_report.csv")
	s.Equal(http.StatusOK, w.Code)
	s.Equal("customer_name\n", w.Body.String())

	w, _ = s.get("/api/v1/reports/main.go")
	s.Equal(http.StatusBadRequest, w.Code)
}

func TestReportAPISuite(t *testing.T) {
	suite.Run(t, new(ReportAPISuite))
}
