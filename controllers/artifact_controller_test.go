package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupArtifactRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	ac := NewArtifactController(dir)
	router := gin.New()
	router.GET("/reports", ac.List)
	router.GET("/reports/:filename", ac.Get)
	return router, dir
}

func TestGetArtifact_Success(t *testing.T) {
	router, dir := setupArtifactRouter(t)

	content := []byte("%PDF-1.3 fake")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ecommerce_report.pdf"), content, 0644))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/reports/ecommerce_report.pdf", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="ecommerce_report.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, content, w.Body.Bytes())
}

func TestGetArtifact_ImageInline(t *testing.T) {
	router, dir := setupArtifactRouter(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "top_products_chart.png"), []byte("png"), 0644))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/reports/top_products_chart.png", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Empty(t, w.Header().Get("Content-Disposition"))
}

func TestGetArtifact_FileNotFound(t *testing.T) {
	router, _ := setupArtifactRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/reports/ecommerce_report.docx", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "FILE_NOT_FOUND")
	assert.Contains(t, w.Body.String(), "Report file not found")
}

func TestGetArtifact_InvalidRequests(t *testing.T) {
	router, _ := setupArtifactRouter(t)

	tests := []struct {
		name         string
		path         string
		expectedCode string
	}{
		{"disallowed extension", "/reports/secrets.txt", "INVALID_FILE_FORMAT"},
		{"dot file", "/reports/.env", "INVALID_FILENAME"},
		{"encoded traversal", "/reports/..%5Cconfig.csv", "INVALID_FILENAME"},
		{"double dot", "/reports/..report.csv", "INVALID_FILENAME"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("GET", tt.path, nil))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedCode)
		})
	}
}

func TestListArtifacts(t *testing.T) {
	router, dir := setupArtifactRouter(t)
	for _, name := range []string{"ecommerce_report.pdf", "ecommerce_report.csv", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "old.csv"), 0755))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/reports", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool           `json:"success"`
		Data    []ArtifactInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, []ArtifactInfo{
		{Name: "ecommerce_report.csv", Size: 1, URL: "/api/v1/reports/ecommerce_report.csv"},
		{Name: "ecommerce_report.pdf", Size: 1, URL: "/api/v1/reports/ecommerce_report.pdf"},
	}, body.Data)
}

func TestListArtifacts_MissingDirectory(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/reports", NewArtifactController(filepath.Join(t.TempDir(), "none")).List)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/reports", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())
}
