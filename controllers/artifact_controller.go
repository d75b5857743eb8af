package controllers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/ecom-reports/utils"
)

// ArtifactController serves generated report files from a directory
type ArtifactController struct {
	dir string
}

// NewArtifactController creates a controller serving files from dir
func NewArtifactController(dir string) *ArtifactController {
	return &ArtifactController{dir: dir}
}

// ArtifactInfo describes one downloadable report file
type ArtifactInfo struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

// List handles GET /api/v1/reports - lists the generated report files
func (ac *ArtifactController) List(c *gin.Context) {
	entries, err := os.ReadDir(ac.dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to list reports",
			},
		})
		return
	}

	files := []ArtifactInfo{}
	for _, e := range entries {
		if e.IsDir() || utils.ValidateArtifact(e.Name(), 0) != nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, ArtifactInfo{Name: e.Name(), Size: info.Size(), URL: utils.ArtifactURL(e.Name())})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    files,
	})
}

// Get handles GET /api/v1/reports/:filename - serves a generated report file
func (ac *ArtifactController) Get(c *gin.Context) {
	filename := c.Param("filename")

	if filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Filename is required",
			},
		})
		return
	}

	// Validate name and extension before touching the filesystem
	if err := utils.ValidateArtifact(filename, 0); err != nil {
		var artifactErr *utils.ArtifactError
		code := "INVALID_FILENAME"
		if errors.As(err, &artifactErr) {
			code = artifactErr.Code
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	filePath := filepath.Join(ac.dir, filename)
	info, err := os.Stat(filePath)
	if err != nil || info.IsDir() {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_NOT_FOUND",
				"message": "Report file not found",
			},
		})
		return
	}

	c.Header("Content-Type", utils.ContentType(filename))
	if !strings.HasSuffix(strings.ToLower(filename), ".png") {
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	}
	c.Header("Cache-Control", "no-cache")
	c.File(filePath)
}
