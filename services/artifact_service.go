package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kendall-kelly/ecom-reports/utils"
	"go.uber.org/zap"
)

// Artifact is a published report file
type Artifact struct {
	Name string `json:"name"`
	Key  string `json:"key"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

// ArtifactService publishes generated report files to object storage
type ArtifactService interface {
	// Publish validates and uploads the file at path under the run's prefix
	Publish(ctx context.Context, runID, path string) (Artifact, error)

	// Remove deletes a published artifact
	Remove(ctx context.Context, key string) error
}

// S3ArtifactService implements ArtifactService on top of S3
type S3ArtifactService struct {
	s3Service S3Interface
	log       *zap.Logger
}

// NewArtifactService creates an artifact publisher backed by s3Service
func NewArtifactService(s3Service S3Interface, log *zap.Logger) *S3ArtifactService {
	if log == nil {
		log = zap.NewNop()
	}
	return &S3ArtifactService{s3Service: s3Service, log: log}
}

// ArtifactKey is the object key of a run's artifact
func ArtifactKey(runID, name string) string {
	return fmt.Sprintf("reports/%s/%s", runID, name)
}

// Publish uploads the file at path and returns a presigned download URL
func (s *S3ArtifactService) Publish(ctx context.Context, runID, path string) (Artifact, error) {
	name := filepath.Base(path)

	info, err := os.Stat(path)
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to stat artifact: %w", err)
	}
	if err := utils.ValidateArtifact(name, info.Size()); err != nil {
		return Artifact{}, err
	}

	body, err := os.ReadFile(path)
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to read artifact: %w", err)
	}

	key := ArtifactKey(runID, name)
	if err := s.s3Service.UploadFile(ctx, key, utils.ContentType(name), body); err != nil {
		return Artifact{}, fmt.Errorf("failed to publish %s: %w", name, err)
	}

	url, err := s.s3Service.GetPresignedURL(ctx, key)
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to generate artifact URL: %w", err)
	}

	s.log.Info("Published artifact", zap.String("key", key), zap.Int64("size", info.Size()))
	return Artifact{Name: name, Key: key, URL: url, Size: info.Size()}, nil
}

// Remove deletes a published artifact
func (s *S3ArtifactService) Remove(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := s.s3Service.DeleteFile(ctx, key); err != nil {
		return fmt.Errorf("failed to remove artifact: %w", err)
	}
	return nil
}
