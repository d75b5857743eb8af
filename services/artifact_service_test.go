package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kendall-kelly/ecom-reports/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestArtifactKey(t *testing.T) {
	assert.Equal(t, "reports/run-1/ecommerce_report.pdf", ArtifactKey("run-1", "ecommerce_report.pdf"))
}

func TestPublishArtifact(t *testing.T) {
	mock := NewMockS3Service()
	svc := NewArtifactService(mock, nil)
	path := writeArtifact(t, "ecommerce_report.csv", "customer_name\nA\n")

	artifact, err := svc.Publish(context.Background(), "run-1", path)
	require.NoError(t, err)

	assert.Equal(t, "ecommerce_report.csv", artifact.Name)
	assert.Equal(t, "reports/run-1/ecommerce_report.csv", artifact.Key)
	assert.Equal(t, int64(len("customer_name\nA\n")), artifact.Size)
	assert.Contains(t, artifact.URL, "reports/run-1/ecommerce_report.csv")

	assert.Equal(t, []byte("customer_name\nA\n"), mock.GetUploadedFiles()[artifact.Key])
	assert.Equal(t, "text/csv; charset=utf-8", mock.ContentTypeOf(artifact.Key))

	require.NoError(t, svc.Remove(context.Background(), artifact.Key))
	assert.False(t, mock.FileExists(artifact.Key))
}

func TestPublishArtifactRejectsUnknownFormat(t *testing.T) {
	mock := NewMockS3Service()
	path := writeArtifact(t, "notes.txt", "hello")

	_, err := NewArtifactService(mock, nil).Publish(context.Background(), "run-1", path)

	var artifactErr *utils.ArtifactError
	require.True(t, errors.As(err, &artifactErr))
	assert.Equal(t, "INVALID_FILE_FORMAT", artifactErr.Code)
	assert.Empty(t, mock.GetUploadedFiles())
}

func TestPublishArtifactMissingFile(t *testing.T) {
	_, err := NewArtifactService(NewMockS3Service(), nil).Publish(context.Background(), "run-1", filepath.Join(t.TempDir(), "gone.pdf"))
	assert.Error(t, err)
}

func TestPublishArtifactUploadFailure(t *testing.T) {
	mock := NewMockS3Service()
	mock.UploadErr = errors.New("access denied")
	path := writeArtifact(t, "ecommerce_report.pdf", "%PDF-")

	_, err := NewArtifactService(mock, nil).Publish(context.Background(), "run-1", path)
	assert.ErrorIs(t, err, mock.UploadErr)
}
