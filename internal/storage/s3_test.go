package storage

import (
	"alcyxob/fitness-tracker/internal/config"
	"alcyxob/fitness-tracker/internal/logger"
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "", endpointURL("", true))
	assert.Equal(t, "https://s3.example.com", endpointURL("s3.example.com", true))
	assert.Equal(t, "http://minio:9000", endpointURL("minio:9000", false))
	assert.Equal(t, "http://minio:9000", endpointURL("http://minio:9000", true))
}

// Presigning is local computation, so no S3 server is needed.
func TestPresignedURLs(t *testing.T) {
	store, err := NewS3Storage(context.Background(), config.S3Config{
		Endpoint:        "minio:9000",
		Region:          "us-east-1",
		AccessKeyID:     "access",
		SecretAccessKey: "secret",
		BucketName:      "covers",
	}, logger.NewNop())
	require.NoError(t, err)

	upload, err := store.GeneratePresignedUploadURL(context.Background(), "programs/p1/cover.jpg", "image/jpeg", 5*time.Minute)
	require.NoError(t, err)
	u, err := url.Parse(upload)
	require.NoError(t, err)
	assert.Equal(t, "http", u.Scheme)
	assert.Equal(t, "minio:9000", u.Host)
	assert.Equal(t, "/covers/programs/p1/cover.jpg", u.Path)
	assert.Equal(t, "300", u.Query().Get("X-Amz-Expires"))

	download, err := store.GeneratePresignedDownloadURL(context.Background(), "programs/p1/cover.jpg", 0)
	require.NoError(t, err)
	u, err = url.Parse(download)
	require.NoError(t, err)
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
}
