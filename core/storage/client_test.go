package storage_test

import (
	"testing"

	"photofeed/core/storage"

	"github.com/stretchr/testify/assert"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
			Bucket:    "test-bucket",
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTP", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "http://localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestPublicURL(t *testing.T) {
	t.Run("BareEndpoint", func(t *testing.T) {
		cfg := storage.Config{Endpoint: "localhost:9000", Bucket: "photos"}
		url := storage.PublicURL(cfg, "uploads/cat.jpg")
		assert.Equal(t, "http://localhost:9000/photos/uploads/cat.jpg", url)
	})

	t.Run("SSL", func(t *testing.T) {
		cfg := storage.Config{Endpoint: "s3.example.com", Bucket: "photos", UseSSL: true}
		url := storage.PublicURL(cfg, "uploads/cat.jpg")
		assert.Equal(t, "https://s3.example.com/photos/uploads/cat.jpg", url)
	})

	t.Run("SchemeAlreadyPresent", func(t *testing.T) {
		cfg := storage.Config{Endpoint: "https://cdn.example.com/", Bucket: "photos"}
		url := storage.PublicURL(cfg, "uploads/cat.jpg")
		assert.Equal(t, "https://cdn.example.com/photos/uploads/cat.jpg", url)
	})

	t.Run("PublicEndpointOverride", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:       "localhost:9000",
			PublicEndpoint: "https://cdn.example.com",
			Bucket:         "photos",
		}
		url := storage.PublicURL(cfg.DownloadConfig(), "uploads/cat.jpg")
		assert.Equal(t, "https://cdn.example.com/photos/uploads/cat.jpg", url)
	})
}
