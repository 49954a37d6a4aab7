package feed_test

import (
	"context"
	"testing"

	"photofeed/core/storage/mocks"
	"photofeed/feature/feed"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func listing(infos ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(infos))
	for _, info := range infos {
		ch <- info
	}
	close(ch)
	return ch
}

func TestScannerListImages(t *testing.T) {
	ctx := context.Background()

	t.Run("FiltersToImages", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "photos").Return(true, nil)
		client.On("ListObjects", mock.Anything, "photos", mock.Anything).Return(listing(
			minio.ObjectInfo{Key: "uploads/cat.jpg", ContentType: "image/jpeg"},
			minio.ObjectInfo{Key: "uploads/readme.txt", ContentType: "text/plain"},
			minio.ObjectInfo{Key: "uploads/dog.png", ContentType: "image/png"},
			minio.ObjectInfo{Key: "uploads/unknown.bin"},
			minio.ObjectInfo{Key: "uploads/nested/"},
		))

		objects, err := feed.NewScanner(client, "photos").ListImages(ctx, "uploads/")
		require.NoError(t, err)

		require.Len(t, objects, 2)
		assert.Equal(t, "uploads/cat.jpg", objects[0].ID)
		assert.Equal(t, "image/jpeg", objects[0].MimeType)
		assert.Equal(t, "uploads/dog.png", objects[1].ID)
	})

	t.Run("EmptyFolder", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "photos").Return(true, nil)
		client.On("ListObjects", mock.Anything, "photos", mock.Anything).Return(listing())

		objects, err := feed.NewScanner(client, "photos").ListImages(ctx, "uploads/")
		require.NoError(t, err)
		assert.Empty(t, objects)
	})

	t.Run("MissingBucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "photos").Return(false, nil)

		_, err := feed.NewScanner(client, "photos").ListImages(ctx, "uploads/")
		assert.ErrorIs(t, err, feed.ErrFolderNotFound)
	})

	t.Run("StreamError", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "photos").Return(true, nil)
		client.On("ListObjects", mock.Anything, "photos", mock.Anything).Return(listing(
			minio.ObjectInfo{Key: "uploads/cat.jpg", ContentType: "image/jpeg"},
			minio.ObjectInfo{Err: minio.ErrorResponse{Code: "NoSuchBucket"}},
		))

		_, err := feed.NewScanner(client, "photos").ListImages(ctx, "uploads/")
		assert.ErrorIs(t, err, feed.ErrFolderNotFound)
	})
}
