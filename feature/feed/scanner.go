package feed

import (
	"context"
	"fmt"
	"strings"

	"photofeed/core/storage"

	"github.com/minio/minio-go/v7"
)

// Scanner enumerates the upload folder and filters it to image objects.
type Scanner struct {
	client storage.Client
	bucket string
}

// NewScanner creates a folder scanner for the given bucket.
func NewScanner(client storage.Client, bucket string) *Scanner {
	return &Scanner{client: client, bucket: bucket}
}

// ListImages enumerates all objects directly under the folder prefix in one
// pass and yields those whose content type begins with image/. The layout is
// flat: sub-prefixes are not descended into. Every call re-enumerates from
// the backend.
func (s *Scanner) ListImages(ctx context.Context, folder string) ([]Object, error) {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %q: %w", s.bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %q: %w", s.bucket, ErrFolderNotFound)
	}

	objects := []Object{}
	ch := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:       folder,
		Recursive:    false,
		WithMetadata: true,
	})
	for info := range ch {
		if info.Err != nil {
			if minio.ToErrorResponse(info.Err).Code == "NoSuchBucket" {
				return nil, fmt.Errorf("folder %q: %w", folder, ErrFolderNotFound)
			}
			return nil, fmt.Errorf("failed to list folder %q: %w", folder, info.Err)
		}
		// Common prefixes and the folder marker itself
		if strings.HasSuffix(info.Key, "/") {
			continue
		}
		if !strings.HasPrefix(info.ContentType, "image/") {
			continue
		}
		objects = append(objects, Object{ID: info.Key, MimeType: info.ContentType})
	}
	return objects, nil
}
