package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"photofeed/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Store persists the index as a single JSON array document in the bucket.
// The document is always read fully and written fully.
type Store struct {
	client storage.Client
	bucket string
	object string
	logger *zap.Logger
}

// NewStore creates an index store over the given document object.
func NewStore(client storage.Client, bucket, object string, logger *zap.Logger) *Store {
	return &Store{client: client, bucket: bucket, object: object, logger: logger}
}

// Load reads and parses the persisted index. A missing document yields an
// empty index; a malformed one is logged and treated as empty rather than
// failing the pass. Transport failures are returned so callers abort without
// persisting over an index they could not read.
func (s *Store) Load(ctx context.Context) ([]Entry, error) {
	reader, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("failed to open index document: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		if isNoSuchKey(err) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("failed to read index document: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("Index document is corrupt, treating as empty",
			zap.String("object", s.object),
			zap.Error(err))
		return []Entry{}, nil
	}
	return entries, nil
}

// Save serializes the index and overwrites the persisted document.
func (s *Store) Save(ctx context.Context, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, s.object,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to persist index document: %w", err)
	}
	return nil
}

// Clear removes the persisted document. Used for administrative rebuilds;
// a missing document is not an error.
func (s *Store) Clear(ctx context.Context) error {
	err := s.client.RemoveObject(ctx, s.bucket, s.object, minio.RemoveObjectOptions{})
	if err != nil && !isNoSuchKey(err) {
		return fmt.Errorf("failed to remove index document: %w", err)
	}
	return nil
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
