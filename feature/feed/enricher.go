package feed

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"path"
	"strings"
	"time"

	"photofeed/core/metrics"
	"photofeed/core/storage"
	"photofeed/core/utils"

	"github.com/disintegration/imaging"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	// imaging registers jpeg/png/gif/bmp/tiff; webp needs explicit registration
	_ "golang.org/x/image/webp"
)

// Enricher resolves the canonical metadata record for a discovered object.
type Enricher struct {
	client   storage.Client
	bucket   string
	cfg      Config
	download storage.Config
	logger   *zap.Logger
	now      func() time.Time
}

// NewEnricher creates a metadata enricher. downloadCfg is used to build
// public download URLs and should already have the public endpoint applied.
func NewEnricher(client storage.Client, downloadCfg storage.Config, cfg Config, logger *zap.Logger) *Enricher {
	return &Enricher{
		client:   client,
		bucket:   downloadCfg.Bucket,
		cfg:      cfg,
		download: downloadCfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Enrich builds the index entry for an object. The primary path stats the
// object, probes dimensions, and renders a thumbnail; if the stat itself
// fails, a minimal record is returned instead. Both paths always yield a
// valid entry; this never fails past its own boundary.
func (e *Enricher) Enrich(ctx context.Context, id, fallbackMime string) Entry {
	info, err := e.client.StatObject(ctx, e.bucket, id, minio.StatObjectOptions{})
	if err != nil {
		metrics.EnrichFallbacks.Inc()
		e.logger.Warn("Metadata fetch failed, indexing with minimal record",
			zap.String("id", id),
			zap.Error(err))
		return e.minimalEntry(id, fallbackMime)
	}

	entry := Entry{
		ID:        id,
		MimeType:  info.ContentType,
		URL:       storage.PublicURL(e.download, id),
		CreatedAt: e.createdAt(info.LastModified),
	}
	if entry.MimeType == "" {
		entry.MimeType = fallbackMime
	}

	blob := e.fetchBlob(ctx, id, info.Size)
	entry.Width, entry.Height = resolveDimensions(blob, info.UserMetadata)

	entry.ThumbURL = entry.URL
	if thumbURL, err := e.renderThumbnail(ctx, id, blob); err != nil {
		e.logger.Warn("Thumbnail rendering failed, linking full image",
			zap.String("id", id),
			zap.Error(err))
	} else if thumbURL != "" {
		entry.ThumbURL = thumbURL
	}

	return entry
}

// minimalEntry is the degraded path: identity, fallback content type,
// synthesized links, unknown dimensions, enrichment wall clock.
func (e *Enricher) minimalEntry(id, fallbackMime string) Entry {
	url := storage.PublicURL(e.download, id)
	return Entry{
		ID:        id,
		MimeType:  fallbackMime,
		ThumbURL:  url,
		URL:       url,
		CreatedAt: e.now().UTC().Format(time.RFC3339),
	}
}

func (e *Enricher) createdAt(lastModified time.Time) string {
	if lastModified.IsZero() {
		return e.now().UTC().Format(time.RFC3339)
	}
	return lastModified.UTC().Format(time.RFC3339)
}

// fetchBlob downloads the object content for decoding, or nil when the
// object is too large or the download fails. Decoding is an enhancement,
// not a requirement.
func (e *Enricher) fetchBlob(ctx context.Context, id string, size int64) []byte {
	if e.cfg.MaxDecodeBytes > 0 && size > e.cfg.MaxDecodeBytes {
		return nil
	}
	reader, err := e.client.GetObject(ctx, e.bucket, id, minio.GetObjectOptions{})
	if err != nil {
		return nil
	}
	defer reader.Close()

	limit := e.cfg.MaxDecodeBytes
	if limit <= 0 {
		limit = 32 << 20
	}
	data, err := io.ReadAll(io.LimitReader(reader, limit))
	if err != nil {
		return nil
	}
	return data
}

// renderThumbnail decodes the blob, fits it into the configured bounding box
// and uploads the result as JPEG under the thumbnail prefix. An empty blob
// yields ("", nil): nothing rendered, nothing failed.
func (e *Enricher) renderThumbnail(ctx context.Context, id string, blob []byte) (string, error) {
	if len(blob) == 0 {
		return "", nil
	}
	img, err := imaging.Decode(bytes.NewReader(blob), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	size := e.cfg.ThumbSize
	if size <= 0 {
		size = 320
	}
	thumb := imaging.Fit(img, size, size, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	key := e.thumbKey(id)
	_, err = e.client.PutObject(ctx, e.bucket, key,
		bytes.NewReader(buf.Bytes()), int64(buf.Len()),
		minio.PutObjectOptions{ContentType: "image/jpeg"})
	if err != nil {
		return "", fmt.Errorf("failed to upload thumbnail: %w", err)
	}
	return storage.PublicURL(e.download, key), nil
}

func (e *Enricher) thumbKey(id string) string {
	flat := strings.ReplaceAll(id, "/", "_")
	ext := path.Ext(flat)
	return e.cfg.ThumbPrefix + strings.TrimSuffix(flat, ext) + ".jpg"
}

// resolveDimensions resolves width/height through ordered fallbacks: decode
// the blob header, then trust upload metadata, then give up (null).
func resolveDimensions(blob []byte, meta map[string]string) (*int, *int) {
	strategies := []func() (int, int, bool){
		func() (int, int, bool) { return dimsFromBlob(blob) },
		func() (int, int, bool) { return dimsFromMetadata(meta) },
	}
	for _, resolve := range strategies {
		if w, h, ok := resolve(); ok {
			return &w, &h
		}
	}
	return nil, nil
}

func dimsFromBlob(blob []byte) (int, int, bool) {
	if len(blob) == 0 {
		return 0, 0, false
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(blob))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, false
	}
	return cfg.Width, cfg.Height, true
}

// dimsFromMetadata reads width/height hints some uploaders attach as user
// metadata (x-amz-meta-width / x-amz-meta-height).
func dimsFromMetadata(meta map[string]string) (int, int, bool) {
	w := utils.ToInt(metaValue(meta, "width"))
	h := utils.ToInt(metaValue(meta, "height"))
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

func metaValue(meta map[string]string, key string) string {
	for k, v := range meta {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}
