package feed

// Config holds configuration for the photo feed reconciliation.
type Config struct {
	// Folder is the default storage prefix scanned for uploads. The value in
	// the property store takes precedence when set.
	Folder string `mapstructure:"folder" default:""`
	// IndexObject is the object key of the persisted index document.
	IndexObject string `mapstructure:"index_object" default:"index/feed.json"`
	// ThumbPrefix is the object prefix rendered thumbnails are stored under.
	ThumbPrefix string `mapstructure:"thumb_prefix" default:"thumbs/"`
	// MaxItems caps the index length; the tail is trimmed after every pass.
	MaxItems int `mapstructure:"max_items" default:"2000"`
	// ThumbSize is the bounding box (pixels) for rendered thumbnails.
	ThumbSize int `mapstructure:"thumb_size" default:"320"`
	// MaxDecodeBytes bounds how much of a blob is downloaded for dimension
	// probing and thumbnail rendering. Larger objects are indexed without.
	MaxDecodeBytes int64 `mapstructure:"max_decode_bytes" default:"33554432"`
	// SyncIntervalSeconds is the periodic trigger interval.
	SyncIntervalSeconds int `mapstructure:"sync_interval_seconds" default:"300"`
	// LockTTLSeconds is the advisory pass lock lease duration.
	LockTTLSeconds int `mapstructure:"lock_ttl_seconds" default:"120"`
}
