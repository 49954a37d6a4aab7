package feed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"photofeed/core/lock"
	"photofeed/core/props"
	"photofeed/core/storage"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// A folder reference left at this value counts as not configured.
const folderPlaceholder = "changeme"

const lockKey = "photofeed:reconcile"

// Narrow seams over the pass collaborators so the reconciler control flow is
// testable without a storage backend.
type indexStore interface {
	Load(ctx context.Context) ([]Entry, error)
	Save(ctx context.Context, entries []Entry) error
	Clear(ctx context.Context) error
}

type folderScanner interface {
	ListImages(ctx context.Context, folder string) ([]Object, error)
}

type accessNormalizer interface {
	EnsurePublicRead(ctx context.Context, id string) GrantResult
}

type metadataEnricher interface {
	Enrich(ctx context.Context, id, fallbackMime string) Entry
}

// Service owns the feed state and runs reconciliation passes.
type Service struct {
	client     storage.Client
	cfg        Config
	store      indexStore
	scanner    folderScanner
	normalizer accessNormalizer
	enricher   metadataEnricher
	props      props.Store
	passLock   *lock.Lock
	logger     *zap.Logger
	sf         singleflight.Group
}

// NewService wires the feed service. rdb may be nil for a single-instance
// deployment without Redis; the property store and advisory lock are then
// disabled and the static folder config is authoritative.
func NewService(client storage.Client, storageCfg storage.Config, cfg Config, rdb *redis.Client, logger *zap.Logger) *Service {
	downloadCfg := storageCfg.DownloadConfig()
	s := &Service{
		client:     client,
		cfg:        cfg,
		store:      NewStore(client, storageCfg.Bucket, cfg.IndexObject, logger),
		scanner:    NewScanner(client, storageCfg.Bucket),
		normalizer: NewNormalizer(client, storageCfg.Bucket, logger),
		enricher:   NewEnricher(client, downloadCfg, cfg, logger),
		logger:     logger,
	}
	if rdb != nil {
		s.props = props.New(rdb)
		s.passLock = lock.New(rdb, lockKey, time.Duration(cfg.LockTTLSeconds)*time.Second)
	}
	return s
}

// Index returns the parsed persisted sequence.
func (s *Service) Index(ctx context.Context) ([]Entry, error) {
	return s.store.Load(ctx)
}

// ClearIndex removes the persisted document so the next pass rebuilds it.
func (s *Service) ClearIndex(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// Folder returns the effective folder reference, property store first.
func (s *Service) Folder(ctx context.Context) (string, error) {
	if s.props != nil {
		folder, err := s.props.Folder(ctx)
		if err != nil {
			return "", err
		}
		if folder != "" {
			return folder, nil
		}
	}
	return s.cfg.Folder, nil
}

// SetFolder stores the folder reference in the property store.
func (s *Service) SetFolder(ctx context.Context, folder string) error {
	if s.props == nil {
		return fmt.Errorf("property store not configured")
	}
	return s.props.SetFolder(ctx, folder)
}

// resolveFolder validates the effective folder reference for a pass.
func (s *Service) resolveFolder(ctx context.Context) (string, error) {
	folder, err := s.Folder(ctx)
	if err != nil {
		// Property store faults fall back to static config rather than
		// aborting the pass.
		s.logger.Warn("Property store unavailable, using static folder config", zap.Error(err))
		folder = s.cfg.Folder
	}
	folder = strings.TrimSpace(folder)
	if folder == "" || strings.EqualFold(folder, folderPlaceholder) {
		return "", ErrFolderNotConfigured
	}
	if !strings.HasSuffix(folder, "/") {
		folder += "/"
	}
	return folder, nil
}
