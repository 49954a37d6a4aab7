package feed

import (
	"context"
	"fmt"
	"testing"
	"time"

	"photofeed/core/lock"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeStore is an in-memory index store that counts writes.
type fakeStore struct {
	entries []Entry
	loadErr error
	saveErr error
	saves   int
	clears  int
}

func (f *fakeStore) Load(ctx context.Context) ([]Entry, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	out := make([]Entry, len(f.entries))
	copy(out, f.entries)
	return out, nil
}

func (f *fakeStore) Save(ctx context.Context, entries []Entry) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.entries = entries
	return nil
}

func (f *fakeStore) Clear(ctx context.Context) error {
	f.clears++
	f.entries = nil
	return nil
}

type fakeScanner struct {
	objects []Object
	err     error
	calls   int
}

func (f *fakeScanner) ListImages(ctx context.Context, folder string) ([]Object, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.objects, nil
}

// fakeNormalizer fails the grant for IDs in failing.
type fakeNormalizer struct {
	failing map[string]bool
}

func (f *fakeNormalizer) EnsurePublicRead(ctx context.Context, id string) GrantResult {
	if f.failing[id] {
		return GrantResult{ID: id, Err: fmt.Errorf("permission api unavailable")}
	}
	return GrantResult{ID: id, Granted: true}
}

type fakeEnricher struct{}

func (fakeEnricher) Enrich(ctx context.Context, id, fallbackMime string) Entry {
	return Entry{
		ID:        id,
		MimeType:  fallbackMime,
		ThumbURL:  "http://cdn/thumb/" + id,
		URL:       "http://cdn/" + id,
		CreatedAt: "2026-08-01T00:00:00Z",
	}
}

func newTestService(store *fakeStore, scanner *fakeScanner, opts ...func(*Service)) *Service {
	s := &Service{
		cfg:        Config{Folder: "uploads", MaxItems: 2000},
		store:      store,
		scanner:    scanner,
		normalizer: &fakeNormalizer{},
		enricher:   fakeEnricher{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func obj(id string) Object {
	return Object{ID: id, MimeType: "image/jpeg"}
}

func TestReconcileEmptyIndex(t *testing.T) {
	store := &fakeStore{}
	scanner := &fakeScanner{objects: []Object{obj("uploads/a"), obj("uploads/b"), obj("uploads/c")}}
	svc := newTestService(store, scanner)

	report, err := svc.Reconcile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Scanned)
	assert.Equal(t, 3, report.New)
	assert.True(t, report.Persisted)
	require.Len(t, store.entries, 3)

	// Scan order, no duplicates
	assert.Equal(t, "uploads/a", store.entries[0].ID)
	assert.Equal(t, "uploads/b", store.entries[1].ID)
	assert.Equal(t, "uploads/c", store.entries[2].ID)
}

func TestReconcileIdempotent(t *testing.T) {
	store := &fakeStore{}
	scanner := &fakeScanner{objects: []Object{obj("uploads/a")}}
	svc := newTestService(store, scanner)

	first, err := svc.Reconcile(context.Background())
	require.NoError(t, err)
	assert.True(t, first.Persisted)
	assert.Equal(t, 1, store.saves)

	// Second pass with no new objects issues no write
	second, err := svc.Reconcile(context.Background())
	require.NoError(t, err)
	assert.False(t, second.Persisted)
	assert.Equal(t, 0, second.New)
	assert.Equal(t, 1, store.saves)
}

func TestReconcileDedup(t *testing.T) {
	store := &fakeStore{entries: []Entry{{ID: "uploads/a"}}}
	scanner := &fakeScanner{objects: []Object{obj("uploads/a"), obj("uploads/b")}}
	svc := newTestService(store, scanner)

	report, err := svc.Reconcile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.New)
	require.Len(t, store.entries, 2)
	assert.Equal(t, "uploads/b", store.entries[0].ID)
	assert.Equal(t, "uploads/a", store.entries[1].ID)
}

func TestReconcileInPassDuplicateGuard(t *testing.T) {
	store := &fakeStore{}
	// The same key appearing twice in one listing yields one entry
	scanner := &fakeScanner{objects: []Object{obj("uploads/a"), obj("uploads/a")}}
	svc := newTestService(store, scanner)

	report, err := svc.Reconcile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.New)
	assert.Len(t, store.entries, 1)
}

func TestReconcileCapInvariant(t *testing.T) {
	base := []Entry{}
	for i := 0; i < 5; i++ {
		base = append(base, Entry{ID: fmt.Sprintf("uploads/old-%d", i)})
	}
	store := &fakeStore{entries: base}
	scanner := &fakeScanner{objects: []Object{obj("uploads/new")}}
	svc := newTestService(store, scanner, func(s *Service) {
		s.cfg.MaxItems = 5
	})

	report, err := svc.Reconcile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Trimmed)
	require.Len(t, store.entries, 5)
	assert.Equal(t, "uploads/new", store.entries[0].ID)
	// Oldest-by-discovery dropped from the tail
	assert.Equal(t, "uploads/old-3", store.entries[4].ID)
	for _, e := range store.entries {
		assert.NotEqual(t, "uploads/old-4", e.ID)
	}
}

func TestReconcileScanFailureNoMutation(t *testing.T) {
	store := &fakeStore{entries: []Entry{{ID: "uploads/a"}}}
	scanner := &fakeScanner{err: fmt.Errorf("folder %q: %w", "uploads/", ErrFolderNotFound)}
	svc := newTestService(store, scanner)

	_, err := svc.Reconcile(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFolderNotFound)
	assert.Equal(t, 0, store.saves)
	require.Len(t, store.entries, 1)
}

func TestReconcileFolderNotConfigured(t *testing.T) {
	store := &fakeStore{}
	scanner := &fakeScanner{objects: []Object{obj("uploads/a")}}
	svc := newTestService(store, scanner, func(s *Service) {
		s.cfg.Folder = ""
	})

	_, err := svc.Reconcile(context.Background())
	assert.ErrorIs(t, err, ErrFolderNotConfigured)
	assert.Equal(t, 0, scanner.calls)
	assert.Equal(t, 0, store.saves)
}

func TestReconcilePlaceholderFolder(t *testing.T) {
	store := &fakeStore{}
	scanner := &fakeScanner{}
	svc := newTestService(store, scanner, func(s *Service) {
		s.cfg.Folder = "CHANGEME"
	})

	_, err := svc.Reconcile(context.Background())
	assert.ErrorIs(t, err, ErrFolderNotConfigured)
}

func TestReconcileGrantFailureStillIndexes(t *testing.T) {
	store := &fakeStore{}
	scanner := &fakeScanner{objects: []Object{obj("uploads/a"), obj("uploads/b")}}
	svc := newTestService(store, scanner, func(s *Service) {
		s.normalizer = &fakeNormalizer{failing: map[string]bool{"uploads/b": true}}
	})

	report, err := svc.Reconcile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.GrantFailures)
	// The grant failure does not block indexing
	assert.Equal(t, 2, report.New)
	assert.Len(t, store.entries, 2)
}

func TestReconcileRebuildAfterCorruption(t *testing.T) {
	// A corrupt document loads as empty; the next full-discovery pass
	// persists a fresh index of the currently discoverable objects.
	store := &fakeStore{}
	scanner := &fakeScanner{objects: []Object{obj("uploads/a"), obj("uploads/b")}}
	svc := newTestService(store, scanner)

	report, err := svc.Reconcile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.New)
	assert.True(t, report.Persisted)
	assert.Len(t, store.entries, 2)
}

func TestReconcileLockSkip(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	passLock := lock.New(rdb, lockKey, time.Minute)
	lease, err := passLock.Acquire(context.Background())
	require.NoError(t, err)
	defer lease.Release(context.Background())

	store := &fakeStore{}
	scanner := &fakeScanner{objects: []Object{obj("uploads/a")}}
	svc := newTestService(store, scanner, func(s *Service) {
		s.passLock = lock.New(rdb, lockKey, time.Minute)
	})

	report, err := svc.Reconcile(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Skipped)
	assert.Equal(t, 0, store.saves)
	assert.Equal(t, 0, scanner.calls)
}

func TestMerge(t *testing.T) {
	t.Run("PrependKeepsScanOrder", func(t *testing.T) {
		merged, trimmed := merge(
			[]Entry{{ID: "old"}},
			[]Entry{{ID: "n1"}, {ID: "n2"}},
			10,
		)
		assert.Zero(t, trimmed)
		require.Len(t, merged, 3)
		assert.Equal(t, "n1", merged[0].ID)
		assert.Equal(t, "n2", merged[1].ID)
		assert.Equal(t, "old", merged[2].ID)
	})

	t.Run("TrimsFromTail", func(t *testing.T) {
		merged, trimmed := merge(
			[]Entry{{ID: "o1"}, {ID: "o2"}, {ID: "o3"}},
			[]Entry{{ID: "n1"}},
			3,
		)
		assert.Equal(t, 1, trimmed)
		require.Len(t, merged, 3)
		assert.Equal(t, "n1", merged[0].ID)
		assert.Equal(t, "o2", merged[2].ID)
	})

	t.Run("ZeroMaxMeansUnbounded", func(t *testing.T) {
		merged, trimmed := merge([]Entry{{ID: "o"}}, []Entry{{ID: "n"}}, 0)
		assert.Zero(t, trimmed)
		assert.Len(t, merged, 2)
	})
}
