package feed

import (
	"context"
	"errors"
	"time"

	"photofeed/core/lock"
	"photofeed/core/metrics"

	"go.uber.org/zap"
)

// Reconcile runs one reconciliation pass: scan the folder, diff against the
// known IDs, enrich the unseen objects, merge newest-first under the capacity
// bound, and persist. Both the event trigger and the periodic trigger call
// this entry point; re-running with no new objects is a no-op and issues no
// write.
//
// Concurrent in-process triggers collapse into a single pass; across
// processes the advisory lock serializes the load-merge-persist sequence.
func (s *Service) Reconcile(ctx context.Context) (*PassReport, error) {
	v, err, _ := s.sf.Do("reconcile", func() (any, error) {
		return s.runPass(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*PassReport), nil
}

func (s *Service) runPass(ctx context.Context) (*PassReport, error) {
	start := time.Now()

	if s.passLock != nil {
		lease, err := s.passLock.Acquire(ctx)
		if errors.Is(err, lock.ErrNotAcquired) {
			s.logger.Info("Another reconciliation pass is running, skipping")
			metrics.Passes.WithLabelValues(metrics.ResultSkipped).Inc()
			return &PassReport{Skipped: true}, nil
		}
		if err != nil {
			metrics.Passes.WithLabelValues(metrics.ResultError).Inc()
			return nil, err
		}
		defer func() {
			if rerr := lease.Release(ctx); rerr != nil {
				s.logger.Warn("Failed to release pass lock", zap.Error(rerr))
			}
		}()
	}

	report, err := s.pass(ctx)
	if err != nil {
		metrics.Passes.WithLabelValues(metrics.ResultError).Inc()
		return nil, err
	}

	report.Duration = time.Since(start)
	metrics.Passes.WithLabelValues(metrics.ResultOK).Inc()
	metrics.PassDuration.Observe(report.Duration.Seconds())

	s.logger.Info("Reconciliation pass completed",
		zap.String("folder", report.Folder),
		zap.Int("scanned", report.Scanned),
		zap.Int("new", report.New),
		zap.Int("trimmed", report.Trimmed),
		zap.Int("grant_failures", report.GrantFailures),
		zap.Bool("persisted", report.Persisted),
		zap.Duration("duration", report.Duration))
	return report, nil
}

// pass is the critical section: load, scan, diff, enrich, merge, persist.
// It aborts with no index mutation when the folder cannot be resolved.
func (s *Service) pass(ctx context.Context) (*PassReport, error) {
	folder, err := s.resolveFolder(ctx)
	if err != nil {
		return nil, err
	}
	report := &PassReport{Folder: folder}

	entries, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	known := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		known[e.ID] = struct{}{}
	}

	objects, err := s.scanner.ListImages(ctx, folder)
	if err != nil {
		return nil, err
	}
	report.Scanned = len(objects)

	var fresh []Entry
	for _, obj := range objects {
		if _, ok := known[obj.ID]; ok {
			continue
		}

		if res := s.normalizer.EnsurePublicRead(ctx, obj.ID); !res.OK() {
			report.GrantFailures++
			metrics.GrantFailures.Inc()
			s.logger.Warn("Public-read grant failed, indexing anyway",
				zap.String("id", obj.ID),
				zap.Error(res.Err))
		}

		fresh = append(fresh, s.enricher.Enrich(ctx, obj.ID, obj.MimeType))
		// Guards against duplicate keys within the same listing
		known[obj.ID] = struct{}{}
	}
	report.New = len(fresh)

	if len(fresh) == 0 {
		return report, nil
	}

	merged, trimmed := merge(entries, fresh, s.cfg.MaxItems)
	if err := s.store.Save(ctx, merged); err != nil {
		return nil, err
	}
	report.Trimmed = trimmed
	report.Persisted = true

	metrics.Discovered.Add(float64(len(fresh)))
	if trimmed > 0 {
		metrics.Trimmed.Add(float64(trimmed))
	}
	return report, nil
}

// merge prepends the fresh entries (in scan order) ahead of the existing
// sequence and trims the tail to the capacity bound.
func merge(existing, fresh []Entry, maxItems int) ([]Entry, int) {
	merged := make([]Entry, 0, len(fresh)+len(existing))
	merged = append(merged, fresh...)
	merged = append(merged, existing...)

	if maxItems > 0 && len(merged) > maxItems {
		trimmed := len(merged) - maxItems
		return merged[:maxItems], trimmed
	}
	return merged, 0
}
