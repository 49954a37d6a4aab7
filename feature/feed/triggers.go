package feed

import (
	"context"
	"errors"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// uploadEvents are the bucket notifications that fire the event trigger.
var uploadEvents = []string{"s3:ObjectCreated:*"}

// RunPeriodic fires a reconciliation pass on a fixed interval until the
// context is cancelled. It is the catch-all for missed upload events.
func (s *Service) RunPeriodic(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.trigger(ctx, "periodic")
		}
	}
}

// RunEventListener subscribes to bucket upload notifications and fires a
// reconciliation pass for each batch of events until the context is
// cancelled. The listener covers the whole bucket; the scanner filters to
// the configured folder, so a folder change at runtime needs no resubscribe.
func (s *Service) RunEventListener(ctx context.Context, bucket string) {
	for {
		ch := s.client.ListenBucketNotification(ctx, bucket, "", "", uploadEvents)
		for info := range ch {
			if info.Err != nil {
				s.logger.Warn("Notification stream error", zap.Error(info.Err))
				continue
			}
			if len(info.Records) == 0 {
				continue
			}
			for _, rec := range info.Records {
				if key, err := url.QueryUnescape(rec.S3.Object.Key); err == nil {
					s.logger.Debug("Upload event received", zap.String("key", key))
				}
			}
			s.trigger(ctx, "event")
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(5 * time.Second):
			// Stream closed unexpectedly, resubscribe
			s.logger.Warn("Notification stream closed, resubscribing")
		}
	}
}

// trigger runs a pass and contains every error at this boundary: a failed
// pass is logged and the next trigger retries, nothing propagates.
func (s *Service) trigger(ctx context.Context, source string) {
	_, err := s.Reconcile(ctx)
	switch {
	case err == nil:
	case errors.Is(err, ErrFolderNotConfigured), errors.Is(err, ErrFolderNotFound):
		s.logger.Warn("Skipping reconciliation pass",
			zap.String("trigger", source),
			zap.Error(err))
	default:
		s.logger.Error("Reconciliation pass failed",
			zap.String("trigger", source),
			zap.Error(err))
	}
}
