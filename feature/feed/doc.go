// Package feed implements the photo feed reconciliation engine.
//
// Uploads land in a storage folder; the feed maintains a persisted JSON index
// of their metadata so viewers never rescan storage on a read. One
// reconciliation pass runs scan → diff → enrich → merge → persist:
//
//   - Store loads and persists the index, a single JSON array document in
//     the bucket. Missing or corrupt documents degrade to an empty index.
//   - Scanner enumerates the folder prefix and keeps image/* objects.
//   - Normalizer best-effort ensures each new object is publicly
//     link-readable, reporting failures in a GrantResult without blocking
//     indexing.
//   - Enricher resolves the metadata record (dimensions, thumbnail, creation
//     time) with a degraded minimal fallback; it never fails.
//   - The reconciler prepends new entries newest-discovered-first, trims the
//     tail to the capacity bound, and writes only when something changed.
//
// # Invariants
//
//   - IDs are unique across the index (diff step plus in-pass guard).
//   - Index length never exceeds Config.MaxItems.
//   - A pass with no new objects issues no write (idempotence).
//   - Folder resolution failures abort the pass with no index mutation.
//
// # Concurrency
//
// The load-merge-persist sequence is a read-modify-write over a shared
// document. Passes are serialized by a Redis advisory lock across processes
// and collapsed by singleflight within one; a pass that cannot take the lock
// is skipped. The feed is a bounded recent-photos window, not an archive:
// the merge trims the tail to Config.MaxItems. A folder holding more images
// than the bound keeps rotating its trimmed objects back in as new
// discoveries, so size the bound above the expected folder size.
//
// # Triggers
//
// RunEventListener reconciles on bucket upload notifications;
// RunPeriodic is the interval catch-all for missed events. Both call the
// same idempotent entry point, as does POST /admin/reconcile.
package feed
