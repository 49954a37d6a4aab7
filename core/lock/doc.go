// Package lock provides a Redis-backed advisory lock.
//
// Reconciliation is a load-modify-persist sequence over a shared document;
// two overlapping passes would silently drop each other's discoveries. The
// lock serializes passes across processes: a pass that cannot acquire it is
// skipped (the next trigger catches up), never queued.
//
// The lease carries a random token and is released through a compare-and-
// delete script, so a lease that outlived its TTL cannot release a lock that
// has since been re-acquired elsewhere.
package lock
