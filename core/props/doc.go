// Package props provides the key-value property store for mutable runtime
// configuration.
//
// The folder reference (which storage prefix the feed scans) is an
// operator-settable property rather than static configuration, so it lives in
// Redis behind the small Store interface. Static config (core/config) supplies
// a fallback default when the property is unset.
//
// The same Redis connection also backs the advisory pass lock (core/lock).
package props
