// Package metrics defines the Prometheus collectors for the service.
//
// Collectors are registered on the default registry via promauto and exposed
// at /metrics by the start command. They cover pass outcomes, discovery and
// trim volume, grant failures, and pass duration.
package metrics
