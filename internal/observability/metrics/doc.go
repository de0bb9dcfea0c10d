// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Business metrics (feed items, digests, subscriptions)
//   - Row store operation metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "neuradigest/internal/observability/metrics"
//
//	func aggregateFeeds(source string) {
//	    start := time.Now()
//	    // ... fetch and filter ...
//
//	    metrics.RecordFeedFetched(source, fetched, kept)
//	    metrics.RecordOperationDuration("aggregate", time.Since(start))
//	}
package metrics
