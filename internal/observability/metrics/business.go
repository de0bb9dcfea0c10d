package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business metrics track feed aggregation and subscriber operations
var (
	// FeedItemsFetchedTotal counts raw items fetched per source
	FeedItemsFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_items_fetched_total",
			Help: "Total number of feed items fetched per source",
		},
		[]string{"source"},
	)

	// FeedItemsKeptTotal counts items that survived relevance filtering
	FeedItemsKeptTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_items_kept_total",
			Help: "Total number of feed items kept after filtering",
		},
		[]string{"source"},
	)

	// FeedFetchErrorsTotal counts fetch failures per source and error type
	FeedFetchErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_fetch_errors_total",
			Help: "Total number of feed fetch errors",
		},
		[]string{"source", "type"}, // type: timeout|circuit_open|fetch_error
	)

	// DigestServedTotal counts served digests by origin
	DigestServedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_digest_served_total",
			Help: "Total number of news digests served",
		},
		[]string{"origin"}, // origin: cache|live
	)

	// SubscriptionEventsTotal counts subscriber state transitions
	SubscriptionEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subscription_events_total",
			Help: "Total number of subscriber state transitions",
		},
		[]string{"action"}, // action: subscribed|resubscribed|unsubscribed
	)

	// SubscribersTotal tracks the current number of active subscribers
	SubscribersTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "subscribers_total",
			Help: "Current number of active subscribers",
		},
	)
)

// RecordFeedFetched records a successful feed fetch with the number of
// items returned and the number kept after filtering.
func RecordFeedFetched(source string, fetched, kept int) {
	FeedItemsFetchedTotal.WithLabelValues(source).Add(float64(fetched))
	FeedItemsKeptTotal.WithLabelValues(source).Add(float64(kept))
}

// RecordFeedFetchError records a failed feed fetch.
func RecordFeedFetchError(source, errorType string) {
	FeedFetchErrorsTotal.WithLabelValues(source, errorType).Inc()
}

// RecordDigestServed records a served digest and where it came from.
func RecordDigestServed(origin string) {
	DigestServedTotal.WithLabelValues(origin).Inc()
}

// RecordSubscription records a subscriber state transition.
func RecordSubscription(action string) {
	SubscriptionEventsTotal.WithLabelValues(action).Inc()
}

// UpdateSubscribersTotal sets the active subscriber gauge.
func UpdateSubscribersTotal(count int) {
	SubscribersTotal.Set(float64(count))
}
