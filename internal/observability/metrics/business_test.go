package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordFeedFetched(t *testing.T) {
	before := testutil.ToFloat64(FeedItemsFetchedTotal.WithLabelValues("testwire"))
	RecordFeedFetched("testwire", 7, 5)
	assert.Equal(t, before+7, testutil.ToFloat64(FeedItemsFetchedTotal.WithLabelValues("testwire")))
	assert.Equal(t, float64(5), testutil.ToFloat64(FeedItemsKeptTotal.WithLabelValues("testwire")))
}

func TestRecordFeedFetchError(t *testing.T) {
	before := testutil.ToFloat64(FeedFetchErrorsTotal.WithLabelValues("testwire", "timeout"))
	RecordFeedFetchError("testwire", "timeout")
	assert.Equal(t, before+1, testutil.ToFloat64(FeedFetchErrorsTotal.WithLabelValues("testwire", "timeout")))
}

func TestRecordDigestServed(t *testing.T) {
	before := testutil.ToFloat64(DigestServedTotal.WithLabelValues("cache"))
	RecordDigestServed("cache")
	assert.Equal(t, before+1, testutil.ToFloat64(DigestServedTotal.WithLabelValues("cache")))
}

func TestRecordSubscription(t *testing.T) {
	before := testutil.ToFloat64(SubscriptionEventsTotal.WithLabelValues("subscribed"))
	RecordSubscription("subscribed")
	assert.Equal(t, before+1, testutil.ToFloat64(SubscriptionEventsTotal.WithLabelValues("subscribed")))
}

func TestUpdateSubscribersTotal(t *testing.T) {
	UpdateSubscribersTotal(42)
	assert.Equal(t, float64(42), testutil.ToFloat64(SubscribersTotal))
}
