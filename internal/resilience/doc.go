// Package resilience provides reliability and fault tolerance patterns for the application.
// It includes circuit breakers and retry logic used around the external
// collaborators: RSS feeds, the spreadsheet row store and the SMTP transport.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.FeedFetchConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return callExternalService()
//	})
//
//	err := retry.WithBackoff(ctx, retry.FeedFetchConfig(), func() error {
//	    return performOperation()
//	})
package resilience
