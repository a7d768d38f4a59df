package metrics

import "time"

// Client is used for exporting metrics
type Client interface {
	// Count measures the count of a metric
	Count(name string, value int64, tags []string) error

	// Timing measures the time of a metric.
	Timing(name string, value time.Duration, tags []string) error

	// Close closes the client and any underlying resources
	Close() error
}

type noopClient struct{}

// NewNoopClient returns a Client that discards everything it is given.
func NewNoopClient() Client {
	return noopClient{}
}

func (noopClient) Count(string, int64, []string) error          { return nil }
func (noopClient) Timing(string, time.Duration, []string) error { return nil }
func (noopClient) Close() error                                 { return nil }
