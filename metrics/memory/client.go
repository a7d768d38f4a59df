package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/kinecosystem/solana-gateway/metrics"
)

const ClientType = "memory"

const (
	metricFormat = "%s_%s"
)

func init() {
	metrics.RegisterClientCtor(ClientType, newClient)
}

// CountRecord is a record of a call to Count
type CountRecord struct {
	Name  string
	Value int64
	Tags  []string
}

// TimingRecord is a record of a call to Timing
type TimingRecord struct {
	Name  string
	Value time.Duration
	Tags  []string
}

// Client keeps every submitted metric in memory. It is intended for tests.
type Client struct {
	sync.Mutex
	countRecords  []CountRecord
	timingRecords []TimingRecord
	config        *metrics.ClientConfig
}

// NewClient returns an in-memory metrics client.
func NewClient(opts ...metrics.ClientOption) *Client {
	config := &metrics.ClientConfig{}
	for _, o := range opts {
		o(config)
	}

	c, _ := newClient(config)
	return c.(*Client)
}

func newClient(config *metrics.ClientConfig) (metrics.Client, error) {
	return &Client{
		config: config,
	}, nil
}

// Count implements metrics.Client.Count
func (c *Client) Count(name string, value int64, tags []string) error {
	c.Lock()
	defer c.Unlock()

	c.countRecords = append(c.countRecords, CountRecord{
		Name:  c.name(name),
		Value: value,
		Tags:  append(tags, c.config.GlobalTags...),
	})
	return nil
}

// Timing implements metrics.Client.Timing
func (c *Client) Timing(name string, value time.Duration, tags []string) error {
	c.Lock()
	defer c.Unlock()

	c.timingRecords = append(c.timingRecords, TimingRecord{
		Name:  c.name(name),
		Value: value,
		Tags:  append(tags, c.config.GlobalTags...),
	})
	return nil
}

// CountRecords returns the count records that have been tracked so far.
func (c *Client) CountRecords() []CountRecord {
	c.Lock()
	defer c.Unlock()

	records := make([]CountRecord, len(c.countRecords))
	copy(records, c.countRecords)
	return records
}

// TimingRecords returns the timing records that have been tracked so far.
func (c *Client) TimingRecords() []TimingRecord {
	c.Lock()
	defer c.Unlock()

	records := make([]TimingRecord, len(c.timingRecords))
	copy(records, c.timingRecords)
	return records
}

// Close implements metrics.Client.Close
func (c *Client) Close() error {
	return nil
}

func (c *Client) name(name string) string {
	if c.config.Namespace == "" {
		return name
	}
	return fmt.Sprintf(metricFormat, c.config.Namespace, name)
}
