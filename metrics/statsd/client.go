package statsd

import (
	"os"
	"strconv"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/kinecosystem/solana-gateway/metrics"
)

const ClientType = "statsd"

const (
	connAddrEnvVar = "METRICS_CONN_ADDR"
	bufferEnvVar   = "METRICS_BUFFER"

	defaultConnStr = "localhost:8125"
	defaultBuffer  = 128
)

func init() {
	metrics.RegisterClientCtor(ClientType, newClient)
}

// Client is a metrics.Client backed by a buffered DataDog statsd client.
type Client struct {
	client *statsd.Client
	config *metrics.ClientConfig
}

func newClient(config *metrics.ClientConfig) (metrics.Client, error) {
	log := logrus.StandardLogger().WithField("type", "metrics/statsd")

	connAddr := os.Getenv(connAddrEnvVar)
	if len(connAddr) == 0 {
		log.Infof("connection address not configured, using default (%s)", defaultConnStr)
		connAddr = defaultConnStr
	}

	buffer := defaultBuffer
	if bufferStr := os.Getenv(bufferEnvVar); len(bufferStr) > 0 {
		parsed, err := strconv.Atoi(bufferStr)
		if err != nil {
			return nil, errors.Errorf("configured buffer invalid (%s)", bufferStr)
		}
		buffer = parsed
	}

	client, err := statsd.NewBuffered(connAddr, buffer)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create statsd client")
	}

	client.Namespace = config.Namespace
	client.Tags = config.GlobalTags

	return &Client{
		client: client,
		config: config,
	}, nil
}

// Count implements metrics.Client.Count
func (c *Client) Count(name string, value int64, tags []string) error {
	return c.client.Count(name, value, tags, c.config.SampleRate)
}

// Timing implements metrics.Client.Timing
func (c *Client) Timing(name string, value time.Duration, tags []string) error {
	return c.client.Timing(name, value, tags, c.config.SampleRate)
}

// Close implements metrics.Client.Close
func (c *Client) Close() error {
	return c.client.Close()
}
