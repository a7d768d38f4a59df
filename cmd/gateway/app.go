package main

import (
	"net/http"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/kinecosystem/solana-gateway/app"
	"github.com/kinecosystem/solana-gateway/gateway"
	"github.com/kinecosystem/solana-gateway/metrics"
	"github.com/kinecosystem/solana-gateway/solana"
)

const metricsNamespace = "solana_gateway"

type gatewayApp struct {
	log *logrus.Entry

	server  *gateway.Server
	metrics metrics.Client

	shutdown   sync.Once
	shutdownCh chan struct{}
}

// Init implements app.App.Init.
func (a *gatewayApp) Init(config app.Config) error {
	a.log = logrus.StandardLogger().WithField("type", "cmd/gateway")
	a.shutdownCh = make(chan struct{})

	gwConfig, err := gateway.LoadConfig(config)
	if err != nil {
		return errors.Wrap(err, "invalid gateway config")
	}

	a.metrics, err = metrics.CreateClient(
		gwConfig.MetricsClient,
		metrics.WithNamespace(metricsNamespace),
		metrics.WithGlobalTags(metrics.WithServiceTag("solana-gateway")),
	)
	if err != nil {
		return errors.Wrap(err, "failed to create metrics client")
	}

	client := solana.NewWithTimeout(gwConfig.RPCEndpoint, gwConfig.RPCTimeout)

	a.server, err = gateway.New(gwConfig, client, gateway.WithMetricsClient(a.metrics))
	if err != nil {
		return errors.Wrap(err, "failed to create gateway server")
	}

	a.log.WithFields(logrus.Fields{
		"cluster":      gwConfig.Cluster,
		"rpc_endpoint": gwConfig.RPCEndpoint,
		"commitment":   gwConfig.Commitment,
	}).Info("gateway initialized")

	return nil
}

// Handler implements app.App.Handler.
func (a *gatewayApp) Handler() http.Handler {
	return a.server.Handler()
}

// ShutdownChan implements app.App.ShutdownChan.
func (a *gatewayApp) ShutdownChan() <-chan struct{} {
	return a.shutdownCh
}

// Stop implements app.App.Stop.
func (a *gatewayApp) Stop() {
	a.shutdown.Do(func() {
		close(a.shutdownCh)

		if a.metrics != nil {
			if err := a.metrics.Close(); err != nil {
				a.log.WithError(err).Warn("failed to close metrics client")
			}
		}
	})
}
