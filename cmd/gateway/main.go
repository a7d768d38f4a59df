package main

import (
	"os"

	"github.com/gorilla/handlers"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/kinecosystem/solana-gateway/app"

	// Metrics client implementations, selected by the metrics_client key.
	_ "github.com/kinecosystem/solana-gateway/metrics/memory"
	_ "github.com/kinecosystem/solana-gateway/metrics/statsd"
)

func main() {
	log := logrus.StandardLogger().WithField("type", "cmd/gateway")

	// A missing .env file is normal outside of local development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("failed to load .env file")
	}

	_ = viper.BindEnv("app.rpc_endpoint", "SOLANA_RPC_URL")
	_ = viper.BindEnv("app.rpc_timeout", "SOLANA_RPC_TIMEOUT")
	_ = viper.BindEnv("app.metrics_client", "METRICS_CLIENT")
	_ = viper.BindEnv("app.static_dir", "STATIC_DIR")

	if err := app.Run(
		&gatewayApp{},
		app.WithMiddleware(handlers.CompressHandler),
	); err != nil {
		log.WithError(err).Fatal("error running service")
	}
}
