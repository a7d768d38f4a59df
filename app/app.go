package app

import (
	"context"
	"crypto/tls"
	"expvar"
	"flag"
	"net"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/kinecosystem/solana-gateway/metrics"
)

// App is a long lived application that services HTTP requests.
//
// The lifecycle of the App is tied to the process. The app gets initialized
// before the HTTP server runs, and gets stopped after the HTTP server has
// stopped serving.
type App interface {
	// Init initializes the application in a blocking fashion. When Init returns, it
	// is expected that the application is ready to start receiving requests.
	Init(config Config) error

	// Handler returns the handler serving the application's requests. It is
	// called once, after Init.
	Handler() http.Handler

	// ShutdownChan returns a channel that is closed when the application is shutdown.
	//
	// If the channel is closed, the HTTP server will initiate a shutdown if it has
	// not already done so.
	ShutdownChan() <-chan struct{}

	// Stop stops the service, allowing for it to clean up any resources. When Stop()
	// returns, the process exits.
	//
	// Stop should be idempotent.
	Stop()
}

var (
	configPath = flag.String("config", "config.yaml", "configuration file path")

	osSigCh = make(chan os.Signal, 1)
)

func init() {
	signal.Notify(osSigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)
}

// Run loads the configuration, then serves app until the process is signalled
// or either the server or app shuts down.
func Run(app App, options ...Option) error {
	flag.Parse()

	logger := logrus.StandardLogger().WithField("type", "app")

	config, err := loadConfig(viper.GetViper(), *configPath)
	if err != nil {
		logger.WithError(err).Error("failed to load config")
		os.Exit(1)
	}

	configureLogger(config)

	// We don't want to expose pprof/expvar publically, so we reset the default
	// http ServeMux, which will have those installed due to the init() function
	// in those packages.
	http.DefaultServeMux = http.NewServeMux()

	if config.DebugListenAddress != "" {
		debugHTTPMux := newDebugMux(config)
		go func() {
			for {
				if err := http.ListenAndServe(config.DebugListenAddress, debugHTTPMux); err != nil {
					logger.WithError(err).Warn("Debug HTTP server failed. Retrying in 5s...")
				}
				time.Sleep(5 * time.Second)
			}
		}()
	}

	return run(app, config, osSigCh, options...)
}

func loadConfig(v *viper.Viper, path string) (BaseConfig, error) {
	_ = v.BindEnv("listen_address", "LISTEN_ADDRESS")
	_ = v.BindEnv("debug_listen_address", "DEBUG_LISTEN_ADDRESS")
	_ = v.BindEnv("log_level", "LOG_LEVEL")
	_ = v.BindEnv("log_type", "LOG_TYPE")
	_ = v.BindEnv("tls_certificate", "TLS_CERTIFICATE")
	_ = v.BindEnv("tls_private_key", "TLS_PRIVATE_KEY")

	// viper.ReadInConfig only returns ConfigFileNotFoundError if it has to search
	// for a default config file because one hasn't been explicitly set. That is,
	// if we explicitly set a config file, and it does not exist, viper will not
	// return a ConfigFileNotFoundError, so we do it ourselves.
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
	} else if !os.IsNotExist(err) {
		return BaseConfig{}, errors.Wrap(err, "failed to check if config exists")
	}

	err := v.ReadInConfig()
	_, isConfigNotFound := err.(viper.ConfigFileNotFoundError)
	if err != nil && !isConfigNotFound {
		return BaseConfig{}, errors.Wrap(err, "failed to read config")
	}

	config := defaultConfig
	if err := v.Unmarshal(&config); err != nil {
		return BaseConfig{}, errors.Wrap(err, "failed to unmarshal config")
	}

	return config, nil
}

func newDebugMux(config BaseConfig) *http.ServeMux {
	debugHTTPMux := http.NewServeMux()
	debugHTTPMux.Handle("/metrics", promhttp.Handler())

	if config.EnableExpvar {
		debugHTTPMux.Handle("/debug/vars", expvar.Handler())
	}
	if config.EnablePprof {
		debugHTTPMux.HandleFunc("/debug/pprof/", pprof.Index)
		debugHTTPMux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		debugHTTPMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		debugHTTPMux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		debugHTTPMux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}

	return debugHTTPMux
}

func loadTLSConfig(config BaseConfig) (*tls.Config, error) {
	if config.TLSCertificate == "" {
		return nil, nil
	}
	if config.TLSKey == "" {
		return nil, errors.New("tls key must be provided if certificate is specified")
	}

	certBytes, err := LoadFile(config.TLSCertificate)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load tls certificate")
	}

	keyBytes, err := LoadFile(config.TLSKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load tls key")
	}

	cert, err := tls.X509KeyPair(certBytes, keyBytes)
	if err != nil {
		return nil, errors.Wrap(err, "invalid certificate/private key")
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}

// run serves app until a value arrives on sigCh or either the server or app
// shuts down, then stops both within the configured grace period.
func run(app App, config BaseConfig, sigCh <-chan os.Signal, options ...Option) error {
	var opts opts
	for _, o := range options {
		o(&opts)
	}

	logger := logrus.StandardLogger().WithField("type", "app")

	tlsConfig, err := loadTLSConfig(config)
	if err != nil {
		return err
	}

	if err := app.Init(config.AppConfig); err != nil {
		return errors.Wrap(err, "failed to initialize application")
	}

	lis, err := net.Listen("tcp", config.ListenAddress)
	if err != nil {
		app.Stop()
		return errors.Wrapf(err, "failed to listen on %s", config.ListenAddress)
	}
	if tlsConfig != nil {
		lis = tls.NewListener(lis, tlsConfig)
	}

	serv := &http.Server{
		Handler: handlers.RecoveryHandler(
			handlers.RecoveryLogger(logger),
			handlers.PrintRecoveryStack(true),
		)(opts.wrap(app.Handler())),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	servShutdownCh := make(chan struct{})

	go func() {
		logger.WithField("address", lis.Addr().String()).Info("serving http")

		if err := serv.Serve(lis); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("http serve stopped")
		} else {
			logger.Info("http server stopped")
		}

		close(servShutdownCh)
	}()

	// Wait for the following shutdown conditions:
	//    1. OS Signal telling us to shutdown
	//    2. The HTTP Server has shutdown (for whatever reason)
	//    3. The application has shutdown (for whatever reason)
	select {
	case <-sigCh:
		logger.Info("interrupt received, shutting down")
	case <-servShutdownCh:
		logger.Info("http server shutdown")
	case <-app.ShutdownChan():
		logger.Info("app shutdown")
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownGracePeriod)
	defer cancel()

	shutdownCh := make(chan struct{})
	go func() {
		// Both the HTTP server and the application should have idempotent
		// shutdown methods, so it's fine call them both, regardless of the
		// shutdown condition.
		if err := serv.Shutdown(ctx); err != nil {
			logger.WithError(err).Warn("failed to gracefully stop http server")
		}
		app.Stop()

		close(shutdownCh)
	}()

	select {
	case <-shutdownCh:
		return nil
	case <-ctx.Done():
		return errors.Errorf("failed to stop the application within %v", config.ShutdownGracePeriod)
	}
}

type prometheusLogger struct {
	warnCounter  prometheus.Counter
	errorCounter prometheus.Counter
}

func newPrometheusLogger() *prometheusLogger {
	return &prometheusLogger{
		warnCounter: metrics.Register(prometheus.NewCounter(prometheus.CounterOpts{
			Name:      "logging_warns",
			Namespace: "gateway",
		})).(prometheus.Counter),
		errorCounter: metrics.Register(prometheus.NewCounter(prometheus.CounterOpts{
			Name:      "logging_errors",
			Namespace: "gateway",
		})).(prometheus.Counter),
	}
}

func (p *prometheusLogger) Levels() []logrus.Level {
	return []logrus.Level{
		logrus.WarnLevel,
		logrus.ErrorLevel,
	}
}

func (p *prometheusLogger) Fire(e *logrus.Entry) error {
	switch e.Level {
	case logrus.WarnLevel:
		p.warnCounter.Inc()
	case logrus.ErrorLevel:
		p.errorCounter.Inc()
	}

	return nil
}

func configureLogger(config BaseConfig) {
	switch strings.ToLower(config.LogType) {
	case "human":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "", "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&logrus.JSONFormatter{})
		logrus.StandardLogger().WithField("log_type", config.LogType).Warn("unknown logger type, ignoring")
	}

	level, err := logrus.ParseLevel(strings.ToLower(config.LogLevel))
	if err != nil {
		logrus.StandardLogger().WithField("log_level", config.LogLevel).Warn("unknown log level, ignoring")
	} else {
		logrus.SetLevel(level)
	}

	logrus.SetOutput(os.Stdout)
	logrus.StandardLogger().Hooks.Add(newPrometheusLogger())
}
