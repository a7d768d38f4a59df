package gateway

import (
	"net/http"
	"path"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/kinecosystem/solana-gateway/env"
	"github.com/kinecosystem/solana-gateway/metrics"
	"github.com/kinecosystem/solana-gateway/solana"
)

// Server serves the gateway's HTTP API. It holds no per-request state; the
// ledger client is the only collaborator that leaves the process.
type Server struct {
	log        *logrus.Entry
	config     Config
	client     solana.Client
	commitment solana.Commitment

	requestMeter *metrics.Meter
	requestTimer *metrics.Timer

	airdropLimiter *rate.Limiter
}

// Option configures a Server.
type Option func(o *opts)

type opts struct {
	metricsClient metrics.Client
}

// WithMetricsClient exports request counts and latencies to c.
func WithMetricsClient(c metrics.Client) Option {
	return func(o *opts) {
		o.metricsClient = c
	}
}

// New returns a Server that uses client for every ledger call.
func New(config Config, client solana.Client, options ...Option) (*Server, error) {
	o := opts{
		metricsClient: metrics.NewNoopClient(),
	}
	for _, opt := range options {
		opt(&o)
	}

	commitment, err := solana.ParseCommitment(config.Commitment)
	if err != nil {
		return nil, err
	}

	s := &Server{
		log:        logrus.StandardLogger().WithField("type", "gateway/server"),
		config:     config,
		client:     client,
		commitment: commitment,
	}

	if s.requestMeter, err = metrics.NewMeter(o.metricsClient, "request"); err != nil {
		return nil, errors.Wrap(err, "failed to create request meter")
	}
	if s.requestTimer, err = metrics.NewTimer(o.metricsClient, "request_latency"); err != nil {
		return nil, errors.Wrap(err, "failed to create request timer")
	}

	if config.AirdropRateLimit > 0 {
		s.airdropLimiter = rate.NewLimiter(rate.Limit(config.AirdropRateLimit), config.AirdropBurst)
	}

	if config.Cluster != "" && !env.Cluster(config.Cluster).SupportsAirdrop() {
		s.log.WithField("cluster", config.Cluster).Warn("cluster has no faucet, airdrop requests will fail")
	}

	return s, nil
}

// Handler returns the HTTP handler serving every route, wrapped with CORS.
// API routes are served both at the root and under /api.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(
		requestIDMiddleware,
		s.instrumentMiddleware,
		bodyLimitMiddleware(s.config.MaxBodyBytes),
	)

	s.routes(r.PathPrefix("/api").Subrouter())
	s.routes(r)

	if s.config.StaticDir != "" {
		r.MatcherFunc(staticMatcher(s.config.StaticDir)).Handler(http.FileServer(http.Dir(s.config.StaticDir)))
	}

	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	return handlers.CORS(
		handlers.AllowedOrigins(s.config.CORSAllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(r)
}

func (s *Server) routes(r *mux.Router) {
	r.HandleFunc("/hello", s.handle(s.hello)).Methods(http.MethodGet)
	r.Handle("/airdrop", s.rateLimit(s.airdropLimiter, s.handle(s.airdrop))).Methods(http.MethodGet)
	r.HandleFunc("/balance", s.handle(s.balance)).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/keypair", s.handle(s.keypair)).Methods(http.MethodPost)

	r.HandleFunc("/token/create", s.handle(s.createToken)).Methods(http.MethodPost)
	r.HandleFunc("/token/mint", s.handle(s.mintToken)).Methods(http.MethodPost)
	r.HandleFunc("/token/account", s.handle(s.tokenAccount)).Methods(http.MethodGet, http.MethodPost)

	r.HandleFunc("/message/sign", s.handle(s.signMessage)).Methods(http.MethodPost)
	r.HandleFunc("/message/verify", s.handle(s.verifyMessage)).Methods(http.MethodPost)

	r.HandleFunc("/send/sol", s.handle(s.sendSol)).Methods(http.MethodPost)
	r.HandleFunc("/send/token", s.handle(s.sendToken)).Methods(http.MethodPost)

	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
}

// staticMatcher matches GET and HEAD requests for files that exist under dir.
// Misses, other methods and anything under /api fall through to notFound.
func staticMatcher(dir string) mux.MatcherFunc {
	root := http.Dir(dir)
	return func(r *http.Request, _ *mux.RouteMatch) bool {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			return false
		}
		if r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/") {
			return false
		}

		f, err := root.Open(path.Clean("/" + r.URL.Path))
		if err != nil {
			return false
		}
		f.Close()
		return true
	}
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, &Error{Kind: KindNotFound, Message: "not found"})
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, &Error{
		Kind:    KindInvalidFormat,
		Message: "method not allowed",
		status:  http.StatusMethodNotAllowed,
	})
}

type handlerFunc func(r *http.Request) (interface{}, *Error)

// handle renders the result of h in the response envelope. Collaborator
// failures are logged with their cause, which is never sent to the caller.
func (s *Server) handle(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := h(r)
		if err != nil {
			log := requestLogger(r, s.log).WithField("kind", err.Kind.String())
			if err.Cause != nil {
				log = log.WithError(err.Cause)
			}
			if err.Kind == KindCollaboratorFailure {
				log.Warn(err.Message)
			} else {
				log.Debug(err.Message)
			}

			writeError(w, err)
			return
		}

		writeData(w, data)
	}
}

func (s *Server) hello(_ *http.Request) (interface{}, *Error) {
	return "Hello from the Solana gateway!", nil
}
