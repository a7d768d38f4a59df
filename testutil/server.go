package testutil

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/kinecosystem/solana-gateway/netutil"
)

// Server serves an http.Handler on a free localhost port, for tests that
// need a real listener rather than httptest.ResponseRecorder.
type Server struct {
	URL string

	httpServer *http.Server
	done       chan struct{}
}

// NewServer starts serving handler on a free localhost port.
func NewServer(handler http.Handler) (*Server, error) {
	port, err := netutil.GetAvailablePortForAddress("localhost")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to find free port")
	}

	listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to start listener")
	}

	s := &Server{
		URL:        fmt.Sprintf("http://localhost:%d", port),
		httpServer: &http.Server{Handler: handler},
		done:       make(chan struct{}),
	}

	go func() {
		defer close(s.done)
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logrus.StandardLogger().WithField("type", "testutil/server").WithError(err).Warn("test server stopped")
		}
	}()

	return s, nil
}

// Stop shuts the server down and waits for it to exit.
func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_ = s.httpServer.Shutdown(ctx)
	<-s.done
}
