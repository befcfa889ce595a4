package srv

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sandevgo/tuskmem/pkg/log"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// HTTPServer serves handler on addr until Shutdown.
type HTTPServer struct {
	server *http.Server
	ready  chan net.Addr
}

func NewHTTPServer(addr string, handler http.Handler) *HTTPServer {
	return &HTTPServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		ready: make(chan net.Addr, 1),
	}
}

// Ready yields the bound address once the listener is open.
func (s *HTTPServer) Ready() <-chan net.Addr {
	return s.ready
}

func (s *HTTPServer) Start(ctx context.Context) error {
	lc := net.ListenConfig{}
	listener, err := lc.Listen(ctx, "tcp", s.server.Addr)
	if err != nil {
		return err
	}

	log.FromCtx(ctx).Info().Str("addr", listener.Addr().String()).Msg("http server listening")
	s.ready <- listener.Addr()

	if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
