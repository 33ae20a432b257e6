package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/favour-22/alx-polly/internal/logger"
)

type Server struct {
	srv *http.Server
	log logger.Logger
}

func NewServer(handler http.Handler, address string, log logger.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:         address,
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		log: log,
	}
}

// Start blocks until ctx is canceled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http: starting server", "address", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil

	case err := <-errCh:
		return err
	}
}
