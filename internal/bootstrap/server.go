package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/openlearn/coredata/internal/adapters/http"
)

// Server owns the HTTP listener built on top of a Service's wired
// UseCase, mirroring the teacher's bootstrap.Server/Run split.
type Server struct {
	svc           *Service
	serverAddress string
}

// NewServer builds the Server for svc.
func NewServer(svc *Service) *Server {
	return &Server{svc: svc, serverAddress: svc.Config.ServerAddress}
}

// Run starts the fiber app and blocks until the process receives an
// interrupt or termination signal, then drains in-flight requests before
// returning.
func (s *Server) Run() error {
	app := httpadapter.NewRouter(s.svc.Operation, s.svc.Pool, s.svc.Logger)

	errCh := make(chan error, 1)

	go func() {
		s.svc.Logger.Infof("listening on %s", s.serverAddress)

		if err := app.Listen(s.serverAddress); err != nil {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		s.svc.Logger.Info("shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	}
}
