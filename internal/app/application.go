package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ravik808/sitetrust/internal/interfaces"
)

// shutdownGrace bounds how long in-flight requests may take once a stop
// signal arrives.
const shutdownGrace = 15 * time.Second

// Application is the runtime state container: configuration, the shared
// logger, the orchestrator's components and the HTTP server. Pass already
// constructed parts in so the wiring stays in one place (main) and this
// type stays trivial to test.
type Application struct {
	Config *Config
	Logger interfaces.Logger

	comps  *Components
	server *http.Server
}

// NewApplication constructs an Application from the provided parts.
func NewApplication(cfg *Config, logger interfaces.Logger, comps *Components, server *http.Server) *Application {
	return &Application{
		Config: cfg,
		Logger: logger,
		comps:  comps,
		server: server,
	}
}

// Run serves HTTP until ctx is cancelled or the listener fails, then shuts
// down gracefully and releases the components. It blocks for the lifetime
// of the application.
func (a *Application) Run(ctx context.Context) error {
	if a.server == nil {
		return errors.New("application has no http server")
	}

	errCh := make(chan error, 1)
	go func() {
		if a.Logger != nil {
			a.Logger.Info("http server listening", interfaces.Field{Key: "addr", Value: a.server.Addr})
		}
		errCh <- a.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.close()
			return err
		}
	}

	if a.Logger != nil {
		a.Logger.Info("shutdown initiated")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	err := a.server.Shutdown(shutdownCtx)
	a.close()
	return err
}

func (a *Application) close() {
	if a.comps == nil {
		return
	}
	if err := a.comps.Close(); err != nil && a.Logger != nil {
		a.Logger.Warn("closing components", interfaces.Field{Key: "error", Value: err.Error()})
	}
}
