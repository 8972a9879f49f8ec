package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/crazythinker/studio/pkg/ct/logger"
	"github.com/go-chi/chi/v5"
)

// Startable is implemented by components that need work done before serving.
type Startable interface {
	Start(context.Context) error
}

// Stoppable is implemented by components holding resources until shutdown.
type Stoppable interface {
	Stop(context.Context) error
}

// RouteRegistrar is implemented by components that expose HTTP routes.
type RouteRegistrar interface {
	RegisterRoutes(chi.Router)
}

// Lifecycle holds the start and stop functions of one component. Either may
// be nil.
type Lifecycle struct {
	Start func(context.Context) error
	Stop  func(context.Context) error
}

// Setup inspects each component for RouteRegistrar, Startable and Stoppable,
// keeping the order in which components were given.
func Setup(comps ...any) (lifecycles []Lifecycle, registrars []RouteRegistrar) {
	for _, c := range comps {
		if rr, ok := c.(RouteRegistrar); ok {
			registrars = append(registrars, rr)
		}
		var lc Lifecycle
		if s, ok := c.(Startable); ok {
			lc.Start = s.Start
		}
		if st, ok := c.(Stoppable); ok {
			lc.Stop = st.Stop
		}
		if lc.Start != nil || lc.Stop != nil {
			lifecycles = append(lifecycles, lc)
		}
	}
	return
}

// Start runs start functions in order. On failure the components before the
// failing one are stopped in reverse order and the error is returned.
// Routes are registered only once every component has started.
func Start(ctx context.Context, log logger.Logger, lifecycles []Lifecycle, registrars []RouteRegistrar, router chi.Router) error {
	for i, lc := range lifecycles {
		if lc.Start == nil {
			continue
		}
		if err := lc.Start(ctx); err != nil {
			log.Errorf("Cannot start component #%d: %v", i, err)
			for j := i - 1; j >= 0; j-- {
				if lifecycles[j].Stop == nil {
					continue
				}
				if rErr := lifecycles[j].Stop(context.Background()); rErr != nil {
					log.Errorf("Cannot stop component #%d during rollback: %v", j, rErr)
				}
			}
			return err
		}
	}

	for _, rr := range registrars {
		rr.RegisterRoutes(router)
	}

	return nil
}

// Stop stops all components in reverse order.
func Stop(ctx context.Context, log logger.Logger, lifecycles []Lifecycle) {
	for i := len(lifecycles) - 1; i >= 0; i-- {
		if lifecycles[i].Stop == nil {
			continue
		}
		if err := lifecycles[i].Stop(ctx); err != nil {
			log.Errorf("Cannot stop component #%d: %v", i, err)
		}
	}
}

// Serve runs srv until ctx is cancelled, then shuts it down within grace.
func Serve(ctx context.Context, srv *http.Server, log logger.Logger, grace time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
