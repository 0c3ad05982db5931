// Package server runs HTTP listeners until their context is cancelled.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Listener is one address and the handler served on it.
type Listener struct {
	Name    string
	Addr    string
	Handler http.Handler
}

// Run serves every listener until ctx is done or one of them fails, then shuts
// all of them down, waiting at most shutdownTimeout.
func Run(ctx context.Context, shutdownTimeout time.Duration, listeners ...Listener) error {
	g, ctx := errgroup.WithContext(ctx)

	servers := make([]*http.Server, 0, len(listeners))
	for _, l := range listeners {
		if l.Addr == "" {
			continue
		}
		srv := &http.Server{
			Addr:              l.Addr,
			Handler:           l.Handler,
			ReadHeaderTimeout: 10 * time.Second,
		}
		servers = append(servers, srv)

		l := l
		g.Go(func() error {
			log.WithField("addr", l.Addr).Infof("Starting %s server", l.Name)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var firstErr error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		log.Info("Server shut down.")
		return firstErr
	})

	return g.Wait()
}
