package telemetry

import (
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
)

// SentryOptions selects where errors are reported. An empty DSN keeps sentry silent.
type SentryOptions struct {
	DSN         string
	Environment string
	Release     string
}

// InitSentry initialises the global sentry client and returns a flush func for shutdown.
func InitSentry(opts SentryOptions) (func(), error) {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         opts.DSN,
		Environment: opts.Environment,
		Release:     opts.Release,
		BeforeSend: func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
			if hint.Context != nil {
				if req, ok := hint.Context.Value(sentry.RequestContextKey).(*http.Request); ok {
					log.WithField("path", req.URL.Path).Debug("Sentry event for request")
				}
			}
			return event
		},
	})
	if err != nil {
		return func() {}, err
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}

// CaptureError reports err on the request's hub, falling back to the global hub.
func CaptureError(r *http.Request, err error) {
	hub := sentry.GetHubFromContext(r.Context())
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.CaptureException(err)
}
