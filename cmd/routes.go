package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"

	"fabhomes/internal/handlers"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	chains := map[handlers.Access]alice.Chain{
		handlers.AccessPublic:         standardMiddleware,
		handlers.AccessCallerOptional: standardMiddleware.Append(app.auth.Authenticate),
		handlers.AccessCallerRequired: standardMiddleware.Append(app.auth.Authenticate, handlers.RequireCaller),
	}

	mux := pat.New()
	for _, op := range app.handlers.Operations() {
		mux.Add(op.Method, op.Pattern, chains[op.Access].ThenFunc(op.Handler))
		app.log.WithFields(logrus.Fields{
			"operation":  op.Name,
			"method":     op.Method,
			"pattern":    op.Pattern,
			"access":     op.Access.String(),
			"projection": string(op.Projection),
		}).Debug("route registered")
	}

	mux.Get("/health", standardMiddleware.ThenFunc(app.health))
	return mux
}

func (app *application) health(w http.ResponseWriter, r *http.Request) {
	if app.db != nil {
		if err := app.db.PingContext(r.Context()); err != nil {
			app.log.WithError(err).Warn("health check: database unreachable")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
	}
	w.Write([]byte(`{"status":"ok"}`))
}
