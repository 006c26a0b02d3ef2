package main

import (
	"context"
	"time"
)

const analyticsRefreshTimeout = 30 * time.Second

// startAnalyticsRefresher recomputes the cached platform totals shortly
// before each copy expires, so GET /analytics rarely reaches the database.
// It does nothing when no cache is configured.
func (app *application) startAnalyticsRefresher(ctx context.Context, ttl time.Duration) {
	if app.analytics == nil || app.analytics.Cache == nil || ttl <= 0 {
		return
	}
	interval := ttl - ttl/10
	if interval <= 0 {
		interval = ttl
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		runOnce := func() {
			runCtx, cancel := context.WithTimeout(ctx, analyticsRefreshTimeout)
			defer cancel()
			if _, err := app.analytics.Refresh(runCtx); err != nil {
				app.log.WithError(err).Warn("analytics refresher: failed to recompute totals")
			}
		}

		runOnce()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runOnce()
			}
		}
	}()
}
