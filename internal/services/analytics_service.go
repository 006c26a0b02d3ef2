package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"fabhomes/internal/models"
)

const analyticsCacheKey = "analytics:counts"

// AnalyticsService reads the platform totals, through Cache when one is set.
// Cache failures are logged and fall through to the store.
type AnalyticsService struct {
	Store AnalyticsStore
	Cache Cache
	TTL   time.Duration
	Log   logrus.FieldLogger
}

func (s *AnalyticsService) Get(ctx context.Context) (models.Analytics, error) {
	if s.Cache != nil && s.TTL > 0 {
		var cached models.Analytics
		hit, err := s.Cache.GetJSON(ctx, analyticsCacheKey, &cached)
		if err != nil {
			s.Log.WithError(err).Warn("analytics cache read failed")
		} else if hit {
			return cached, nil
		}
	}

	return s.Refresh(ctx)
}

// Refresh recomputes the totals and rewrites the cached copy.
func (s *AnalyticsService) Refresh(ctx context.Context) (models.Analytics, error) {
	counts, err := s.Store.Counts(ctx)
	if err != nil {
		return models.Analytics{}, err
	}
	if s.Cache != nil && s.TTL > 0 {
		if err := s.Cache.SetJSON(ctx, analyticsCacheKey, counts, s.TTL); err != nil {
			s.Log.WithError(err).Warn("analytics cache write failed")
		}
	}
	return counts, nil
}
