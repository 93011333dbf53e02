package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/cppla/civicreport/metrics"
	"github.com/cppla/civicreport/models"
	"github.com/cppla/civicreport/repository"
)

const listCachePrefix = "cache:submissions:list:"

// ListCache is the read-through cache in front of the review listing.
type ListCache interface {
	GetJSON(ctx context.Context, key string, v interface{}) bool
	SetJSON(ctx context.Context, key string, v interface{})
	InvalidateByPrefix(ctx context.Context, prefix string)
}

// ListingService answers the review dashboard's listing query.
type ListingService struct {
	repo  repository.SubmissionRepository
	cache ListCache
	log   *zap.Logger
}

func NewListingService(repo repository.SubmissionRepository, cache ListCache, log *zap.Logger) *ListingService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ListingService{repo: repo, cache: cache, log: log}
}

// List returns submissions with the given status (all when empty), newest first.
// A store failure is logged and answered with an empty list, so the dashboard cannot
// tell an outage from an empty result.
func (l *ListingService) List(ctx context.Context, status string) []models.Submission {
	key := listCachePrefix + "status=" + status
	if l.cache != nil {
		var cached []models.Submission
		if l.cache.GetJSON(ctx, key, &cached) {
			return cached
		}
	}

	items, err := l.repo.List(ctx, status)
	if err != nil {
		metrics.ListingErrorsTotal.Inc()
		l.log.Error("list submissions failed", zap.String("status", status), zap.Error(err))
		return []models.Submission{}
	}
	if items == nil {
		items = []models.Submission{}
	}
	if l.cache != nil {
		l.cache.SetJSON(ctx, key, items)
	}
	return items
}
