package influencers

import (
	"context"
	"fmt"

	"github.com/ymori23/ranking-server/internal/common"
	"github.com/ymori23/ranking-server/internal/server/models"
)

const (
	defaultRowsPerPage = 10
	defaultOrderBy     = "popularity"
)

// ListResult is the listing envelope: one page of rows plus the count of
// rows matching the filters independent of pagination.
type ListResult struct {
	Items      []models.Influencer `json:"items"`
	TotalItems int64               `json:"totalItems"`
}

// Service normalizes listing inputs and shields callers from raw store
// errors: any failure surfaces as common.ErrorInternal with the diagnostic
// preserved in the wrap for logging.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func normalize(q ListQuery) ListQuery {
	if q.Page < 0 {
		q.Page = 0
	}
	if q.RowsPerPage <= 0 {
		q.RowsPerPage = defaultRowsPerPage
	}
	if q.OrderBy == "" {
		q.OrderBy = defaultOrderBy
	}
	if q.OrderDirection != "asc" {
		q.OrderDirection = "desc"
	}
	return q
}

func (s *Service) List(ctx context.Context, q ListQuery) (*ListResult, error) {

	items, total, err := s.repo.List(ctx, normalize(q))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return &ListResult{Items: items, TotalItems: total}, nil
}

// ListAll returns every row matching the region, sorted by followers
// descending. TotalItems equals the number of returned items since nothing
// is paginated away.
func (s *Service) ListAll(ctx context.Context, region string) (*ListResult, error) {

	items, err := s.repo.ListAll(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return &ListResult{Items: items, TotalItems: int64(len(items))}, nil
}
