package influencers

import (
	"context"

	"github.com/ymori23/ranking-server/internal/server/models"
)

// ListQuery carries the listing inputs after normalization. Zero values mean
// "no filter" for SearchTerm and SelectedRegion.
type ListQuery struct {
	Page           int
	RowsPerPage    int
	OrderBy        string
	OrderDirection string
	SearchTerm     string
	SelectedRegion string
}

type Repository interface {
	// List returns one page of rows plus the total count of rows matching
	// the filters before pagination.
	List(ctx context.Context, q ListQuery) ([]models.Influencer, int64, error)

	// ListAll returns every row matching the region filter, ordered by
	// followers descending.
	ListAll(ctx context.Context, region string) ([]models.Influencer, error)

	// PurgeAll empties the table in one statement.
	PurgeAll(ctx context.Context) error

	// Insert stages one row.
	Insert(ctx context.Context, inf *models.Influencer) error
}
