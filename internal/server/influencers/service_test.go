package influencers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ymori23/ranking-server/internal/common"
	"github.com/ymori23/ranking-server/internal/server/models"
)

type fakeRepo struct {
	lastQuery ListQuery
	items     []models.Influencer
	total     int64
	err       error
}

func (f *fakeRepo) List(ctx context.Context, q ListQuery) ([]models.Influencer, int64, error) {
	f.lastQuery = q
	return f.items, f.total, f.err
}

func (f *fakeRepo) ListAll(ctx context.Context, region string) ([]models.Influencer, error) {
	return f.items, f.err
}

func (f *fakeRepo) PurgeAll(ctx context.Context) error { return f.err }

func (f *fakeRepo) Insert(ctx context.Context, inf *models.Influencer) error { return f.err }

func TestList_NormalizesDefaults(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	_, err := svc.List(context.Background(), ListQuery{Page: -3, RowsPerPage: 0, OrderDirection: "sideways"})
	require.NoError(t, err)

	assert.Equal(t, 0, repo.lastQuery.Page)
	assert.Equal(t, 10, repo.lastQuery.RowsPerPage)
	assert.Equal(t, "popularity", repo.lastQuery.OrderBy)
	assert.Equal(t, "desc", repo.lastQuery.OrderDirection)
}

func TestList_KeepsExplicitValues(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	_, err := svc.List(context.Background(), ListQuery{
		Page: 2, RowsPerPage: 25, OrderBy: "followers", OrderDirection: "asc",
		SearchTerm: "abc", SelectedRegion: "EU",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, repo.lastQuery.Page)
	assert.Equal(t, 25, repo.lastQuery.RowsPerPage)
	assert.Equal(t, "followers", repo.lastQuery.OrderBy)
	assert.Equal(t, "asc", repo.lastQuery.OrderDirection)
	assert.Equal(t, "abc", repo.lastQuery.SearchTerm)
	assert.Equal(t, "EU", repo.lastQuery.SelectedRegion)
}

func TestList_TotalIndependentOfPageSize(t *testing.T) {
	repo := &fakeRepo{
		items: []models.Influencer{{ID: 1}, {ID: 2}},
		total: 42,
	}
	svc := NewService(repo)

	res, err := svc.List(context.Background(), ListQuery{RowsPerPage: 2})
	require.NoError(t, err)

	assert.Len(t, res.Items, 2)
	assert.EqualValues(t, 42, res.TotalItems)
}

func TestList_StoreErrorBecomesInternal(t *testing.T) {
	repo := &fakeRepo{err: errors.New("db is down")}
	svc := NewService(repo)

	_, err := svc.List(context.Background(), ListQuery{})
	assert.ErrorIs(t, err, common.ErrorInternal)
	assert.Contains(t, err.Error(), "db is down", "diagnostic detail must be preserved for logging")
}

func TestListAll_TotalEqualsItemCount(t *testing.T) {
	repo := &fakeRepo{items: []models.Influencer{{ID: 1}, {ID: 2}, {ID: 3}}}
	svc := NewService(repo)

	res, err := svc.ListAll(context.Background(), "EU")
	require.NoError(t, err)

	assert.EqualValues(t, 3, res.TotalItems)
	assert.Len(t, res.Items, 3)
}

func TestListAll_StoreErrorBecomesInternal(t *testing.T) {
	repo := &fakeRepo{err: errors.New("db is down")}
	svc := NewService(repo)

	_, err := svc.ListAll(context.Background(), "")
	assert.ErrorIs(t, err, common.ErrorInternal)
}
