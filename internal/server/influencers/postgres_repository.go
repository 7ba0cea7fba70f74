package influencers

import (
	"context"
	"fmt"
	"strings"

	"github.com/ymori23/ranking-server/internal/dbx"
	"github.com/ymori23/ranking-server/internal/server/models"
)

// orderColumns whitelists the sortable columns. Keys are the public field
// names used by the API; values are the SQL columns they map to.
var orderColumns = map[string]string{
	"id":         "id",
	"username":   "username",
	"followers":  "followers",
	"storeName":  "store_name",
	"popularity": "popularity",
	"region":     "region",
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// buildWhere composes the filter clause: region equality AND a substring
// OR-group over username/store_name/region. LIKE keeps the store's native
// case sensitivity.
func buildWhere(q ListQuery) (string, []any) {
	var conds []string
	var args []any

	if q.SelectedRegion != "" {
		args = append(args, q.SelectedRegion)
		conds = append(conds, fmt.Sprintf("region = $%d", len(args)))
	}

	if q.SearchTerm != "" {
		args = append(args, "%"+q.SearchTerm+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(username LIKE $%d OR store_name LIKE $%d OR region LIKE $%d)", n, n, n))
	}

	if len(conds) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

// orderClause maps the requested column and direction to SQL. An unknown
// column falls back to popularity descending regardless of direction.
func orderClause(q ListQuery) string {
	col, ok := orderColumns[q.OrderBy]
	if !ok {
		return "popularity DESC"
	}

	dir := "DESC"
	if q.OrderDirection == "asc" {
		dir = "ASC"
	}

	return col + " " + dir
}

func (r *PostgresRepository) List(ctx context.Context, q ListQuery) ([]models.Influencer, int64, error) {

	where, args := buildWhere(q)

	var total int64
	countQuery := "SELECT COUNT(*) FROM influencers" + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	args = append(args, q.RowsPerPage, q.Page*q.RowsPerPage)
	query := fmt.Sprintf(
		`SELECT id, username, followers, COALESCE(store_name, ''), popularity, COALESCE(region, '')
		 FROM influencers%s
		 ORDER BY %s
		 LIMIT $%d OFFSET $%d`,
		where, orderClause(q), len(args)-1, len(args))

	items, err := r.queryInfluencers(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *PostgresRepository) ListAll(ctx context.Context, region string) ([]models.Influencer, error) {

	where, args := buildWhere(ListQuery{SelectedRegion: region})

	query := fmt.Sprintf(
		`SELECT id, username, followers, COALESCE(store_name, ''), popularity, COALESCE(region, '')
		 FROM influencers%s
		 ORDER BY followers DESC`,
		where)

	return r.queryInfluencers(ctx, query, args...)
}

func (r *PostgresRepository) queryInfluencers(ctx context.Context, query string, args ...any) ([]models.Influencer, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items := []models.Influencer{}
	for rows.Next() {
		var inf models.Influencer
		if err := rows.Scan(&inf.ID, &inf.Username, &inf.Followers, &inf.StoreName, &inf.Popularity, &inf.Region); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, inf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return items, nil
}

func (r *PostgresRepository) PurgeAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `TRUNCATE TABLE influencers RESTART IDENTITY`); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Insert(ctx context.Context, inf *models.Influencer) error {
	query :=
		`INSERT INTO influencers (username, followers, store_name, popularity, region)
		 VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''))
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		inf.Username, inf.Followers, inf.StoreName, inf.Popularity, inf.Region).Scan(&inf.ID)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
