// Package db wires the SQL connection, the repositories built on top of it,
// and the embedded schema migrations.
package db

import (
	"context"
	"database/sql"

	"github.com/ymori23/ranking-server/internal/server/influencers"
	"github.com/ymori23/ranking-server/internal/server/users"
)

type RepositoryManager interface {
	Conn() *sql.DB
	Users() users.Repository
	Influencers() influencers.Repository
	RunMigrations(ctx context.Context) error
	Close() error
}
