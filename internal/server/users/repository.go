package users

import (
	"context"

	"github.com/ymori23/ranking-server/internal/server/models"
)

type Repository interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	Upsert(ctx context.Context, user *models.User) (*models.User, error)
}
