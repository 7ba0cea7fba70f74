package users

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ymori23/ranking-server/internal/common"
	"github.com/ymori23/ranking-server/internal/server/models"
)

type fakeUsersRepo struct {
	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) Upsert(ctx context.Context, user *models.User) (*models.User, error) {
	return user, nil
}

func TestVerify_Success(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	svc := NewService(&fakeUsersRepo{getOut: &models.User{ID: 1, Username: "admin", PasswordHash: hash}})

	assert.NoError(t, svc.Verify(context.Background(), "admin", "correct horse"))
}

func TestVerify_WrongPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	svc := NewService(&fakeUsersRepo{getOut: &models.User{ID: 1, Username: "admin", PasswordHash: hash}})

	err = svc.Verify(context.Background(), "admin", "battery staple")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestVerify_UnknownUser(t *testing.T) {
	svc := NewService(&fakeUsersRepo{getErr: common.ErrorNotFound})

	err := svc.Verify(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, common.ErrorUnauthorized, "unknown user must look like bad credentials")
}

func TestVerify_RepoFailure(t *testing.T) {
	svc := NewService(&fakeUsersRepo{getErr: errors.New("db is down")})

	err := svc.Verify(context.Background(), "admin", "whatever")
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.NotEmpty(t, hash)
}
