package user

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("user not found")

type FindParams struct {
	Q      string
	Limit  int
	Offset int
}

type Repository interface {
	Count(ctx context.Context) (int64, error)
	GetPaginated(ctx context.Context, params *FindParams) ([]User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	// GetByEmailOrUsername resolves a free-text identifier against either the
	// email or the username column, case-insensitively.
	GetByEmailOrUsername(ctx context.Context, identifier string) (User, error)
	Create(ctx context.Context, u User) (User, error)
}
