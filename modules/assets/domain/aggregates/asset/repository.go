package asset

import (
	"context"

	"github.com/go-faster/errors"
)

var ErrNotFound = errors.New("asset not found")

type FindParams struct {
	Q      string
	Status Status
	Limit  int
	Offset int
}

type Repository interface {
	Count(ctx context.Context) (int64, error)
	GetPaginated(ctx context.Context, params *FindParams) ([]Asset, error)
	GetByPID(ctx context.Context, pid string) (Asset, error)
	// ExistsByPID is the duplicate guard's point lookup against the unique
	// PID index.
	ExistsByPID(ctx context.Context, pid string) (bool, error)
	Create(ctx context.Context, a Asset) (Asset, error)
}
