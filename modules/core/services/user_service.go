package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/servicedesk-hq/servicedesk/modules/core/domain/aggregates/user"
	"github.com/servicedesk-hq/servicedesk/pkg/composables"
	"github.com/servicedesk-hq/servicedesk/pkg/eventbus"
)

type UserService struct {
	repo      user.Repository
	publisher eventbus.EventBus
}

func NewUserService(repo user.Repository, publisher eventbus.EventBus) *UserService {
	return &UserService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *UserService) GetPaginated(ctx context.Context, params *user.FindParams) ([]user.User, error) {
	return s.repo.GetPaginated(ctx, params)
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetByEmailOrUsername(ctx context.Context, identifier string) (user.User, error) {
	return s.repo.GetByEmailOrUsername(ctx, identifier)
}

func (s *UserService) Create(ctx context.Context, data user.User) (user.User, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (user.User, error) {
		created, err := s.repo.Create(txCtx, data)
		if err != nil {
			return user.User{}, err
		}
		s.publisher.Publish(user.NewCreatedEvent(created))
		return created, nil
	})
}
