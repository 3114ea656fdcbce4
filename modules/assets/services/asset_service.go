package services

import (
	"context"

	"github.com/servicedesk-hq/servicedesk/modules/assets/domain/aggregates/asset"
	"github.com/servicedesk-hq/servicedesk/pkg/composables"
	"github.com/servicedesk-hq/servicedesk/pkg/eventbus"
)

type AssetService struct {
	repo      asset.Repository
	publisher eventbus.EventBus
}

func NewAssetService(repo asset.Repository, publisher eventbus.EventBus) *AssetService {
	return &AssetService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *AssetService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *AssetService) GetPaginated(ctx context.Context, params *asset.FindParams) ([]asset.Asset, error) {
	return s.repo.GetPaginated(ctx, params)
}

func (s *AssetService) GetByPID(ctx context.Context, pid string) (asset.Asset, error) {
	return s.repo.GetByPID(ctx, pid)
}

func (s *AssetService) Create(ctx context.Context, data asset.Asset) (asset.Asset, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (asset.Asset, error) {
		created, err := s.repo.Create(txCtx, data)
		if err != nil {
			return asset.Asset{}, err
		}
		s.publisher.Publish(asset.NewCreatedEvent(created))
		return created, nil
	})
}
