package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/servicedesk-hq/servicedesk/modules/assets/domain/aggregates/asset"
	"github.com/servicedesk-hq/servicedesk/pkg/composables"
)

const (
	assetFindQuery = `
        SELECT
            a.id,
            a.pid,
            a.type,
            a.ownership,
            a.status,
            a.brand,
            a.model,
            a.serial_number,
            a.old_tag,
            a.old_user,
            a.price::text,
            a.assigned_to,
            a.purchased_at,
            a.warranty_at,
            a.assigned_at,
            a.return_at,
            a.maintenance_at,
            a.components,
            a.attributes,
            a.created_at,
            a.updated_at
        FROM assets a`

	assetCountQuery = `SELECT COUNT(a.id) FROM assets a`

	assetExistsQuery = `SELECT EXISTS (SELECT 1 FROM assets WHERE pid = $1)`

	assetInsertQuery = `
        INSERT INTO assets (
            id, pid, type, ownership, status,
            brand, model, serial_number, old_tag, old_user,
            price, assigned_to,
            purchased_at, warranty_at, assigned_at, return_at, maintenance_at,
            components, attributes, created_at, updated_at
        )
        VALUES (
            $1, $2, $3, $4, $5,
            $6, $7, $8, $9, $10,
            $11, $12,
            $13, $14, $15, $16, $17,
            $18, $19, NOW(), NOW()
        )
        RETURNING
            id, pid, type, ownership, status,
            brand, model, serial_number, old_tag, old_user,
            price::text, assigned_to,
            purchased_at, warranty_at, assigned_at, return_at, maintenance_at,
            components, attributes, created_at, updated_at`
)

type PgAssetRepository struct{}

func NewAssetRepository() asset.Repository {
	return &PgAssetRepository{}
}

func (g *PgAssetRepository) Count(ctx context.Context) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := tx.QueryRow(ctx, assetCountQuery).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count assets")
	}
	return count, nil
}

func (g *PgAssetRepository) GetPaginated(ctx context.Context, params *asset.FindParams) ([]asset.Asset, error) {
	if params == nil {
		params = &asset.FindParams{}
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	where := []string{}
	args := []any{}
	if q := strings.TrimSpace(params.Q); q != "" {
		where = append(where, fmt.Sprintf(
			"(a.pid ILIKE $%d OR a.brand ILIKE $%d OR a.model ILIKE $%d OR a.serial_number ILIKE $%d)",
			len(args)+1, len(args)+1, len(args)+1, len(args)+1,
		))
		args = append(args, "%"+q+"%")
	}
	if params.Status != "" {
		where = append(where, fmt.Sprintf("a.status = $%d", len(args)+1))
		args = append(args, string(params.Status))
	}

	query := assetFindQuery
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY a.pid LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query assets")
	}
	defer rows.Close()

	out := make([]asset.Asset, 0, limit)
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (g *PgAssetRepository) GetByPID(ctx context.Context, pid string) (asset.Asset, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return asset.Asset{}, err
	}

	row := tx.QueryRow(ctx, assetFindQuery+` WHERE a.pid = $1`, strings.TrimSpace(pid))
	a, err := scanAsset(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return asset.Asset{}, asset.ErrNotFound
		}
		return asset.Asset{}, err
	}
	return a, nil
}

func (g *PgAssetRepository) ExistsByPID(ctx context.Context, pid string) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}

	var exists bool
	if err := tx.QueryRow(ctx, assetExistsQuery, strings.TrimSpace(pid)).Scan(&exists); err != nil {
		return false, errors.Wrap(err, "failed to check asset existence")
	}
	return exists, nil
}

func (g *PgAssetRepository) Create(ctx context.Context, data asset.Asset) (asset.Asset, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return asset.Asset{}, err
	}

	m, err := toDBAsset(data)
	if err != nil {
		return asset.Asset{}, err
	}

	row := tx.QueryRow(ctx, assetInsertQuery,
		m.ID, m.PID, m.Type, m.Ownership, m.Status,
		m.Brand, m.Model, m.SerialNumber, m.OldTag, m.OldUser,
		m.Price, m.AssignedTo,
		m.PurchasedAt, m.WarrantyAt, m.AssignedAt, m.ReturnAt, m.MaintenanceAt,
		m.Components, m.Attributes,
	)
	a, err := scanAsset(row)
	if err != nil {
		return asset.Asset{}, errors.Wrap(err, "failed to insert asset")
	}
	return a, nil
}
