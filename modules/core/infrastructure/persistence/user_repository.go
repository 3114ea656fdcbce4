package persistence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/servicedesk-hq/servicedesk/modules/core/domain/aggregates/user"
	"github.com/servicedesk-hq/servicedesk/pkg/composables"
)

const (
	userFindQuery = `
        SELECT
            u.id,
            u.email,
            u.username,
            u.first_name,
            u.last_name,
            u.created_at,
            u.updated_at
        FROM users u`

	userCountQuery = `SELECT COUNT(u.id) FROM users u`

	userInsertQuery = `
        INSERT INTO users (id, email, username, first_name, last_name, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
        RETURNING id, email, username, first_name, last_name, created_at, updated_at`
)

type PgUserRepository struct{}

func NewUserRepository() user.Repository {
	return &PgUserRepository{}
}

func (g *PgUserRepository) Count(ctx context.Context) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := tx.QueryRow(ctx, userCountQuery).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count users")
	}
	return count, nil
}

func (g *PgUserRepository) GetPaginated(ctx context.Context, params *user.FindParams) ([]user.User, error) {
	if params == nil {
		params = &user.FindParams{}
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

	query := userFindQuery
	args := []any{}
	if q := strings.TrimSpace(params.Q); q != "" {
		query += ` WHERE u.email ILIKE $1 OR u.username ILIKE $1 OR u.first_name ILIKE $1 OR u.last_name ILIKE $1`
		args = append(args, "%"+q+"%")
	}
	query += fmt.Sprintf(` ORDER BY u.email LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query users")
	}
	defer rows.Close()

	out := make([]user.User, 0, limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (g *PgUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return user.User{}, err
	}

	row := tx.QueryRow(ctx, userFindQuery+` WHERE u.id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (g *PgUserRepository) GetByEmailOrUsername(ctx context.Context, identifier string) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return user.User{}, err
	}

	query := userFindQuery + `
        WHERE LOWER(u.email) = LOWER($1) OR LOWER(u.username) = LOWER($1)
        ORDER BY u.created_at
        LIMIT 1`
	row := tx.QueryRow(ctx, query, strings.TrimSpace(identifier))
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (g *PgUserRepository) Create(ctx context.Context, data user.User) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return user.User{}, err
	}

	id := data.ID()
	if id == uuid.Nil {
		id = uuid.New()
	}

	row := tx.QueryRow(ctx, userInsertQuery, id, data.Email(), data.Username(), data.FirstName(), data.LastName())
	u, err := scanUser(row)
	if err != nil {
		return user.User{}, errors.Wrap(err, "failed to insert user")
	}
	return u, nil
}

func scanUser(row pgx.Row) (user.User, error) {
	var (
		id                   uuid.UUID
		email, username      string
		firstName, lastName  string
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &email, &username, &firstName, &lastName, &createdAt, &updatedAt); err != nil {
		return user.User{}, err
	}
	return user.Hydrate(id, email, username, firstName, lastName, createdAt, updatedAt), nil
}
