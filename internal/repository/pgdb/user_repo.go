package pgdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/robosite/storefront/internal/domain"
	"github.com/robosite/storefront/internal/repository/pgdb/converter"
	"github.com/robosite/storefront/pkg/e"
)

// UserRepo реализует репозиторий пользователей поверх PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
	conv converter.UserConverter
}

func NewUserRepo(pool *pgxpool.Pool, conv converter.UserConverter) *UserRepo {
	return &UserRepo{pool: pool, conv: conv}
}

// Create вставляет нового пользователя. Email уникален.
func (u *UserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	model := u.conv.ToModel(user)
	query := `
		INSERT INTO users (id, name, email, role, hashed_password)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at;
	`

	if err := u.pool.QueryRow(ctx, query,
		model.ID, model.Name, model.Email, model.Role, model.HashedPassword,
	).Scan(&model.CreatedAt, &model.UpdatedAt); err != nil {
		if postgresDuplicate(err) {
			return nil, fmt.Errorf("%s: %w", whereami.WhereAmI(), e.ErrEmailTaken)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return u.conv.ToEntity(model), nil
}

// GetByEmail возвращает пользователя по email, nil если такого нет.
func (u *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, name, email, role, hashed_password, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var model converter.UserModel
	err := u.pool.QueryRow(ctx, query, email).Scan(
		&model.ID, &model.Name, &model.Email, &model.Role,
		&model.HashedPassword, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return u.conv.ToEntity(&model), nil
}
