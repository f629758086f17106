package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jabaapp/user-service/internal/domain/entity"
	"github.com/jabaapp/user-service/internal/domain/repository"
)

type UserRoleRepository struct {
	pool *pgxpool.Pool
}

func NewUserRoleRepository(pool *pgxpool.Pool) *UserRoleRepository {
	return &UserRoleRepository{pool: pool}
}

func (r *UserRoleRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]entity.UserRole, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, role_id FROM users_roles WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []entity.UserRole
	for rows.Next() {
		var ur entity.UserRole
		if err := rows.Scan(&ur.UserID, &ur.RoleID); err != nil {
			return nil, err
		}
		assignments = append(assignments, ur)
	}
	return assignments, rows.Err()
}

func (r *UserRoleRepository) Save(ctx context.Context, ur *entity.UserRole) error {
	res, err := r.pool.Exec(ctx, `
		INSERT INTO users_roles (user_id, role_id) VALUES ($1, $2)
	`, ur.UserID, ur.RoleID)
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("%w: %v", repository.ErrDuplicateKey, err)
		}
		return err
	}
	if res.RowsAffected() != 1 {
		return repository.ErrNoRowsAffected
	}
	return nil
}

func (r *UserRoleRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM users_roles WHERE user_id = $1`, userID)
	return err
}

var _ repository.UserRoleRepository = (*UserRoleRepository)(nil)
