package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jabaapp/user-service/internal/domain/entity"
	"github.com/jabaapp/user-service/internal/domain/repository"
)

type AddressRepository struct {
	pool *pgxpool.Pool
}

func NewAddressRepository(pool *pgxpool.Pool) *AddressRepository {
	return &AddressRepository{pool: pool}
}

func (r *AddressRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Address, error) {
	a := &entity.Address{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, street, city, state, zip, number, user_id
		FROM addresses
		WHERE user_id = $1
	`, userID)
	if err := row.Scan(&a.ID, &a.Street, &a.City, &a.State, &a.Zip, &a.Number, &a.UserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *AddressRepository) Save(ctx context.Context, a *entity.Address) error {
	id := uuid.New()

	res, err := r.pool.Exec(ctx, `
		INSERT INTO addresses (id, street, city, state, zip, number, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, a.Street, a.City, a.State, a.Zip, a.Number, a.UserID)
	if err != nil {
		return err
	}
	if res.RowsAffected() != 1 {
		return repository.ErrNoRowsAffected
	}

	a.ID = id
	return nil
}

func (r *AddressRepository) Update(ctx context.Context, a *entity.Address) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE addresses
		SET street = $1, city = $2, state = $3, zip = $4, number = $5
		WHERE id = $6 AND user_id = $7
	`, a.Street, a.City, a.State, a.Zip, a.Number, a.ID, a.UserID)
	if err != nil {
		return err
	}
	if res.RowsAffected() != 1 {
		return repository.ErrNoRowsAffected
	}
	return nil
}

func (r *AddressRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM addresses WHERE user_id = $1`, userID)
	return err
}

var _ repository.AddressRepository = (*AddressRepository)(nil)
