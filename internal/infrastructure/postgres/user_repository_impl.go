package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jabaapp/user-service/internal/domain/entity"
	"github.com/jabaapp/user-service/internal/domain/repository"
)

// uniqueViolation is the postgres error code for duplicate keys.
const uniqueViolation = "23505"

func isDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// aggregateQuery loads user rows together with the joined address and the
// role id/name arrays. Both arrays order by role name so index i of one
// pairs with index i of the other; the FILTER keeps role-less users from
// producing a [NULL] array out of the LEFT JOIN.
const aggregateQuery = `
	SELECT u.id, u.name, u.login, u.email, u.password, u.last_update,
	       a.id, a.street, a.city, a.state, a.zip, a.number,
	       ARRAY_AGG(r.id::text ORDER BY r.name) FILTER (WHERE r.id IS NOT NULL) AS role_ids,
	       ARRAY_AGG(r.name ORDER BY r.name) FILTER (WHERE r.id IS NOT NULL) AS role_names
	FROM users u
	LEFT JOIN addresses a ON u.id = a.user_id
	LEFT JOIN users_roles ur ON u.id = ur.user_id
	LEFT JOIN roles r ON ur.role_id = r.id
`

func scanAggregate(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var (
		addrID                           *uuid.UUID
		street, city, state, zip, number *string
		roleIDs, roleNames               []string
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Login, &u.Email, &u.Password, &u.LastUpdate,
		&addrID, &street, &city, &state, &zip, &number, &roleIDs, &roleNames); err != nil {
		return nil, err
	}

	if addrID != nil {
		u.Address = &entity.Address{
			ID:     *addrID,
			Street: deref(street),
			City:   deref(city),
			State:  deref(state),
			Zip:    deref(zip),
			Number: deref(number),
			UserID: u.ID,
		}
	}

	roles, err := rolesFromArrays(roleIDs, roleNames)
	if err != nil {
		return nil, err
	}
	u.Roles = roles
	return u, nil
}

// rolesFromArrays zips the parallel id and name arrays produced by
// aggregateQuery into roles.
func rolesFromArrays(ids, names []string) ([]entity.Role, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) != len(names) {
		return nil, fmt.Errorf("role arrays out of step: %d ids, %d names", len(ids), len(names))
	}
	roles := make([]entity.Role, 0, len(ids))
	for i, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parsing role id %q: %w", raw, err)
		}
		roles = append(roles, entity.Role{ID: id, Name: names[i]})
	}
	return roles, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, aggregateQuery+`
		WHERE u.id = $1
		GROUP BY u.id, a.id
	`, id)
	u, err := scanAggregate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) FindAll(ctx context.Context, limit, offset int) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, aggregateQuery+`
		GROUP BY u.id, a.id
		ORDER BY u.login
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		u, err := scanAggregate(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *UserRepository) findByColumn(ctx context.Context, column, value string) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, login, email, password, last_update
		FROM users
		WHERE `+column+` = $1
	`, value)
	if err := row.Scan(&u.ID, &u.Name, &u.Login, &u.Email, &u.Password, &u.LastUpdate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*entity.User, error) {
	return r.findByColumn(ctx, "login", login)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findByColumn(ctx, "email", email)
}

func (r *UserRepository) Save(ctx context.Context, u *entity.User) error {
	id := uuid.New()
	lastUpdate := time.Now().UTC()

	res, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, name, login, email, password, last_update)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, u.Name, u.Login, u.Email, u.Password, lastUpdate)
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("%w: %v", repository.ErrDuplicateKey, err)
		}
		return err
	}
	if res.RowsAffected() != 1 {
		return repository.ErrNoRowsAffected
	}

	u.ID = id
	u.LastUpdate = lastUpdate
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	lastUpdate := time.Now().UTC()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, login = $2, email = $3, password = $4, last_update = $5
		WHERE id = $6
	`, u.Name, u.Login, u.Email, u.Password, lastUpdate, u.ID)
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("%w: %v", repository.ErrDuplicateKey, err)
		}
		return err
	}
	if res.RowsAffected() != 1 {
		return repository.ErrNoRowsAffected
	}

	u.LastUpdate = lastUpdate
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, u *entity.User) error {
	lastUpdate := time.Now().UTC()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET password = $1, last_update = $2
		WHERE id = $3
	`, u.Password, lastUpdate, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() != 1 {
		return repository.ErrNoRowsAffected
	}

	u.LastUpdate = lastUpdate
	return nil
}

func (r *UserRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	// addresses and users_roles rows go with the user via ON DELETE CASCADE
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

var _ repository.UserRepository = (*UserRepository)(nil)
