package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopline/order-system/internal/model"
)

// UserRepository предоставляет доступ к хранилищу пользователей в PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository создаёт репозиторий пользователей и инициализирует схему БД через миграции.
func NewUserRepository(dsn string) (*UserRepository, error) {
	pool, err := newPool(dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := runMigrations(ctx, pool, "migrations/users"); err != nil {
		pool.Close()
		return nil, err
	}

	return &UserRepository{pool: pool}, nil
}

// Close закрывает пул соединений с БД.
func (r *UserRepository) Close() error {
	r.pool.Close()
	return nil
}

const userColumns = `id, name, email, phone_number, address, age, status`

func scanUser(row pgx.Row) (*model.User, error) {
	var (
		u      model.User
		status string
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PhoneNumber, &u.Address, &u.Age, &status)
	if err != nil {
		return nil, err
	}

	u.Status = model.UserStatus(status)
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// CreateUser сохраняет нового пользователя. Возвращает ErrEmailExists при занятом email.
func (r *UserRepository) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, phone_number, address, age, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+userColumns,
		u.Name, u.Email, u.PhoneNumber, u.Address, u.Age, string(u.Status),
	)

	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrEmailExists, u.Email)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return created, nil
}

// GetUserByID возвращает пользователя по идентификатору.
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetUserByEmail возвращает пользователя по адресу электронной почты.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func (r *UserRepository) queryUsers(ctx context.Context, query string, args ...any) ([]model.User, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return users, nil
}

// GetAllUsers возвращает всех пользователей справочника.
func (r *UserRepository) GetAllUsers(ctx context.Context) ([]model.User, error) {
	return r.queryUsers(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
}

// SearchUsersByName возвращает пользователей, имя которых содержит подстроку без учёта регистра.
func (r *UserRepository) SearchUsersByName(ctx context.Context, name string) ([]model.User, error) {
	return r.queryUsers(ctx,
		`SELECT `+userColumns+` FROM users WHERE name ILIKE '%' || $1 || '%' ORDER BY id`,
		name)
}

// UpdateUser обновляет поля пользователя. Возвращает ErrEmailExists, если новый email занят другим пользователем.
func (r *UserRepository) UpdateUser(ctx context.Context, id int64, u *model.User) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE users
		 SET name = $2, email = $3, phone_number = $4, address = $5, age = $6, status = $7
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, u.Name, u.Email, u.PhoneNumber, u.Address, u.Age, string(u.Status),
	)

	updated, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrEmailExists, u.Email)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

// UpdateUserStatus переводит пользователя в указанный статус.
func (r *UserRepository) UpdateUserStatus(ctx context.Context, id int64, status model.UserStatus) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE users SET status = $2 WHERE id = $1 RETURNING `+userColumns,
		id, string(status),
	)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update user status: %w", err)
	}
	return u, nil
}

// DeleteUser удаляет пользователя по идентификатору.
func (r *UserRepository) DeleteUser(ctx context.Context, id int64) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// DeleteUserByEmail удаляет пользователя по адресу электронной почты.
func (r *UserRepository) DeleteUserByEmail(ctx context.Context, email string) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("delete user by email: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
