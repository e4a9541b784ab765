package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mentorlink/api/internal/entity"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup criteria.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailDuplicate is returned when the user email is already registered.
	ErrEmailDuplicate = errors.New("email already exists")
)

const userColumns = `id, full_name, email, password_hash, specialty, role, created_at, updated_at`

// UserPatch lists the user attributes that may change on update. Nil fields are left untouched.
type UserPatch struct {
	FullName     *string
	Email        *string
	PasswordHash *string
	Specialty    *string
	Role         *string
}

// UsersRepository declares persistence operations for users.
type UsersRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	Search(ctx context.Context, fullName, specialty string) ([]entity.User, error)
	Update(ctx context.Context, id uuid.UUID, patch UserPatch) (*entity.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PGXUsersRepository implements UsersRepository with pgx.
type PGXUsersRepository struct {
	pool pgxPool
}

// NewPGXUsersRepository instantiates a users repository.
func NewPGXUsersRepository(pool pgxPool) *PGXUsersRepository {
	return &PGXUsersRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	if err := row.Scan(&user.ID, &user.FullName, &user.Email, &user.PasswordHash, &user.Specialty, &user.Role, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail fetches a user by email if present.
func (r *PGXUsersRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("query user by email: %w", err)
	}
	return user, nil
}

// FindByID retrieves a user by identifier.
func (r *PGXUsersRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("query user by id: %w", err)
	}
	return user, nil
}

// Create inserts a new user row.
func (r *PGXUsersRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
        INSERT INTO users (full_name, email, password_hash, specialty, role)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING `+userColumns,
		user.FullName, user.Email, user.PasswordHash, user.Specialty, user.Role)

	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return nil, fmt.Errorf("%w: %v", ErrEmailDuplicate, err)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return created, nil
}

// List returns all users ordered by creation date (desc).
func (r *PGXUsersRepository) List(ctx context.Context) ([]entity.User, error) {
	return r.many(ctx, "list users", `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
}

// Search filters users by a case-insensitive name fragment and exact specialty. Empty filters are ignored.
func (r *PGXUsersRepository) Search(ctx context.Context, fullName, specialty string) ([]entity.User, error) {
	var b setBuilder
	conditions := []string{"TRUE"}
	if name := strings.TrimSpace(fullName); name != "" {
		conditions = append(conditions, "full_name ILIKE '%' || "+b.next(name)+" || '%'")
	}
	if s := strings.TrimSpace(specialty); s != "" {
		conditions = append(conditions, "LOWER(specialty) = LOWER("+b.next(s)+")")
	}

	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s ORDER BY full_name`, userColumns, strings.Join(conditions, " AND "))
	return r.many(ctx, "search users", query, b.args...)
}

func (r *PGXUsersRepository) many(ctx context.Context, op, query string, args ...any) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	users := make([]entity.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// Update patches user attributes.
func (r *PGXUsersRepository) Update(ctx context.Context, id uuid.UUID, patch UserPatch) (*entity.User, error) {
	var b setBuilder
	if patch.FullName != nil {
		b.add("full_name", *patch.FullName)
	}
	if patch.Email != nil {
		b.add("email", *patch.Email)
	}
	if patch.PasswordHash != nil {
		b.add("password_hash", *patch.PasswordHash)
	}
	if patch.Specialty != nil {
		b.add("specialty", *patch.Specialty)
	}
	if patch.Role != nil {
		b.add("role", *patch.Role)
	}

	if b.empty() {
		return r.FindByID(ctx, id)
	}

	b.clauses = append(b.clauses, "updated_at = NOW()")
	where := b.next(id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = %s RETURNING %s`, strings.Join(b.clauses, ", "), where, userColumns)

	user, err := scanUser(r.pool.QueryRow(ctx, query, b.args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		if isUniqueViolation(err, "users_email_key") {
			return nil, fmt.Errorf("%w: %v", ErrEmailDuplicate, err)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// Delete removes a user by id.
func (r *PGXUsersRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
