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

// ErrTestimonyNotFound is returned when no testimony matches the lookup criteria.
var ErrTestimonyNotFound = errors.New("testimony not found")

const testimonyColumns = `id, user_name, role, description, image_url, created_at, updated_at`

// TestimonyPatch lists the testimony attributes that may change on update.
type TestimonyPatch struct {
	UserName    *string
	Role        *string
	Description *string
	ImageURL    *string
}

// TestimoniesRepository declares persistence operations for testimonies.
type TestimoniesRepository interface {
	Create(ctx context.Context, testimony *entity.Testimony) (*entity.Testimony, error)
	List(ctx context.Context) ([]entity.Testimony, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Testimony, error)
	FindByIDAndUserName(ctx context.Context, id uuid.UUID, userName string) (*entity.Testimony, error)
	Update(ctx context.Context, id uuid.UUID, patch TestimonyPatch) (*entity.Testimony, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PGXTestimoniesRepository implements TestimoniesRepository with pgx.
type PGXTestimoniesRepository struct {
	pool pgxPool
}

// NewPGXTestimoniesRepository instantiates a testimonies repository.
func NewPGXTestimoniesRepository(pool pgxPool) *PGXTestimoniesRepository {
	return &PGXTestimoniesRepository{pool: pool}
}

func scanTestimony(row pgx.Row) (*entity.Testimony, error) {
	var t entity.Testimony
	if err := row.Scan(&t.ID, &t.UserName, &t.Role, &t.Description, &t.ImageURL, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PGXTestimoniesRepository) one(ctx context.Context, op, query string, args ...any) (*entity.Testimony, error) {
	testimony, err := scanTestimony(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTestimonyNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return testimony, nil
}

// Create inserts a new testimony row.
func (r *PGXTestimoniesRepository) Create(ctx context.Context, testimony *entity.Testimony) (*entity.Testimony, error) {
	return r.one(ctx, "insert testimony", `
        INSERT INTO testimonies (user_name, role, description, image_url)
        VALUES ($1, $2, $3, $4)
        RETURNING `+testimonyColumns,
		testimony.UserName, testimony.Role, testimony.Description, testimony.ImageURL)
}

// List returns every testimony, newest first.
func (r *PGXTestimoniesRepository) List(ctx context.Context) ([]entity.Testimony, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+testimonyColumns+` FROM testimonies ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list testimonies: %w", err)
	}
	defer rows.Close()

	testimonies := make([]entity.Testimony, 0)
	for rows.Next() {
		testimony, err := scanTestimony(rows)
		if err != nil {
			return nil, fmt.Errorf("scan testimony row: %w", err)
		}
		testimonies = append(testimonies, *testimony)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate testimonies: %w", err)
	}
	return testimonies, nil
}

// FindByID retrieves a testimony by identifier.
func (r *PGXTestimoniesRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Testimony, error) {
	return r.one(ctx, "query testimony by id", `SELECT `+testimonyColumns+` FROM testimonies WHERE id = $1`, id)
}

// FindByIDAndUserName retrieves a testimony only when both the id and the author name match.
func (r *PGXTestimoniesRepository) FindByIDAndUserName(ctx context.Context, id uuid.UUID, userName string) (*entity.Testimony, error) {
	return r.one(ctx, "query testimony by id and user name",
		`SELECT `+testimonyColumns+` FROM testimonies WHERE id = $1 AND user_name = $2`, id, userName)
}

// Update patches testimony attributes.
func (r *PGXTestimoniesRepository) Update(ctx context.Context, id uuid.UUID, patch TestimonyPatch) (*entity.Testimony, error) {
	var b setBuilder
	if patch.UserName != nil {
		b.add("user_name", *patch.UserName)
	}
	if patch.Role != nil {
		b.add("role", *patch.Role)
	}
	if patch.Description != nil {
		b.add("description", *patch.Description)
	}
	if patch.ImageURL != nil {
		b.add("image_url", *patch.ImageURL)
	}

	if b.empty() {
		return r.FindByID(ctx, id)
	}

	b.clauses = append(b.clauses, "updated_at = NOW()")
	where := b.next(id)
	query := fmt.Sprintf(`UPDATE testimonies SET %s WHERE id = %s RETURNING %s`, strings.Join(b.clauses, ", "), where, testimonyColumns)
	return r.one(ctx, "update testimony", query, b.args...)
}

// Delete removes a testimony by id.
func (r *PGXTestimoniesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM testimonies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete testimony: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrTestimonyNotFound
	}
	return nil
}
