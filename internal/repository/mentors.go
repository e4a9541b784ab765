package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mentorlink/api/internal/entity"
)

var (
	// ErrMentorNotFound is returned when no mentor matches the lookup criteria.
	ErrMentorNotFound = errors.New("mentor not found")
	// ErrMentorEmailDuplicate is returned when the email is already registered.
	ErrMentorEmailDuplicate = errors.New("mentor email already exists")
)

const mentorColumns = `id, full_name, email, password_hash, date_of_birth, specialties, gender, about_me,
	profile_image_url, email_confirmed, active, code, created_at, updated_at`

// MentorSearch holds optional mentor search filters.
type MentorSearch struct {
	FullName    string
	Specialty   string
	Specialties []string
}

// MentorPatch lists the mentor attributes that may change on update. Nil fields are left untouched.
type MentorPatch struct {
	FullName    *string
	DateOfBirth *time.Time
	Specialties []string
	Gender      *string
	AboutMe     *string
}

// MentorsRepository declares persistence operations for mentors.
type MentorsRepository interface {
	Create(ctx context.Context, mentor *entity.Mentor) (*entity.Mentor, error)
	List(ctx context.Context) ([]entity.Mentor, error)
	Search(ctx context.Context, filter MentorSearch) ([]entity.Mentor, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Mentor, error)
	FindByEmail(ctx context.Context, email string) (*entity.Mentor, error)
	Update(ctx context.Context, id uuid.UUID, patch MentorPatch) (*entity.Mentor, error)
	SetProfileImage(ctx context.Context, id uuid.UUID, url string) (*entity.Mentor, error)
	SetCode(ctx context.Context, id uuid.UUID, code string) error
	ConfirmEmail(ctx context.Context, id uuid.UUID) (*entity.Mentor, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	Deactivate(ctx context.Context, id uuid.UUID) (*entity.Mentor, error)
}

// PGXMentorsRepository implements MentorsRepository with pgx.
type PGXMentorsRepository struct {
	pool pgxPool
}

// NewPGXMentorsRepository instantiates a mentors repository.
func NewPGXMentorsRepository(pool pgxPool) *PGXMentorsRepository {
	return &PGXMentorsRepository{pool: pool}
}

func scanMentor(row pgx.Row) (*entity.Mentor, error) {
	var m entity.Mentor
	err := row.Scan(
		&m.ID,
		&m.FullName,
		&m.Email,
		&m.PasswordHash,
		&m.DateOfBirth,
		&m.Specialties,
		&m.Gender,
		&m.AboutMe,
		&m.ProfileImageURL,
		&m.EmailConfirmed,
		&m.Active,
		&m.Code,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if m.Specialties == nil {
		m.Specialties = []string{}
	}
	return &m, nil
}

func (r *PGXMentorsRepository) one(ctx context.Context, op, query string, args ...any) (*entity.Mentor, error) {
	mentor, err := scanMentor(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMentorNotFound
		}
		if isUniqueViolation(err, "mentors_email_key") {
			return nil, fmt.Errorf("%w: %v", ErrMentorEmailDuplicate, err)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return mentor, nil
}

func (r *PGXMentorsRepository) many(ctx context.Context, op, query string, args ...any) ([]entity.Mentor, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	mentors := make([]entity.Mentor, 0)
	for rows.Next() {
		mentor, err := scanMentor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan mentor row: %w", err)
		}
		mentors = append(mentors, *mentor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mentors: %w", err)
	}
	return mentors, nil
}

// Create inserts a new mentor row. The email confirmation and active flags start false and true.
func (r *PGXMentorsRepository) Create(ctx context.Context, mentor *entity.Mentor) (*entity.Mentor, error) {
	specialties := mentor.Specialties
	if specialties == nil {
		specialties = []string{}
	}
	return r.one(ctx, "insert mentor", `
        INSERT INTO mentors (full_name, email, password_hash, date_of_birth, specialties, gender, about_me, code)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING `+mentorColumns,
		mentor.FullName, mentor.Email, mentor.PasswordHash, mentor.DateOfBirth,
		specialties, mentor.Gender, mentor.AboutMe, mentor.Code,
	)
}

// List returns active mentors ordered by name.
func (r *PGXMentorsRepository) List(ctx context.Context) ([]entity.Mentor, error) {
	return r.many(ctx, "list mentors", `SELECT `+mentorColumns+` FROM mentors WHERE active ORDER BY full_name`)
}

// Search returns active mentors matching every provided filter.
func (r *PGXMentorsRepository) Search(ctx context.Context, filter MentorSearch) ([]entity.Mentor, error) {
	var b setBuilder
	conditions := []string{"active"}

	if name := strings.TrimSpace(filter.FullName); name != "" {
		conditions = append(conditions, "full_name ILIKE '%' || "+b.next(name)+" || '%'")
	}
	if specialty := strings.TrimSpace(filter.Specialty); specialty != "" {
		conditions = append(conditions, b.next(specialty)+" = ANY(specialties)")
	}
	if len(filter.Specialties) > 0 {
		conditions = append(conditions, "specialties && "+b.next(filter.Specialties))
	}

	query := fmt.Sprintf(`SELECT %s FROM mentors WHERE %s ORDER BY full_name`, mentorColumns, strings.Join(conditions, " AND "))
	return r.many(ctx, "search mentors", query, b.args...)
}

// FindByID retrieves a mentor by identifier.
func (r *PGXMentorsRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Mentor, error) {
	return r.one(ctx, "query mentor by id", `SELECT `+mentorColumns+` FROM mentors WHERE id = $1`, id)
}

// FindByEmail retrieves a mentor by email.
func (r *PGXMentorsRepository) FindByEmail(ctx context.Context, email string) (*entity.Mentor, error) {
	return r.one(ctx, "query mentor by email", `SELECT `+mentorColumns+` FROM mentors WHERE email = $1`, email)
}

// Update patches mentor profile attributes.
func (r *PGXMentorsRepository) Update(ctx context.Context, id uuid.UUID, patch MentorPatch) (*entity.Mentor, error) {
	var b setBuilder
	if patch.FullName != nil {
		b.add("full_name", *patch.FullName)
	}
	if patch.DateOfBirth != nil {
		b.add("date_of_birth", *patch.DateOfBirth)
	}
	if patch.Specialties != nil {
		b.add("specialties", patch.Specialties)
	}
	if patch.Gender != nil {
		b.add("gender", *patch.Gender)
	}
	if patch.AboutMe != nil {
		b.add("about_me", *patch.AboutMe)
	}

	if b.empty() {
		return r.FindByID(ctx, id)
	}

	b.clauses = append(b.clauses, "updated_at = NOW()")
	where := b.next(id)
	query := fmt.Sprintf(`UPDATE mentors SET %s WHERE id = %s RETURNING %s`, strings.Join(b.clauses, ", "), where, mentorColumns)
	return r.one(ctx, "update mentor", query, b.args...)
}

// SetProfileImage stores the public URL of the mentor profile image.
func (r *PGXMentorsRepository) SetProfileImage(ctx context.Context, id uuid.UUID, url string) (*entity.Mentor, error) {
	return r.one(ctx, "update mentor profile image", `
        UPDATE mentors SET profile_image_url = $1, updated_at = NOW()
        WHERE id = $2
        RETURNING `+mentorColumns, url, id)
}

// SetCode replaces the activation or restoration code of a mentor.
func (r *PGXMentorsRepository) SetCode(ctx context.Context, id uuid.UUID, code string) error {
	return r.exec(ctx, "update mentor code", `UPDATE mentors SET code = $1, updated_at = NOW() WHERE id = $2`, code, id)
}

// ConfirmEmail marks the mentor email as confirmed and clears the pending code.
func (r *PGXMentorsRepository) ConfirmEmail(ctx context.Context, id uuid.UUID) (*entity.Mentor, error) {
	return r.one(ctx, "confirm mentor email", `
        UPDATE mentors SET email_confirmed = TRUE, code = '', updated_at = NOW()
        WHERE id = $1
        RETURNING `+mentorColumns, id)
}

// UpdatePassword stores a new password hash, clears the code and reactivates the account.
func (r *PGXMentorsRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.exec(ctx, "update mentor password", `
        UPDATE mentors SET password_hash = $1, code = '', email_confirmed = TRUE, active = TRUE, updated_at = NOW()
        WHERE id = $2`, passwordHash, id)
}

// Deactivate marks the mentor as inactive.
func (r *PGXMentorsRepository) Deactivate(ctx context.Context, id uuid.UUID) (*entity.Mentor, error) {
	return r.one(ctx, "deactivate mentor", `
        UPDATE mentors SET active = FALSE, updated_at = NOW()
        WHERE id = $1
        RETURNING `+mentorColumns, id)
}

func (r *PGXMentorsRepository) exec(ctx context.Context, op, query string, args ...any) error {
	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrMentorNotFound
	}
	return nil
}
