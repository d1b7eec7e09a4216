package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rasulmamishov/portfolio-api/internal/core/domain"
	"github.com/rasulmamishov/portfolio-api/internal/core/ports"
)

const testimonialColumns = "id, name, email, company, position, message, rating, status, created_at"

type TestimonialRepository struct {
	db *sql.DB
}

func NewTestimonialRepository(db *sql.DB) *TestimonialRepository {
	return &TestimonialRepository{db: db}
}

func (r *TestimonialRepository) Create(ctx context.Context, t *domain.Testimonial) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO testimonials (name, email, company, position, message, rating, status, created_at) VALUES (?,?,?,?,?,?,?,?)",
		t.Name, t.Email, t.Company, t.Position, t.Message, t.Rating, string(t.Status), toMillis(t.CreatedAt))
	if err != nil {
		return "", fmt.Errorf("insert testimonial: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("insert testimonial: %w", err)
	}
	return formatID(id), nil
}

func (r *TestimonialRepository) List(ctx context.Context, filter ports.TestimonialFilter) ([]*domain.Testimonial, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := "SELECT " + testimonialColumns + " FROM testimonials"
	var args []any
	if filter.Status != "" {
		query += " WHERE status = ?"
		args = append(args, string(filter.Status))
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Testimonial, 0)
	for rows.Next() {
		var (
			t       domain.Testimonial
			id      int64
			status  string
			created int64
		)
		if err := rows.Scan(&id, &t.Name, &t.Email, &t.Company, &t.Position, &t.Message, &t.Rating, &status, &created); err != nil {
			return nil, fmt.Errorf("scan testimonial: %w", err)
		}
		t.ID = formatID(id)
		t.Status = domain.TestimonialStatus(status)
		t.CreatedAt = fromMillis(created)
		out = append(out, &t)
	}
	return out, rows.Err()
}

func (r *TestimonialRepository) UpdateStatus(ctx context.Context, id string, status domain.TestimonialStatus) error {
	key, ok := parseID(id)
	if !ok {
		return domain.ErrTestimonialNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, "UPDATE testimonials SET status = ? WHERE id = ?", string(status), key)
	if err != nil {
		return fmt.Errorf("update testimonial: %w", err)
	}
	return requireRow(res, domain.ErrTestimonialNotFound, "update testimonial")
}

func (r *TestimonialRepository) Delete(ctx context.Context, id string) error {
	key, ok := parseID(id)
	if !ok {
		return domain.ErrTestimonialNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, "DELETE FROM testimonials WHERE id = ?", key)
	if err != nil {
		return fmt.Errorf("delete testimonial: %w", err)
	}
	return requireRow(res, domain.ErrTestimonialNotFound, "delete testimonial")
}

func (r *TestimonialRepository) Count(ctx context.Context, status domain.TestimonialStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var (
		n   int64
		err error
	)
	if status == "" {
		err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM testimonials").Scan(&n)
	} else {
		err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM testimonials WHERE status = ?", string(status)).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("count testimonials: %w", err)
	}
	return n, nil
}
