package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rasulmamishov/portfolio-api/internal/core/domain"
)

type ContactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, m *domain.ContactMessage) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO contact_messages (name, email, subject, message, status, created_at) VALUES (?,?,?,?,?,?)",
		m.Name, m.Email, m.Subject, m.Message, string(m.Status), toMillis(m.CreatedAt))
	if err != nil {
		return "", fmt.Errorf("insert contact message: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("insert contact message: %w", err)
	}
	return formatID(id), nil
}

func (r *ContactRepository) List(ctx context.Context) ([]*domain.ContactMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, email, subject, message, status, created_at FROM contact_messages ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.ContactMessage, 0)
	for rows.Next() {
		var (
			m       domain.ContactMessage
			id      int64
			status  string
			created int64
		)
		if err := rows.Scan(&id, &m.Name, &m.Email, &m.Subject, &m.Message, &status, &created); err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		m.ID = formatID(id)
		m.Status = domain.MessageStatus(status)
		m.CreatedAt = fromMillis(created)
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (r *ContactRepository) UpdateStatus(ctx context.Context, id string, status domain.MessageStatus) error {
	key, ok := parseID(id)
	if !ok {
		return domain.ErrMessageNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, "UPDATE contact_messages SET status = ? WHERE id = ?", string(status), key)
	if err != nil {
		return fmt.Errorf("update contact message: %w", err)
	}
	return requireRow(res, domain.ErrMessageNotFound, "update contact message")
}

func (r *ContactRepository) Count(ctx context.Context, status domain.MessageStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var (
		n   int64
		err error
	)
	if status == "" {
		err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contact_messages").Scan(&n)
	} else {
		err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contact_messages WHERE status = ?", string(status)).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("count contact messages: %w", err)
	}
	return n, nil
}
