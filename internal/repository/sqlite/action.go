package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/eco-track/internal/domain"
)

// ActionRepository implements domain.ActionRepository using SQLite.
type ActionRepository struct {
	db *sql.DB
}

// NewActionRepository creates a new SQLite-backed ActionRepository.
func NewActionRepository(db *DB) *ActionRepository {
	return &ActionRepository{db: db.SqlDB}
}

const actionColumns = `id, user_id, category, action_date, note, points, created_at, updated_at`

func (r *ActionRepository) Create(ctx context.Context, action *domain.Action) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO actions (user_id, category, action_date, note, points, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		action.UserID, string(action.Category), action.Date.Format(domain.DateLayout),
		action.Note, action.Points, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert action: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	action.ID = id
	action.CreatedAt = now
	action.UpdatedAt = now
	return nil
}

func (r *ActionRepository) GetByID(ctx context.Context, userID, id int64) (*domain.Action, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+actionColumns+` FROM actions WHERE id = ? AND user_id = ?`, id, userID)

	a, err := scanAction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get action: %w", err)
	}
	return a, nil
}

func (r *ActionRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Action, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+actionColumns+` FROM actions WHERE user_id = ?
		 ORDER BY action_date DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}
	defer rows.Close()

	var actions []domain.Action
	for rows.Next() {
		a, err := scanAction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}
		actions = append(actions, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate actions: %w", err)
	}
	return actions, nil
}

func (r *ActionRepository) Update(ctx context.Context, action *domain.Action) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE actions SET category = ?, action_date = ?, note = ?, points = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		string(action.Category), action.Date.Format(domain.DateLayout), action.Note, action.Points, now,
		action.ID, action.UserID,
	)
	if err != nil {
		return fmt.Errorf("update action: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	action.UpdatedAt = now
	return nil
}

func (r *ActionRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM actions WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return false, fmt.Errorf("delete action: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return rows > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAction(s rowScanner) (*domain.Action, error) {
	var (
		a        domain.Action
		category string
		date     string
	)
	if err := s.Scan(&a.ID, &a.UserID, &category, &date, &a.Note, &a.Points, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}

	d, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("parse action date %q: %w", date, err)
	}
	a.Date = d
	a.Category = domain.Category(category)
	return &a, nil
}
