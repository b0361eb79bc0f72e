package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/safar/teebay/internal/database"
	"github.com/safar/teebay/internal/models"
)

const draftColumns = `user_id, step, form_data, created_at, updated_at`

type draftRow struct {
	UserID    int64     `db:"user_id"`
	Step      int       `db:"step"`
	FormData  []byte    `db:"form_data"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *draftRow) model() (*models.DraftSession, error) {
	d := &models.DraftSession{
		UserID:    r.UserID,
		Step:      r.Step,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if err := json.Unmarshal(r.FormData, &d.FormData); err != nil {
		return nil, fmt.Errorf("decode form data: %w", err)
	}
	return d, nil
}

func GetDraft(ctx context.Context, q sqlx.ExtContext, userID int64) (*models.DraftSession, error) {
	var row draftRow

	query := `SELECT ` + draftColumns + ` FROM product_form_sessions WHERE user_id = $1`

	if err := sqlx.GetContext(ctx, q, &row, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrDraftNotFound
		}
		return nil, fmt.Errorf("get draft: %w", err)
	}

	return row.model()
}

// UpsertDraft stores the user's single draft, replacing any previous one.
func UpsertDraft(ctx context.Context, q sqlx.ExtContext, userID int64, step int, data models.ProductFormData) (*models.DraftSession, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode form data: %w", err)
	}

	var row draftRow

	// lib/pq sends []byte as bytea, so the payload goes over as text.
	query := `
		INSERT INTO product_form_sessions (user_id, step, form_data, created_at, updated_at)
		VALUES ($1, $2, $3::jsonb, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET step = EXCLUDED.step,
		    form_data = EXCLUDED.form_data,
		    updated_at = NOW()
		RETURNING ` + draftColumns

	if err := sqlx.GetContext(ctx, q, &row, query, userID, step, string(payload)); err != nil {
		return nil, fmt.Errorf("upsert draft: %w", err)
	}

	return row.model()
}

func DeleteDraft(ctx context.Context, q sqlx.ExtContext, userID int64) error {
	result, err := q.ExecContext(ctx, `DELETE FROM product_form_sessions WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return database.ErrDraftNotFound
	}

	return nil
}
