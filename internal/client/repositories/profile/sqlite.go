package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/eventportal/internal/client/models"
	"github.com/dmitrijs2005/eventportal/internal/common"
	"github.com/dmitrijs2005/eventportal/internal/dbx"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, p *models.Profile) error {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM profile`); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO profile (id, email, username, role, is_active, created_at, saved_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Email, p.UserName, p.Role, p.IsActive,
			p.CreatedAt.UTC().Format(time.RFC3339Nano), p.SavedAt.UTC().Format(time.RFC3339Nano))
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context) (*models.Profile, error) {
	var (
		p                  models.Profile
		createdAt, savedAt string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, username, role, is_active, created_at, saved_at
		FROM profile LIMIT 1`).
		Scan(&p.ID, &p.Email, &p.UserName, &p.Role, &p.IsActive, &createdAt, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if p.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("profile created_at: %w", err)
	}
	if p.SavedAt, err = time.Parse(time.RFC3339Nano, savedAt); err != nil {
		return nil, fmt.Errorf("profile saved_at: %w", err)
	}
	return &p, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM profile`); err != nil {
		return fmt.Errorf("failed to clear profile: %w", err)
	}
	return nil
}
