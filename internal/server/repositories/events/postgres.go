package events

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/eventportal/internal/common"
	"github.com/dmitrijs2005/eventportal/internal/dbx"
	"github.com/dmitrijs2005/eventportal/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern that matches q literally.
func containsPattern(q string) string {
	if q == "" {
		return ""
	}
	return "%" + likeEscaper.Replace(q) + "%"
}

func (r *PostgresRepository) List(ctx context.Context, community, nameQuery string, limit int) ([]*models.Event, error) {
	query :=
		`SELECT id::text, community, name, image_url, lng, lat, created_at, updated_at
		 FROM events
		 WHERE community = $1 AND ($2 = '' OR name ILIKE $2 ESCAPE '\')
		 ORDER BY created_at DESC
		 LIMIT $3
		 `

	rows, err := r.db.QueryContext(ctx, query, community, containsPattern(nameQuery), clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Event, 0)
	for rows.Next() {
		e := &models.Event{}
		var lng, lat float64
		if err := rows.Scan(&e.ID, &e.Community, &e.Name, &e.ImageURL, &lng, &lat, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		e.Location = models.NewGeoPoint(lat, lng)
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.Event) (*models.Event, error) {
	query :=
		`INSERT INTO events (community, name, image_url, lng, lat, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id::text
		 `

	err := r.db.QueryRowContext(ctx, query,
		e.Community, e.Name, e.ImageURL, e.Location.Lng(), e.Location.Lat(), e.CreatedAt, e.UpdatedAt).Scan(&e.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) UpdateName(ctx context.Context, id, name string, updatedAt time.Time) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrorNotFound
	}

	query :=
		`UPDATE events SET name = $2, updated_at = $3
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, name, updatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
