// Package events stores community events.
package events

import (
	"context"
	"time"

	"github.com/dmitrijs2005/eventportal/internal/server/models"
)

// MaxListSize caps a single listing.
const MaxListSize = 100

type Repository interface {
	// List returns the newest events of a community. A non-empty nameQuery
	// keeps only events whose name contains it, ignoring case; it is
	// matched literally.
	List(ctx context.Context, community, nameQuery string, limit int) ([]*models.Event, error)
	Create(ctx context.Context, e *models.Event) (*models.Event, error)
	// UpdateName returns common.ErrorNotFound for unknown or malformed ids.
	UpdateName(ctx context.Context, id, name string, updatedAt time.Time) error
	// Delete succeeds whether or not the event exists.
	Delete(ctx context.Context, id string) error
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > MaxListSize {
		return MaxListSize
	}
	return limit
}
