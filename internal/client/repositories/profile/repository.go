// Package profile remembers the user of the last successful login.
package profile

import (
	"context"

	"github.com/dmitrijs2005/eventportal/internal/client/models"
)

type Repository interface {
	// Save replaces any stored profile with p.
	Save(ctx context.Context, p *models.Profile) error
	// Get returns common.ErrorNotFound when nobody is logged in.
	Get(ctx context.Context) (*models.Profile, error)
	Clear(ctx context.Context) error
}
