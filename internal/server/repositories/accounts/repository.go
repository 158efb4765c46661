// Package accounts stores user accounts. Both implementations enforce a
// unique email at the storage level and activate an account with a single
// conditional update.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/eventportal/internal/server/models"
)

type Repository interface {
	// FindByEmail returns common.ErrorNotFound when no account exists.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// Insert stores u and fills its ID. An existing email yields
	// common.ErrDuplicateAccount.
	Insert(ctx context.Context, u *models.User) (*models.User, error)
	// ActivateIfOtpMatches atomically marks the account with this email and
	// pending code active and clears the code. It returns
	// common.ErrorNotFound, without changing anything, when nothing matches.
	ActivateIfOtpMatches(ctx context.Context, email, code string) (*models.User, error)
}
