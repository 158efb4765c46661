package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/eventportal/internal/common"
	"github.com/dmitrijs2005/eventportal/internal/dbx"
	"github.com/dmitrijs2005/eventportal/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	var role string
	var otp sql.NullString
	if err := row.Scan(&u.ID, &u.Email, &u.UserName, &u.PasswordHash, &role, &u.IsActive, &otp, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = models.Role(role)
	if otp.Valid {
		code := otp.String
		u.OtpCode = &code
	}
	return u, nil
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id::text, email, username, password_hash, role, is_active, otp_code, created_at
		 FROM users
		 WHERE email = $1
		 `

	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, u *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (email, username, password_hash, role, is_active, otp_code, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id::text
		 `

	var otp sql.NullString
	if u.OtpCode != nil {
		otp = sql.NullString{String: *u.OtpCode, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		u.Email, u.UserName, u.PasswordHash, string(u.Role), u.IsActive, otp, u.CreatedAt).Scan(&u.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrDuplicateAccount
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) ActivateIfOtpMatches(ctx context.Context, email, code string) (*models.User, error) {
	query :=
		`UPDATE users SET is_active = TRUE, otp_code = NULL
		 WHERE email = $1 AND otp_code = $2
		 RETURNING id::text, email, username, password_hash, role, is_active, otp_code, created_at
		 `

	u, err := scanUser(r.db.QueryRowContext(ctx, query, email, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}
