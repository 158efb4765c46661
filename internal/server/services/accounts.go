// Package services contains server-side business logic. AccountService
// implements the account lifecycle: signup with an emailed one-time code,
// verification of that code, and password login.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/eventportal/internal/common"
	"github.com/dmitrijs2005/eventportal/internal/logging"
	"github.com/dmitrijs2005/eventportal/internal/server/models"
	"github.com/dmitrijs2005/eventportal/internal/server/notify"
	"github.com/dmitrijs2005/eventportal/internal/server/otp"
	"github.com/dmitrijs2005/eventportal/internal/server/passwords"
	"github.com/dmitrijs2005/eventportal/internal/server/repositories/repomanager"
)

const (
	SignupMessage = "Verification code sent to your email."
	VerifyMessage = "Account verified. You can now log in."

	defaultNotifyTimeout = 10 * time.Second
)

type AccountService struct {
	repomanager   repomanager.RepositoryManager
	hasher        passwords.Hasher
	otp           otp.Generator
	sender        notify.Sender
	logger        logging.Logger
	notifyTimeout time.Duration
	now           func() time.Time
}

func NewAccountService(m repomanager.RepositoryManager, h passwords.Hasher, g otp.Generator,
	s notify.Sender, l logging.Logger, notifyTimeout time.Duration) *AccountService {
	if notifyTimeout <= 0 {
		notifyTimeout = defaultNotifyTimeout
	}
	return &AccountService{
		repomanager:   m,
		hasher:        h,
		otp:           g,
		sender:        s,
		logger:        l.With("module", "account_service"),
		notifyTimeout: notifyTimeout,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Signup registers an inactive account and mails it a verification code.
// A failed delivery does not fail the signup; the code is logged instead.
func (s *AccountService) Signup(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Accounts()

	_, err := repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return "", common.ErrDuplicateAccount
	case !errors.Is(err, common.ErrorNotFound):
		return "", fmt.Errorf("%w: lookup: %v", common.ErrorInternal, err)
	}

	if passwords.TooLong(password) {
		return "", common.ErrPasswordTooLong
	}

	code, err := s.otp.Generate()
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, common.ErrPasswordTooLong) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	user := &models.User{
		Email:        email,
		UserName:     common.EmailLocalPart(email),
		PasswordHash: hash,
		Role:         models.RoleStudent,
		IsActive:     false,
		OtpCode:      &code,
		CreatedAt:    s.now(),
	}

	if _, err := repo.Insert(ctx, user); err != nil {
		if errors.Is(err, common.ErrDuplicateAccount) {
			return "", err
		}
		return "", fmt.Errorf("%w: insert: %v", common.ErrorInternal, err)
	}

	s.deliverCode(ctx, email, code)

	return SignupMessage, nil
}

func (s *AccountService) deliverCode(ctx context.Context, email, code string) {
	sendCtx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
	defer cancel()

	if err := s.sender.Send(sendCtx, notify.OTPMessage(email, code)); err != nil {
		s.logger.Warn(ctx, "otp delivery failed", "email", email, "otp", code, "error", err.Error())
		return
	}
	s.logger.Info(ctx, "otp sent", "email", email)
}

// Verify activates the account if code is its pending verification code.
// Every kind of mismatch is reported as common.ErrInvalidOtp.
func (s *AccountService) Verify(ctx context.Context, email, code string) (string, error) {
	_, err := s.repomanager.Accounts().ActivateIfOtpMatches(ctx, email, code)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrInvalidOtp
		}
		return "", fmt.Errorf("%w: activate: %v", common.ErrorInternal, err)
	}
	return VerifyMessage, nil
}

// Login checks credentials of an activated account and returns its public
// view. Checks run in a fixed order: existence, activation, password
// length, password match.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.PublicUser, error) {
	user, err := s.repomanager.Accounts().FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUnknownAccount
		}
		s.logger.Error(ctx, "login lookup failed", "email", email, "error", err.Error())
		return nil, common.ErrAuthenticationInternal
	}

	if !user.IsActive {
		return nil, common.ErrAccountNotVerified
	}

	if passwords.TooLong(password) {
		return nil, common.ErrPasswordTooLong
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.logger.Error(ctx, "password check failed", "email", email, "error", err.Error())
		return nil, common.ErrAuthenticationInternal
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}

	return user.Public(), nil
}
