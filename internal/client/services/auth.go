// Package services implements portalctl use cases on top of the portal API
// client and the local profile store.
package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/eventportal/internal/client/models"
	"github.com/dmitrijs2005/eventportal/internal/client/repositories/profile"
)

type authAPI interface {
	Signup(ctx context.Context, email string, password []byte) (string, error)
	Verify(ctx context.Context, email, code string) (string, error)
	Login(ctx context.Context, email string, password []byte) (*models.Profile, error)
}

type AuthService interface {
	Signup(ctx context.Context, email string, password []byte) (string, error)
	Verify(ctx context.Context, email, code string) (string, error)
	// Login authenticates and remembers the returned user locally.
	Login(ctx context.Context, email string, password []byte) (*models.Profile, error)
	// WhoAmI returns common.ErrorNotFound when nobody is logged in.
	WhoAmI(ctx context.Context) (*models.Profile, error)
	Logout(ctx context.Context) error
}

type authService struct {
	api      authAPI
	profiles profile.Repository
	now      func() time.Time
}

func NewAuthService(api authAPI, profiles profile.Repository) AuthService {
	return &authService{api: api, profiles: profiles, now: time.Now}
}

func (s *authService) Signup(ctx context.Context, email string, password []byte) (string, error) {
	return s.api.Signup(ctx, email, password)
}

func (s *authService) Verify(ctx context.Context, email, code string) (string, error) {
	return s.api.Verify(ctx, email, code)
}

func (s *authService) Login(ctx context.Context, email string, password []byte) (*models.Profile, error) {
	p, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	p.SavedAt = s.now().UTC()
	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *authService) WhoAmI(ctx context.Context) (*models.Profile, error) {
	return s.profiles.Get(ctx)
}

func (s *authService) Logout(ctx context.Context) error {
	return s.profiles.Clear(ctx)
}
