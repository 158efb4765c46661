package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/eventportal/internal/common"
	"github.com/dmitrijs2005/eventportal/internal/logging"
	sc "github.com/dmitrijs2005/eventportal/internal/server/config"
	"github.com/dmitrijs2005/eventportal/internal/server/models"
	"github.com/dmitrijs2005/eventportal/internal/server/repositories/events"
	"github.com/dmitrijs2005/eventportal/internal/server/repositories/repomanager"
)

type CreateEventInput struct {
	Community string
	Name      string
	Lat       float64
	Lng       float64
	ImageURL  string
}

type EventService struct {
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	logger      logging.Logger
	now         func() time.Time
}

func NewEventService(m repomanager.RepositoryManager, config *sc.Config, l logging.Logger) *EventService {
	return &EventService{
		repomanager: m,
		config:      config,
		logger:      l.With("module", "event_service"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func malformed(reason string) error {
	return fmt.Errorf("%w: %s", common.ErrMalformedRequest, reason)
}

// List returns up to events.MaxListSize events of a community, newest first.
func (s *EventService) List(ctx context.Context, community, q string) ([]*models.Event, error) {
	community = strings.TrimSpace(community)
	if community == "" {
		return nil, malformed("community is required")
	}
	return s.repomanager.Events().List(ctx, community, strings.TrimSpace(q), events.MaxListSize)
}

func (s *EventService) Create(ctx context.Context, in CreateEventInput) (*models.Event, error) {
	if strings.TrimSpace(in.Community) == "" || strings.TrimSpace(in.Name) == "" {
		return nil, malformed("community and name are required")
	}
	if in.Lat < -90 || in.Lat > 90 || in.Lng < -180 || in.Lng > 180 {
		return nil, malformed("coordinates out of range")
	}

	now := s.now()
	e := &models.Event{
		Community: strings.TrimSpace(in.Community),
		Name:      strings.TrimSpace(in.Name),
		ImageURL:  in.ImageURL,
		Location:  models.NewGeoPoint(in.Lat, in.Lng),
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := s.repomanager.Events().Create(ctx, e)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "event created", "id", created.ID, "community", created.Community)
	return created, nil
}

// Rename returns common.ErrorNotFound when the event does not exist.
func (s *EventService) Rename(ctx context.Context, id, name string) error {
	if strings.TrimSpace(name) == "" {
		return malformed("name is required")
	}
	return s.repomanager.Events().UpdateName(ctx, id, strings.TrimSpace(name), s.now())
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Events().Delete(ctx, id)
}
