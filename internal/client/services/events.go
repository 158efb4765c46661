package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/eventportal/internal/client/models"
	"github.com/dmitrijs2005/eventportal/internal/filex"
	"github.com/dmitrijs2005/eventportal/internal/netx"
)

// maxImageBytes limits event images read from disk.
const maxImageBytes = 10 << 20

type eventAPI interface {
	ListEvents(ctx context.Context, community, q string) ([]*models.Event, error)
	CreateEvent(ctx context.Context, e *models.NewEvent) (string, error)
	RenameEvent(ctx context.Context, id, name string) error
	DeleteEvent(ctx context.Context, id string) error
	PresignImage(ctx context.Context, contentType string) (*models.ImageUpload, error)
	HTTPClient() *http.Client
}

type EventService interface {
	List(ctx context.Context, community, q string) ([]*models.Event, error)
	// Create uploads the image at imagePath first when it is not empty.
	Create(ctx context.Context, e *models.NewEvent, imagePath string) (string, error)
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
}

// test seams
var (
	readFile    = func(path string) ([]byte, error) { return filex.ReadLimited(path, maxImageBytes) }
	uploadImage = netx.UploadToS3PresignedURL
)

type eventService struct {
	api eventAPI
}

func NewEventService(api eventAPI) EventService {
	return &eventService{api: api}
}

func (s *eventService) List(ctx context.Context, community, q string) ([]*models.Event, error) {
	return s.api.ListEvents(ctx, community, q)
}

func (s *eventService) Create(ctx context.Context, e *models.NewEvent, imagePath string) (string, error) {
	if imagePath != "" {
		imageURL, err := s.storeImage(ctx, imagePath)
		if err != nil {
			return "", err
		}
		e.ImageURL = imageURL
	}
	return s.api.CreateEvent(ctx, e)
}

func (s *eventService) storeImage(ctx context.Context, path string) (string, error) {
	data, err := readFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if len(data) > maxImageBytes {
		return "", fmt.Errorf("image %s is larger than %d bytes", path, maxImageBytes)
	}

	contentType := http.DetectContentType(data)

	up, err := s.api.PresignImage(ctx, contentType)
	if err != nil {
		return "", err
	}
	if err := uploadImage(ctx, s.api.HTTPClient(), up.UploadURL, contentType, data); err != nil {
		return "", err
	}
	return up.ImageURL, nil
}

func (s *eventService) Rename(ctx context.Context, id, name string) error {
	return s.api.RenameEvent(ctx, id, name)
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	return s.api.DeleteEvent(ctx, id)
}
