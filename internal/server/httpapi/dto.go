package httpapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/eventportal/internal/common"
	"github.com/dmitrijs2005/eventportal/internal/server/models"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type VerifyRequest struct {
	Email string `json:"email" validate:"required"`
	Code  string `json:"code" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateEventRequest uses pointers for coordinates so that 0 is accepted
// while a missing value is not.
type CreateEventRequest struct {
	Community string   `json:"community" validate:"required"`
	Name      string   `json:"name" validate:"required"`
	Lat       *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lng       *float64 `json:"lng" validate:"required,min=-180,max=180"`
	ImageURL  string   `json:"image_url" validate:"omitempty,url"`
}

type RenameEventRequest struct {
	Name string `json:"name" validate:"required"`
}

type ImageUploadRequest struct {
	ContentType string `json:"content_type" validate:"required"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type EventResponse struct {
	ID        string          `json:"id"`
	Community string          `json:"community"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"image_url,omitempty"`
	Location  models.GeoPoint `json:"location"`
	Lat       float64         `json:"lat"`
	Lng       float64         `json:"lng"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func toEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:        e.ID,
		Community: e.Community,
		Name:      e.Name,
		ImageURL:  e.ImageURL,
		Location:  e.Location,
		Lat:       e.Location.Lat(),
		Lng:       e.Location.Lng(),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// bodyError is a body that could not be decoded. Only the fixed message
// reaches the client; the parser detail is logged.
type bodyError struct {
	cause error
}

func (e *bodyError) Error() string { return common.ErrMalformedRequest.Error() + ": invalid body" }

func (e *bodyError) Unwrap() error { return common.ErrMalformedRequest }

// bind parses the JSON body into dst and validates it.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return &bodyError{cause: err}
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %s", common.ErrMalformedRequest, describe(err))
	}
	return nil
}

func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
