package models

import "time"

type Location struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

type Event struct {
	ID        string    `json:"id"`
	Community string    `json:"community"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"image_url,omitempty"`
	Location  Location  `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *Event) Lat() float64 { return e.Location.Coordinates[1] }
func (e *Event) Lng() float64 { return e.Location.Coordinates[0] }

// NewEvent is the body of an event creation request.
type NewEvent struct {
	Community string  `json:"community"`
	Name      string  `json:"name"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	ImageURL  string  `json:"image_url,omitempty"`
}

// ImageUpload is the server's answer to an image upload request.
type ImageUpload struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	ImageURL  string `json:"image_url"`
}
