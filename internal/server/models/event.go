package models

import "time"

// GeoPoint is a GeoJSON point. Coordinates are ordered [lng, lat].
type GeoPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

func NewGeoPoint(lat, lng float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: [2]float64{lng, lat}}
}

func (p GeoPoint) Lat() float64 { return p.Coordinates[1] }
func (p GeoPoint) Lng() float64 { return p.Coordinates[0] }

type Event struct {
	ID        string
	Community string
	Name      string
	ImageURL  string
	Location  GeoPoint
	CreatedAt time.Time
	UpdatedAt time.Time
}
