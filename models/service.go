package models

import "time"

// Service is a bookable service offered by a tenant (e.g. "corte clásico").
// DurationMinutes drives both the length of a reservation and the default
// step between candidate slots.
type Service struct {
	ID              string    `bson:"id" json:"id"`
	TenantID        string    `bson:"tenant_id" json:"tenant_id"`
	Name            string    `bson:"name" json:"name"`
	DurationMinutes int       `bson:"duration_minutes" json:"duration_minutes"`
	Price           float64   `bson:"price" json:"price"`
	Active          bool      `bson:"active" json:"active"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}
