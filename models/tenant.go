package models

import "time"

// Tenant represents one barbershop business account. All data is scoped by
// the tenant id; the slug is the public URL handle.
type Tenant struct {
	ID        string    `bson:"id" json:"id"`
	Slug      string    `bson:"slug" json:"slug"`
	Name      string    `bson:"name" json:"name"`
	Active    bool      `bson:"active" json:"active"`
	Suspended bool      `bson:"suspended" json:"suspended"`
	Timezone  string    `bson:"timezone,omitempty" json:"timezone,omitempty"` // IANA name, e.g. "Europe/Madrid"
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
