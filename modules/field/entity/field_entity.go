package entity

import (
	"jogofacil/core/entity"
	"jogofacil/core/geo"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Field is a venue owned by exactly one user. OwnerID is set at creation
// and never updated; there is no delete operation.
type Field struct {
	OwnerID            uuid.UUID      `db:"owner_id" json:"owner_id"`
	Name               string         `db:"name" json:"name"`
	Slug               string         `db:"slug" json:"slug"`
	Address            string         `db:"address" json:"address"`
	Lat                float64        `db:"lat" json:"lat"`
	Lng                float64        `db:"lng" json:"lng"`
	HourlyRate         float64        `db:"hourly_rate" json:"hourly_rate"`
	CancellationFeePct int            `db:"cancellation_fee_pct" json:"cancellation_fee_pct"`
	PixKey             string         `db:"pix_key" json:"pix_key"`
	PixName            string         `db:"pix_name" json:"pix_name"`
	PixBank            string         `db:"pix_bank" json:"pix_bank"`
	Courts             pq.StringArray `db:"courts" json:"courts"`
	Phone              string         `db:"phone" json:"phone"`
	ImageURL           *string        `db:"image_url" json:"image_url,omitempty"`
	entity.BaseEntity
}

func (f *Field) Coordinates() geo.Coordinates {
	return geo.Coordinates{Lat: f.Lat, Lng: f.Lng}
}

// HasCourt reports whether the named court belongs to this field.
func (f *Field) HasCourt(name string) bool {
	for _, c := range f.Courts {
		if c == name {
			return true
		}
	}
	return false
}
