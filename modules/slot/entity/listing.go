package entity

// AvailableSlot is an Explore listing row: the slot joined with the bits of
// its field the captain needs to pick one (name and coordinates).
// DistanceKm is computed in-process from the requester's origin, when known.
type AvailableSlot struct {
	MatchSlot
	FieldName  string   `db:"field_name" json:"field_name"`
	FieldLat   float64  `db:"field_lat" json:"field_lat"`
	FieldLng   float64  `db:"field_lng" json:"field_lng"`
	DistanceKm *float64 `db:"-" json:"distance_km,omitempty"`
}
