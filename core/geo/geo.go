package geo

import "math"

const earthRadiusKm = 6371.0

// Coordinates is a WGS84 latitude/longitude pair. The zero value (0,0) is
// treated as "location unknown", never as a real point in the Gulf of Guinea.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c Coordinates) Valid() bool {
	if c.Lat == 0 && c.Lng == 0 {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Distance returns the great-circle distance between a and b in kilometers
// using the haversine formula.
func Distance(a, b Coordinates) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// ExceedsRadius reports whether b lies farther than radiusKm from a. When
// either point is unknown the answer is false: a slot is only excluded by
// distance when both points are real and over the threshold.
func ExceedsRadius(a, b Coordinates, radiusKm float64) bool {
	if !a.Valid() || !b.Valid() || radiusKm <= 0 {
		return false
	}
	return Distance(a, b) > radiusKm
}
