package geo

import (
	"math"
	"testing"
)

func TestDistanceKnownPairs(t *testing.T) {
	// Sao Paulo to Rio de Janeiro is roughly 360 km.
	sp := Coordinates{Lat: -23.5505, Lng: -46.6333}
	rio := Coordinates{Lat: -22.9068, Lng: -43.1729}

	d := Distance(sp, rio)
	if d < 340 || d > 380 {
		t.Fatalf("Distance(SP, Rio) = %.1f km, want ~360", d)
	}

	// Symmetry.
	if back := Distance(rio, sp); math.Abs(back-d) > 1e-9 {
		t.Fatalf("Distance is not symmetric: %v vs %v", d, back)
	}
}

func TestDistanceZeroForSamePoint(t *testing.T) {
	p := Coordinates{Lat: -23.5505, Lng: -46.6333}
	if d := Distance(p, p); d != 0 {
		t.Fatalf("Distance(p, p) = %v, want 0", d)
	}
}

func TestValidTreatsOriginAsUnknown(t *testing.T) {
	tests := []struct {
		name string
		c    Coordinates
		want bool
	}{
		{"zero value is unknown", Coordinates{}, false},
		{"real point", Coordinates{Lat: -23.5, Lng: -46.6}, true},
		{"equator non-zero lng", Coordinates{Lat: 0, Lng: -46.6}, true},
		{"latitude out of range", Coordinates{Lat: 91, Lng: 10}, false},
		{"longitude out of range", Coordinates{Lat: 10, Lng: 181}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Valid(); got != tt.want {
				t.Fatalf("Valid(%+v) = %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}

func TestExceedsRadiusUnknownNeverExcludes(t *testing.T) {
	field := Coordinates{Lat: -23.5505, Lng: -46.6333}
	unknown := Coordinates{}

	if ExceedsRadius(unknown, field, 1) {
		t.Fatal("unknown origin must never exclude a slot by distance")
	}
	if ExceedsRadius(field, unknown, 1) {
		t.Fatal("unknown target must never exclude a slot by distance")
	}
	if ExceedsRadius(field, field, 0) {
		t.Fatal("non-positive radius must not exclude")
	}
}

func TestExceedsRadiusThreshold(t *testing.T) {
	sp := Coordinates{Lat: -23.5505, Lng: -46.6333}
	rio := Coordinates{Lat: -22.9068, Lng: -43.1729}

	if !ExceedsRadius(sp, rio, 100) {
		t.Fatal("360 km apart should exceed a 100 km radius")
	}
	if ExceedsRadius(sp, rio, 500) {
		t.Fatal("360 km apart should not exceed a 500 km radius")
	}
}
