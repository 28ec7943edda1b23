package service

import (
	"reflect"
	"testing"

	"jogofacil/modules/slot/entity"
)

func TestResolveEligibilityOpenRental(t *testing.T) {
	slot := &entity.MatchSlot{HasLocalTeam: false}

	eligible, usable := ResolveEligibility(slot, []string{"Sub-15", "Adulto"})
	if !eligible {
		t.Fatal("open rentals must accept every team")
	}
	if !reflect.DeepEqual(usable, []string{"Sub-15", "Adulto"}) {
		t.Fatalf("usable = %v, want every input category", usable)
	}

	// Even a team with no categories at all may rent.
	eligible, _ = ResolveEligibility(slot, nil)
	if !eligible {
		t.Fatal("open rentals must accept a team without categories")
	}
}

func TestResolveEligibilityChallenge(t *testing.T) {
	slot := &entity.MatchSlot{
		HasLocalTeam:              true,
		AllowedOpponentCategories: []string{"Sub-17", "Sub-20"},
	}

	tests := []struct {
		name       string
		categories []string
		eligible   bool
		usable     []string
	}{
		{"no overlap", []string{"Sub-15"}, false, nil},
		{"partial overlap", []string{"Sub-20", "Adulto"}, true, []string{"Sub-20"}},
		{"full overlap", []string{"Sub-17", "Sub-20"}, true, []string{"Sub-17", "Sub-20"}},
		{"empty team", nil, false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eligible, usable := ResolveEligibility(slot, tt.categories)
			if eligible != tt.eligible {
				t.Fatalf("eligible = %v, want %v", eligible, tt.eligible)
			}
			if !reflect.DeepEqual(usable, tt.usable) {
				t.Fatalf("usable = %v, want %v", usable, tt.usable)
			}
		})
	}
}

func TestResolveEligibilityNoAllowedCategories(t *testing.T) {
	// A local team that allows nobody is unchallengeable.
	slot := &entity.MatchSlot{HasLocalTeam: true}
	eligible, _ := ResolveEligibility(slot, []string{"Sub-20"})
	if eligible {
		t.Fatal("challenge with empty allowed set must be ineligible")
	}
}

func TestCategoryUsable(t *testing.T) {
	usable := []string{"Sub-17", "Sub-20"}
	if !CategoryUsable(usable, "Sub-20") {
		t.Fatal("Sub-20 should be usable")
	}
	if CategoryUsable(usable, "Adulto") {
		t.Fatal("Adulto should not be usable")
	}
	if CategoryUsable(nil, "Sub-20") {
		t.Fatal("nothing is usable in an empty set")
	}
}
