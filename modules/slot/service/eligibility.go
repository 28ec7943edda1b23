package service

import (
	"jogofacil/modules/slot/entity"
)

// ResolveEligibility decides whether a team may claim a slot and which of
// its categories qualify. Pure: no side effects, never errors, re-evaluated
// on every attempt since a slot's allowed categories can change between
// queries.
//
// Open rentals (no local team) accept every team with every category. A
// challenge against a local team requires a non-empty intersection between
// the team's categories and the slot's allowed opponent categories; only
// categories in that intersection may be used for the claim.
func ResolveEligibility(slot *entity.MatchSlot, teamCategories []string) (bool, []string) {
	if !slot.HasLocalTeam {
		usable := make([]string, len(teamCategories))
		copy(usable, teamCategories)
		return true, usable
	}

	allowed := make(map[string]struct{}, len(slot.AllowedOpponentCategories))
	for _, c := range slot.AllowedOpponentCategories {
		allowed[c] = struct{}{}
	}

	var usable []string
	for _, c := range teamCategories {
		if _, ok := allowed[c]; ok {
			usable = append(usable, c)
		}
	}
	return len(usable) > 0, usable
}

// CategoryUsable reports whether the specific category picked for a claim
// is inside the usable set.
func CategoryUsable(usable []string, category string) bool {
	for _, c := range usable {
		if c == category {
			return true
		}
	}
	return false
}
