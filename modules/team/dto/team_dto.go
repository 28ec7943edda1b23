package dto

import (
	"github.com/google/uuid"
)

type RegisteredTeamRequest struct {
	FieldID    uuid.UUID `json:"field_id" validate:"required"`
	Name       string    `json:"name" validate:"required"`
	Phone      string    `json:"phone"`
	Categories []string  `json:"categories"`
	Gender     string    `json:"gender"`
	Sport      string    `json:"sport"`
	FixedDay   int       `json:"fixed_day" validate:"min=0,max=6"`
	FixedTime  string    `json:"fixed_time" validate:"required"`
	CourtName  string    `json:"court_name"`
	LogoURL    *string   `json:"logo_url"`
}

type AcceptInviteRequest struct {
	Code string `json:"code" validate:"required"`
}

type GenerateSlotsRequest struct {
	TargetCount int `json:"target_count"`
}
