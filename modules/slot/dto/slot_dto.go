package dto

import (
	"github.com/google/uuid"
)

// HostTeamRequest is the optional home-team snapshot attached to a manual
// slot at creation.
type HostTeamRequest struct {
	Name              string   `json:"name" validate:"required"`
	Category          string   `json:"category" validate:"required"`
	Gender            string   `json:"gender"`
	Phone             string   `json:"phone"`
	LogoURL           *string  `json:"logo_url"`
	AllowedCategories []string `json:"allowed_categories"`
}

type CreateSlotRequest struct {
	FieldID         uuid.UUID        `json:"field_id" validate:"required"`
	CourtName       string           `json:"court_name" validate:"required"`
	Date            string           `json:"date" validate:"required"`
	Time            string           `json:"time" validate:"required"`
	DurationMinutes int              `json:"duration_minutes"`
	Sport           string           `json:"sport"`
	Price           float64          `json:"price"`
	HostTeam        *HostTeamRequest `json:"host_team"`
}

type SubmitChallengeRequest struct {
	TeamID   uuid.UUID `json:"team_id" validate:"required"`
	Category string    `json:"category" validate:"required"`
}

// OwnerAssignRequest lets an owner book a slot directly, skipping the
// challenge flow. TargetStatus picks pending_payment or confirmed.
type OwnerAssignRequest struct {
	TeamName     string  `json:"team_name" validate:"required"`
	TeamCategory string  `json:"team_category"`
	TeamGender   string  `json:"team_gender"`
	TeamPhone    string  `json:"team_phone"`
	UserID       *uuid.UUID `json:"user_id"`
	TargetStatus string  `json:"target_status" validate:"required,oneof=pending_payment confirmed"`
}

type DecisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=confirm reject"`
}

// ListFilters narrows the Explore listing. Coordinates of (0,0) mean the
// requester's position is unknown and distance filtering is skipped.
type ListFilters struct {
	Sport         string
	Category      string
	Gender        string
	MaxDistanceKm float64
	OriginLat     float64
	OriginLng     float64
}

type ReceiptUploadRequest struct {
	ContentType string `json:"content_type" validate:"required"`
}

type ReceiptUploadResponse struct {
	UploadURL  string `json:"upload_url"`
	ReceiptURL string `json:"receipt_url"`
}
