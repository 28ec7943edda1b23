package entity

import (
	"time"

	"jogofacil/core/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Slot statuses
const (
	StatusAvailable           = "available"
	StatusPendingVerification = "pending_verification"
	StatusPendingPayment      = "pending_payment"
	StatusConfirmed           = "confirmed"
	StatusRejected            = "rejected"
)

// Match types
const (
	MatchTypeAluguel  = "ALUGUEL"
	MatchTypeAmistoso = "AMISTOSO"
	MatchTypeFixo     = "FIXO"
	MatchTypeFestival = "FESTIVAL"
)

// Slot origins
const (
	OriginManual    = "manual"
	OriginRecurring = "recurring"
)

// MatchSlot is one bookable time window at a field/court. Team data on a
// slot is a snapshot copied at creation (home side) or claim time (booking
// side), never a live reference: renaming a team must not rewrite history.
//
// Status is the single source of truth for the lifecycle; booked-ness is
// derived, never stored.
type MatchSlot struct {
	FieldID         uuid.UUID `db:"field_id" json:"field_id"`
	CourtName       string    `db:"court_name" json:"court_name"`
	Date            string    `db:"date" json:"date"`
	Time            string    `db:"time" json:"time"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	Sport           string    `db:"sport" json:"sport"`
	MatchType       string    `db:"match_type" json:"match_type"`
	Origin          string    `db:"origin" json:"origin"`
	Price           float64   `db:"price" json:"price"`
	Status          string    `db:"status" json:"status"`

	HasLocalTeam              bool           `db:"has_local_team" json:"has_local_team"`
	HomeTeamName              *string        `db:"home_team_name" json:"home_team_name,omitempty"`
	HomeTeamCategory          *string        `db:"home_team_category" json:"home_team_category,omitempty"`
	HomeTeamGender            *string        `db:"home_team_gender" json:"home_team_gender,omitempty"`
	HomeTeamPhone             *string        `db:"home_team_phone" json:"home_team_phone,omitempty"`
	HomeTeamLogoURL           *string        `db:"home_team_logo_url" json:"home_team_logo_url,omitempty"`
	AllowedOpponentCategories pq.StringArray `db:"allowed_opponent_categories" json:"allowed_opponent_categories"`

	// Booking group. All set together at claim, all cleared together at
	// cancel; no partial state is ever valid.
	BookedByUserID     *uuid.UUID `db:"booked_by_user_id" json:"booked_by_user_id,omitempty"`
	BookedTeamName     *string    `db:"booked_team_name" json:"booked_team_name,omitempty"`
	BookedTeamCategory *string    `db:"booked_team_category" json:"booked_team_category,omitempty"`
	BookedTeamGender   *string    `db:"booked_team_gender" json:"booked_team_gender,omitempty"`
	BookedTeamPhone    *string    `db:"booked_team_phone" json:"booked_team_phone,omitempty"`
	BookedTeamLogoURL  *string    `db:"booked_team_logo_url" json:"booked_team_logo_url,omitempty"`

	ReceiptURL           *string      `db:"receipt_url" json:"receipt_url,omitempty"`
	ReceiptUploadedAt    *time.Time   `db:"receipt_uploaded_at" json:"receipt_uploaded_at,omitempty"`
	AIVerificationResult entity.JSONB `db:"ai_verification_result" json:"ai_verification_result,omitempty"`

	entity.BaseEntity
}

// BookingSnapshot is the claimant data written as one atomic group when a
// slot is claimed.
type BookingSnapshot struct {
	UserID       uuid.UUID
	TeamName     string
	TeamCategory string
	TeamGender   string
	TeamPhone    string
	TeamLogoURL  *string
}

// IsBooked derives the legacy booked flag from status.
func (s *MatchSlot) IsBooked() bool {
	return s.Status != StatusAvailable && s.Status != StatusRejected
}

// AwaitingOwnerDecision reports whether confirm/reject is a valid next move.
func (s *MatchSlot) AwaitingOwnerDecision() bool {
	return s.Status == StatusPendingVerification || s.Status == StatusPendingPayment
}

// HasBookingGroup reports whether any booking field is populated. Used by
// invariant checks: a claimed slot has the full group, a cleared slot none.
func (s *MatchSlot) HasBookingGroup() bool {
	return s.BookedByUserID != nil || s.BookedTeamName != nil || s.BookedTeamCategory != nil ||
		s.BookedTeamGender != nil || s.BookedTeamPhone != nil || s.BookedTeamLogoURL != nil
}

// ClearBooking resets the slot to a state indistinguishable from one that
// was never claimed.
func (s *MatchSlot) ClearBooking() {
	s.Status = StatusAvailable
	s.BookedByUserID = nil
	s.BookedTeamName = nil
	s.BookedTeamCategory = nil
	s.BookedTeamGender = nil
	s.BookedTeamPhone = nil
	s.BookedTeamLogoURL = nil
	s.ReceiptURL = nil
	s.ReceiptUploadedAt = nil
	s.AIVerificationResult = nil
}

// ApplyBooking populates the booking group and moves the slot to the given
// pending/confirmed status. Mirrors what the conditional claim UPDATE does,
// for callers that build slot values in memory.
func (s *MatchSlot) ApplyBooking(b BookingSnapshot, status string) {
	s.Status = status
	userID := b.UserID
	s.BookedByUserID = &userID
	name, category, gender, phone := b.TeamName, b.TeamCategory, b.TeamGender, b.TeamPhone
	s.BookedTeamName = &name
	s.BookedTeamCategory = &category
	s.BookedTeamGender = &gender
	s.BookedTeamPhone = &phone
	s.BookedTeamLogoURL = b.TeamLogoURL
}

type PaginatedSlotEntity = entity.Pagination[MatchSlot]
