package entity

import (
	"jogofacil/core/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Standing reservation statuses
const (
	StatusPending = "pending"
	StatusActive  = "active"
)

// RegisteredTeam is a mensalista profile: a team with a recurring weekly
// claim on one field's slot pattern. It is the source the recurring slot
// generator reads from and is never itself bookable. FixedDay follows
// time.Weekday numbering, 0=Sunday through 6=Saturday.
type RegisteredTeam struct {
	FieldID       uuid.UUID      `db:"field_id" json:"field_id"`
	Name          string         `db:"name" json:"name"`
	CaptainUserID *uuid.UUID     `db:"captain_user_id" json:"captain_user_id,omitempty"`
	Phone         string         `db:"phone" json:"phone"`
	Categories    pq.StringArray `db:"categories" json:"categories"`
	Gender        string         `db:"gender" json:"gender"`
	Sport         string         `db:"sport" json:"sport"`
	FixedDay      int            `db:"fixed_day" json:"fixed_day"`
	FixedTime     string         `db:"fixed_time" json:"fixed_time"`
	CourtName     string         `db:"court_name" json:"court_name"`
	LogoURL       *string        `db:"logo_url" json:"logo_url,omitempty"`
	Status        string         `db:"status" json:"status"`
	InviteCode    string         `db:"invite_code" json:"invite_code"`
	entity.BaseEntity
}

// PrimaryCategory is the category stamped onto generated slots.
func (t *RegisteredTeam) PrimaryCategory() string {
	if len(t.Categories) > 0 {
		return t.Categories[0]
	}
	return ""
}
