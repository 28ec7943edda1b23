package entity

import (
	"jogofacil/core/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// User roles
const (
	RoleOwner   = "owner"
	RoleCaptain = "captain"
	RoleAdmin   = "admin"
)

type User struct {
	Name         string `db:"name" json:"name"`
	Email        string `db:"email" json:"email"`
	Phone        string `db:"phone" json:"phone"`
	PasswordHash string `db:"password_hash" json:"-"`
	Role         string `db:"role" json:"role"`
	entity.BaseEntity
}

// Team is a captain's sub-team. Its fields are copied onto a slot as an
// immutable snapshot at claim time; renaming a team never rewrites history.
type Team struct {
	UserID     uuid.UUID      `db:"user_id" json:"user_id"`
	Name       string         `db:"name" json:"name"`
	Categories pq.StringArray `db:"categories" json:"categories"`
	Gender     string         `db:"gender" json:"gender"`
	Phone      string         `db:"phone" json:"phone"`
	LogoURL    *string        `db:"logo_url" json:"logo_url,omitempty"`
	entity.BaseEntity
}
