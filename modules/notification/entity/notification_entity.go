package entity

import (
	"jogofacil/core/entity"

	"github.com/google/uuid"
)

// Notification types surfaced to clients.
const (
	TypeSuccess = "success"
	TypeWarning = "warning"
	TypeInfo    = "info"
)

// Notification is a one-way, read-tracked message addressed to one user.
// Rows are created only as a side effect of slot state transitions and team
// invitations; the only mutation afterwards is flipping Read.
type Notification struct {
	UserID      uuid.UUID    `db:"user_id" json:"user_id"`
	Title       string       `db:"title" json:"title"`
	Description string       `db:"description" json:"description"`
	Type        string       `db:"type" json:"type"`
	Data        entity.JSONB `db:"data" json:"data"`
	Read        bool         `db:"read" json:"read"`
	entity.BaseEntity
}

type PaginatedNotificationEntity = entity.Pagination[Notification]
