package dto

import "github.com/google/uuid"

type CreateNotificationRequest struct {
	UserID      uuid.UUID              `json:"user_id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Type        string                 `json:"type"`
	Data        map[string]interface{} `json:"data"`
}

type MarkAsReadRequest struct {
	IDs []string `json:"ids"`
}
