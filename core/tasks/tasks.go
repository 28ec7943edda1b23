package tasks

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Task type names registered on the asynq mux.
const (
	TypeReceiptVerify = "receipt:verify"
)

// ReceiptVerifyPayload identifies the slot whose uploaded receipt should be
// sent to the external AI verification service.
type ReceiptVerifyPayload struct {
	SlotID uuid.UUID `json:"slot_id"`
}

func NewReceiptVerifyTask(slotID uuid.UUID) (*asynq.Task, error) {
	payload, err := json.Marshal(ReceiptVerifyPayload{SlotID: slotID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeReceiptVerify, payload, asynq.MaxRetry(3)), nil
}
