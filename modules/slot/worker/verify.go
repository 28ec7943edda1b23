package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"jogofacil/core/config"
	coreEntity "jogofacil/core/entity"
	"jogofacil/core/logger"
	"jogofacil/core/tasks"
	fieldrepository "jogofacil/modules/field/repository"
	notifservice "jogofacil/modules/notification/service"
	"jogofacil/modules/slot/repository"

	"github.com/hibiken/asynq"
)

// ReceiptVerifier is the asynq handler that sends an uploaded payment
// receipt to the external AI verification service and stores whatever
// opaque result it returns. Verification never advances the slot's status;
// the owner stays the one who confirms or rejects.
type ReceiptVerifier struct {
	repo       repository.SlotRepositoryInterface
	fieldRepo  fieldrepository.FieldRepositoryInterface
	dispatcher notifservice.DispatcherInterface
	httpClient *http.Client
	cfg        config.VerificationConfig
}

func NewReceiptVerifier(
	repo repository.SlotRepositoryInterface,
	fieldRepo fieldrepository.FieldRepositoryInterface,
	dispatcher notifservice.DispatcherInterface,
	cfg config.VerificationConfig,
) *ReceiptVerifier {
	return &ReceiptVerifier{
		repo:       repo,
		fieldRepo:  fieldRepo,
		dispatcher: dispatcher,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cfg:        cfg,
	}
}

// Register attaches the handler to the worker mux.
func (v *ReceiptVerifier) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(tasks.TypeReceiptVerify, v.HandleReceiptVerify)
}

func (v *ReceiptVerifier) HandleReceiptVerify(ctx context.Context, task *asynq.Task) error {
	var payload tasks.ReceiptVerifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal receipt verify payload: %w", err)
	}
	logger.Info("ReceiptVerifier:Handle:Start", "slot_id", payload.SlotID)

	slot, err := v.repo.GetByID(ctx, payload.SlotID)
	if err != nil {
		return fmt.Errorf("load slot %s: %w", payload.SlotID, err)
	}
	if slot == nil || slot.ReceiptURL == nil {
		// Slot deleted or receipt cleared since enqueue; nothing to verify.
		logger.Warn("ReceiptVerifier:Handle:Skip", "slot_id", payload.SlotID)
		return nil
	}

	result, err := v.verify(ctx, *slot.ReceiptURL, slot.Price)
	if err != nil {
		logger.Error("ReceiptVerifier:Verify:Error", "error", err, "slot_id", payload.SlotID)
		return err
	}

	if err := v.repo.SetVerificationResult(ctx, payload.SlotID, result); err != nil {
		return fmt.Errorf("store verification result: %w", err)
	}

	if field, ferr := v.fieldRepo.GetByID(ctx, slot.FieldID); ferr == nil && field != nil {
		awayName := ""
		if slot.BookedTeamName != nil {
			awayName = *slot.BookedTeamName
		}
		v.dispatcher.ReceiptVerified(ctx, field.OwnerID, notifservice.TransitionContext{
			SlotID:       slot.ID,
			FieldName:    field.Name,
			Date:         slot.Date,
			Time:         slot.Time,
			AwayTeamName: awayName,
		})
	}
	return nil
}

// verify posts the receipt to the external service and returns its response
// body as an opaque document. When no service is configured the result just
// records that verification was skipped.
func (v *ReceiptVerifier) verify(ctx context.Context, receiptURL string, expectedAmount float64) (coreEntity.JSONB, error) {
	if v.cfg.URL == "" {
		return coreEntity.JSONB{"status": "skipped", "reason": "no verification service configured"}, nil
	}

	body, err := json.Marshal(map[string]any{
		"receipt_url":     receiptURL,
		"expected_amount": expectedAmount,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if v.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+v.cfg.APIKey)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result coreEntity.JSONB
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode verification response: %w", err)
	}
	result["http_status"] = resp.StatusCode
	return result, nil
}
