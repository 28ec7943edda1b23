package service

import (
	"context"
	"fmt"

	"jogofacil/core/logger"
	"jogofacil/core/queue"
	"jogofacil/modules/notification/dto"
	"jogofacil/modules/notification/entity"

	"github.com/google/uuid"
)

// TransitionContext carries the pieces of a slot transition that appear in
// notification texts. Team names are the denormalized snapshots from the
// slot, not live references.
type TransitionContext struct {
	SlotID       uuid.UUID
	FieldName    string
	Date         string
	Time         string
	HomeTeamName string
	AwayTeamName string
}

// DispatcherInterface is the contract the booking coordinator calls after
// every status-changing transition. Each method enqueues exactly one
// notification per addressed user. Delivery beyond the queued record and
// the published event is out of scope.
type DispatcherInterface interface {
	ChallengeSubmitted(ctx context.Context, ownerID uuid.UUID, tc TransitionContext)
	BookingConfirmed(ctx context.Context, claimantID uuid.UUID, tc TransitionContext)
	BookingRejected(ctx context.Context, claimantID uuid.UUID, tc TransitionContext)
	BookingCancelled(ctx context.Context, ownerID uuid.UUID, claimantID uuid.UUID, tc TransitionContext)
	ReceiptUploaded(ctx context.Context, ownerID uuid.UUID, tc TransitionContext)
	ReceiptVerified(ctx context.Context, ownerID uuid.UUID, tc TransitionContext)
	StandingTeamJoined(ctx context.Context, ownerID uuid.UUID, teamName string, fieldName string)
}

// Dispatcher builds deterministic notification records from transition
// context, stores them, and publishes a copy to RabbitMQ for external
// delivery consumers. Publish failures are logged and ignored: the stored
// record is the source of truth.
type Dispatcher struct {
	svc       *NotificationService
	publisher *queue.Publisher
}

func NewDispatcher(svc *NotificationService, publisher *queue.Publisher) *Dispatcher {
	return &Dispatcher{svc: svc, publisher: publisher}
}

func (d *Dispatcher) dispatch(ctx context.Context, userID uuid.UUID, title, description, notifType string, tc TransitionContext) {
	req := &dto.CreateNotificationRequest{
		UserID:      userID,
		Title:       title,
		Description: description,
		Type:        notifType,
		Data: map[string]interface{}{
			"slot_id": tc.SlotID.String(),
			"date":    tc.Date,
			"time":    tc.Time,
		},
	}

	if err := d.svc.Create(ctx, req); err != nil {
		logger.Error("Dispatcher:Create:Error", "error", err, "user_id", userID, "title", title)
		return
	}

	if d.publisher != nil {
		if err := d.publisher.Publish(ctx, queue.QueueNotifications, req); err != nil {
			logger.Warn("Dispatcher:Publish:Error", "error", err, "user_id", userID)
		}
	}
}

func (d *Dispatcher) ChallengeSubmitted(ctx context.Context, ownerID uuid.UUID, tc TransitionContext) {
	d.dispatch(ctx, ownerID,
		"Novo desafio recebido",
		fmt.Sprintf("%s desafiou o horário de %s às %s em %s. Confirme ou recuse a reserva.",
			tc.AwayTeamName, tc.Date, tc.Time, tc.FieldName),
		entity.TypeInfo, tc)
}

func (d *Dispatcher) BookingConfirmed(ctx context.Context, claimantID uuid.UUID, tc TransitionContext) {
	d.dispatch(ctx, claimantID,
		"Reserva confirmada",
		fmt.Sprintf("Sua reserva de %s às %s em %s foi confirmada.",
			tc.Date, tc.Time, tc.FieldName),
		entity.TypeSuccess, tc)
}

func (d *Dispatcher) BookingRejected(ctx context.Context, claimantID uuid.UUID, tc TransitionContext) {
	d.dispatch(ctx, claimantID,
		"Reserva recusada",
		fmt.Sprintf("Sua reserva de %s às %s em %s foi recusada pelo dono do campo.",
			tc.Date, tc.Time, tc.FieldName),
		entity.TypeWarning, tc)
}

func (d *Dispatcher) BookingCancelled(ctx context.Context, ownerID uuid.UUID, claimantID uuid.UUID, tc TransitionContext) {
	description := fmt.Sprintf("A reserva de %s às %s em %s foi cancelada. O horário está disponível novamente.",
		tc.Date, tc.Time, tc.FieldName)
	d.dispatch(ctx, ownerID, "Reserva cancelada", description, entity.TypeWarning, tc)
	if claimantID != uuid.Nil && claimantID != ownerID {
		d.dispatch(ctx, claimantID, "Reserva cancelada", description, entity.TypeWarning, tc)
	}
}

func (d *Dispatcher) ReceiptUploaded(ctx context.Context, ownerID uuid.UUID, tc TransitionContext) {
	d.dispatch(ctx, ownerID,
		"Comprovante enviado",
		fmt.Sprintf("%s enviou o comprovante de pagamento do horário de %s às %s em %s.",
			tc.AwayTeamName, tc.Date, tc.Time, tc.FieldName),
		entity.TypeInfo, tc)
}

func (d *Dispatcher) ReceiptVerified(ctx context.Context, ownerID uuid.UUID, tc TransitionContext) {
	d.dispatch(ctx, ownerID,
		"Comprovante analisado",
		fmt.Sprintf("O comprovante do horário de %s às %s em %s foi analisado e aguarda sua revisão.",
			tc.Date, tc.Time, tc.FieldName),
		entity.TypeInfo, tc)
}

func (d *Dispatcher) StandingTeamJoined(ctx context.Context, ownerID uuid.UUID, teamName string, fieldName string) {
	d.dispatch(ctx, ownerID,
		"Mensalista ativado",
		fmt.Sprintf("O time %s aceitou o convite e agora é mensalista em %s.", teamName, fieldName),
		entity.TypeSuccess, TransitionContext{FieldName: fieldName})
}
