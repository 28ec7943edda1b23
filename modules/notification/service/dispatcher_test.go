package service

import (
	"context"
	"strings"
	"testing"

	"jogofacil/core/params"
	"jogofacil/modules/notification/entity"

	"github.com/google/uuid"
)

type fakeNotificationRepo struct {
	created []entity.Notification
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	n.ID = uuid.New()
	r.created = append(r.created, *n)
	return nil
}

func (r *fakeNotificationRepo) GetByUserID(ctx context.Context, userID uuid.UUID, p params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	return &entity.PaginatedNotificationEntity{}, nil
}

func (r *fakeNotificationRepo) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) error {
	return nil
}

func (r *fakeNotificationRepo) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return nil
}

func (r *fakeNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return len(r.created), nil
}

func newTestDispatcher() (*Dispatcher, *fakeNotificationRepo) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, nil)
	return NewDispatcher(svc, nil), repo
}

func sampleContext() TransitionContext {
	return TransitionContext{
		SlotID:       uuid.New(),
		FieldName:    "Arena Central",
		Date:         "2026-09-12",
		Time:         "20:00",
		AwayTeamName: "Galacticos",
	}
}

func TestChallengeSubmittedAddressesOwner(t *testing.T) {
	d, repo := newTestDispatcher()
	ownerID := uuid.New()

	d.ChallengeSubmitted(context.Background(), ownerID, sampleContext())

	if len(repo.created) != 1 {
		t.Fatalf("created %d notifications, want 1", len(repo.created))
	}
	n := repo.created[0]
	if n.UserID != ownerID {
		t.Fatal("challenge notification must address the field owner")
	}
	if n.Type != entity.TypeInfo {
		t.Fatalf("type = %q, want info", n.Type)
	}
	for _, part := range []string{"Galacticos", "2026-09-12", "20:00", "Arena Central"} {
		if !strings.Contains(n.Description, part) {
			t.Fatalf("description %q missing %q", n.Description, part)
		}
	}
}

func TestDecisionNotificationsAddressClaimant(t *testing.T) {
	d, repo := newTestDispatcher()
	claimantID := uuid.New()

	d.BookingConfirmed(context.Background(), claimantID, sampleContext())
	d.BookingRejected(context.Background(), claimantID, sampleContext())

	if len(repo.created) != 2 {
		t.Fatalf("created %d notifications, want 2", len(repo.created))
	}
	if repo.created[0].Type != entity.TypeSuccess {
		t.Fatalf("confirm type = %q, want success", repo.created[0].Type)
	}
	if repo.created[1].Type != entity.TypeWarning {
		t.Fatalf("reject type = %q, want warning", repo.created[1].Type)
	}
	for _, n := range repo.created {
		if n.UserID != claimantID {
			t.Fatal("decision notifications must address the claimant")
		}
	}
}

func TestBookingCancelledAddressesBothParties(t *testing.T) {
	d, repo := newTestDispatcher()
	ownerID := uuid.New()
	claimantID := uuid.New()

	d.BookingCancelled(context.Background(), ownerID, claimantID, sampleContext())

	if len(repo.created) != 2 {
		t.Fatalf("created %d notifications, want one per party", len(repo.created))
	}
	addressed := map[uuid.UUID]bool{}
	for _, n := range repo.created {
		if addressed[n.UserID] {
			t.Fatal("a party was notified twice")
		}
		addressed[n.UserID] = true
	}
	if !addressed[ownerID] || !addressed[claimantID] {
		t.Fatal("both owner and claimant must be notified")
	}
}

func TestBookingCancelledDeduplicatesSameParty(t *testing.T) {
	d, repo := newTestDispatcher()
	ownerID := uuid.New()

	// Owner cancelled their own direct booking: owner and claimant are the
	// same user and must get a single record.
	d.BookingCancelled(context.Background(), ownerID, ownerID, sampleContext())
	if len(repo.created) != 1 {
		t.Fatalf("created %d notifications, want 1", len(repo.created))
	}

	// No claimant at all (cleared earlier): only the owner record.
	repo.created = nil
	d.BookingCancelled(context.Background(), ownerID, uuid.Nil, sampleContext())
	if len(repo.created) != 1 {
		t.Fatalf("created %d notifications, want 1", len(repo.created))
	}
}

func TestDispatchCarriesSlotData(t *testing.T) {
	d, repo := newTestDispatcher()
	tc := sampleContext()

	d.ReceiptUploaded(context.Background(), uuid.New(), tc)

	if len(repo.created) != 1 {
		t.Fatalf("created %d notifications, want 1", len(repo.created))
	}
	data := repo.created[0].Data
	if data["slot_id"] != tc.SlotID.String() {
		t.Fatalf("data slot_id = %v, want %s", data["slot_id"], tc.SlotID)
	}
	if data["date"] != tc.Date || data["time"] != tc.Time {
		t.Fatal("data must carry the slot's date and time")
	}
}
