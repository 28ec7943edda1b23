package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"jogofacil/core/errors"
	"jogofacil/core/params"
	authentity "jogofacil/modules/auth/entity"
	fieldentity "jogofacil/modules/field/entity"
	notifservice "jogofacil/modules/notification/service"
	"jogofacil/modules/slot/dto"
	"jogofacil/modules/slot/entity"

	coreEntity "jogofacil/core/entity"

	"github.com/google/uuid"
)

// In-memory fakes reproducing the conditional-write semantics of the real
// repositories: the status guard in the fake is what arbitrates races, the
// same way the SQL WHERE clause does.

type fakeSlotRepo struct {
	mu     sync.Mutex
	slots  map[uuid.UUID]entity.MatchSlot
	fields *fakeFieldRepo
}

func newFakeSlotRepo(fields *fakeFieldRepo) *fakeSlotRepo {
	return &fakeSlotRepo{slots: map[uuid.UUID]entity.MatchSlot{}, fields: fields}
}

func (r *fakeSlotRepo) Create(ctx context.Context, slot *entity.MatchSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot.ID = uuid.New()
	slot.CreatedAt = time.Now()
	slot.UpdatedAt = slot.CreatedAt
	r.slots[slot.ID] = *slot
	return nil
}

func (r *fakeSlotRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.MatchSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[id]
	if !ok {
		return nil, nil
	}
	copied := slot
	return &copied, nil
}

func (r *fakeSlotRepo) ListAvailable(ctx context.Context, filters dto.ListFilters) ([]entity.AvailableSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	today := time.Now().Format("2006-01-02")
	var out []entity.AvailableSlot
	for _, slot := range r.slots {
		if slot.Status != entity.StatusAvailable || slot.Date < today {
			continue
		}
		if filters.Sport != "" && slot.Sport != filters.Sport {
			continue
		}
		row := entity.AvailableSlot{MatchSlot: slot}
		if field, ok := r.fields.fields[slot.FieldID]; ok {
			row.FieldName = field.Name
			row.FieldLat = field.Lat
			row.FieldLng = field.Lng
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *fakeSlotRepo) ListByFieldID(ctx context.Context, fieldID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedSlotEntity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []entity.MatchSlot
	for _, slot := range r.slots {
		if slot.FieldID == fieldID {
			items = append(items, slot)
		}
	}
	return &entity.PaginatedSlotEntity{
		Items:      items,
		TotalItems: len(items),
		PageNumber: queryParams.PageNumber,
		PageSize:   queryParams.PageSize,
	}, nil
}

func (r *fakeSlotRepo) Claim(ctx context.Context, slotID uuid.UUID, booking entity.BookingSnapshot, toStatus string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[slotID]
	if !ok || slot.Status != entity.StatusAvailable {
		return 0, nil
	}
	slot.ApplyBooking(booking, toStatus)
	r.slots[slotID] = slot
	return 1, nil
}

func (r *fakeSlotRepo) Decide(ctx context.Context, slotID uuid.UUID, toStatus string, clearReceipt bool) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[slotID]
	if !ok || !slot.AwaitingOwnerDecision() {
		return 0, nil
	}
	slot.Status = toStatus
	if clearReceipt {
		slot.ReceiptURL = nil
		slot.ReceiptUploadedAt = nil
		slot.AIVerificationResult = nil
	}
	r.slots[slotID] = slot
	return 1, nil
}

func (r *fakeSlotRepo) Cancel(ctx context.Context, slotID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[slotID]
	if !ok || slot.Status == entity.StatusAvailable {
		return 0, nil
	}
	slot.ClearBooking()
	r.slots[slotID] = slot
	return 1, nil
}

func (r *fakeSlotRepo) Delete(ctx context.Context, slotID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[slotID]
	if !ok || slot.Status != entity.StatusAvailable {
		return 0, nil
	}
	delete(r.slots, slot.ID)
	return 1, nil
}

func (r *fakeSlotRepo) ExistsAt(ctx context.Context, fieldID uuid.UUID, date, timeOfDay, courtName string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, slot := range r.slots {
		if slot.FieldID == fieldID && slot.Date == date && slot.Time == timeOfDay && slot.CourtName == courtName {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSlotRepo) SetReceipt(ctx context.Context, slotID uuid.UUID, receiptURL string, uploadedAt time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[slotID]
	if !ok || !slot.AwaitingOwnerDecision() {
		return 0, nil
	}
	slot.ReceiptURL = &receiptURL
	slot.ReceiptUploadedAt = &uploadedAt
	r.slots[slotID] = slot
	return 1, nil
}

func (r *fakeSlotRepo) SetVerificationResult(ctx context.Context, slotID uuid.UUID, result coreEntity.JSONB) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[slotID]
	if ok {
		slot.AIVerificationResult = result
		r.slots[slotID] = slot
	}
	return nil
}

type fakeFieldRepo struct {
	fields map[uuid.UUID]*fieldentity.Field
}

func newFakeFieldRepo() *fakeFieldRepo {
	return &fakeFieldRepo{fields: map[uuid.UUID]*fieldentity.Field{}}
}

func (r *fakeFieldRepo) add(ownerID uuid.UUID, name string, lat, lng float64, courts ...string) *fieldentity.Field {
	field := &fieldentity.Field{
		OwnerID: ownerID,
		Name:    name,
		Lat:     lat,
		Lng:     lng,
		Courts:  courts,
	}
	field.ID = uuid.New()
	r.fields[field.ID] = field
	return field
}

func (r *fakeFieldRepo) Create(ctx context.Context, field *fieldentity.Field) error {
	field.ID = uuid.New()
	r.fields[field.ID] = field
	return nil
}

func (r *fakeFieldRepo) GetByID(ctx context.Context, id uuid.UUID) (*fieldentity.Field, error) {
	return r.fields[id], nil
}

func (r *fakeFieldRepo) GetBySlug(ctx context.Context, slug string) (*fieldentity.Field, error) {
	for _, f := range r.fields {
		if f.Slug == slug {
			return f, nil
		}
	}
	return nil, nil
}

func (r *fakeFieldRepo) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]fieldentity.Field, error) {
	var out []fieldentity.Field
	for _, f := range r.fields {
		if f.OwnerID == ownerID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *fakeFieldRepo) Update(ctx context.Context, field *fieldentity.Field) error {
	r.fields[field.ID] = field
	return nil
}

type fakeAuthRepo struct {
	teams map[uuid.UUID]*authentity.Team
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{teams: map[uuid.UUID]*authentity.Team{}}
}

func (r *fakeAuthRepo) addTeam(userID uuid.UUID, name string, categories ...string) *authentity.Team {
	team := &authentity.Team{
		UserID:     userID,
		Name:       name,
		Categories: categories,
		Gender:     "male",
		Phone:      "11999990000",
	}
	team.ID = uuid.New()
	r.teams[team.ID] = team
	return team
}

func (r *fakeAuthRepo) CreateUser(ctx context.Context, user *authentity.User) error { return nil }
func (r *fakeAuthRepo) GetUserByEmail(ctx context.Context, email string) (*authentity.User, error) {
	return nil, nil
}
func (r *fakeAuthRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*authentity.User, error) {
	return nil, nil
}
func (r *fakeAuthRepo) CreateTeam(ctx context.Context, team *authentity.Team) error { return nil }
func (r *fakeAuthRepo) GetTeamByID(ctx context.Context, id uuid.UUID) (*authentity.Team, error) {
	return r.teams[id], nil
}
func (r *fakeAuthRepo) GetTeamsByUserID(ctx context.Context, userID uuid.UUID) ([]authentity.Team, error) {
	return nil, nil
}
func (r *fakeAuthRepo) UpdateTeam(ctx context.Context, team *authentity.Team) error { return nil }
func (r *fakeAuthRepo) DeleteTeam(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	return nil
}

type dispatchedEvent struct {
	kind   string
	userID uuid.UUID
}

type fakeDispatcher struct {
	mu     sync.Mutex
	events []dispatchedEvent
}

func (d *fakeDispatcher) record(kind string, userID uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, dispatchedEvent{kind: kind, userID: userID})
}

func (d *fakeDispatcher) ChallengeSubmitted(ctx context.Context, ownerID uuid.UUID, tc notifservice.TransitionContext) {
	d.record("challenge", ownerID)
}
func (d *fakeDispatcher) BookingConfirmed(ctx context.Context, claimantID uuid.UUID, tc notifservice.TransitionContext) {
	d.record("confirmed", claimantID)
}
func (d *fakeDispatcher) BookingRejected(ctx context.Context, claimantID uuid.UUID, tc notifservice.TransitionContext) {
	d.record("rejected", claimantID)
}
func (d *fakeDispatcher) BookingCancelled(ctx context.Context, ownerID uuid.UUID, claimantID uuid.UUID, tc notifservice.TransitionContext) {
	d.record("cancelled", ownerID)
	if claimantID != uuid.Nil && claimantID != ownerID {
		d.record("cancelled", claimantID)
	}
}
func (d *fakeDispatcher) ReceiptUploaded(ctx context.Context, ownerID uuid.UUID, tc notifservice.TransitionContext) {
	d.record("receipt", ownerID)
}
func (d *fakeDispatcher) ReceiptVerified(ctx context.Context, ownerID uuid.UUID, tc notifservice.TransitionContext) {
	d.record("verified", ownerID)
}
func (d *fakeDispatcher) StandingTeamJoined(ctx context.Context, ownerID uuid.UUID, teamName string, fieldName string) {
	d.record("joined", ownerID)
}

func (d *fakeDispatcher) count(kind string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, e := range d.events {
		if e.kind == kind {
			n++
		}
	}
	return n
}

type fakePresigner struct{}

func (fakePresigner) PresignUpload(ctx context.Context, key string, contentType string) (string, error) {
	return "https://upload.example/" + key, nil
}
func (fakePresigner) ObjectURL(key string) string {
	return "https://files.example/" + key
}

type fixture struct {
	svc        *SlotService
	slots      *fakeSlotRepo
	fields     *fakeFieldRepo
	auth       *fakeAuthRepo
	dispatcher *fakeDispatcher
}

func newFixture() *fixture {
	fields := newFakeFieldRepo()
	slots := newFakeSlotRepo(fields)
	auth := newFakeAuthRepo()
	dispatcher := &fakeDispatcher{}
	svc := NewSlotService(slots, fields, auth, dispatcher, fakePresigner{}, nil)
	return &fixture{svc: svc, slots: slots, fields: fields, auth: auth, dispatcher: dispatcher}
}

func (f *fixture) addChallengeSlot(t *testing.T, fieldID uuid.UUID, allowed ...string) *entity.MatchSlot {
	t.Helper()
	home := "Time da Casa"
	slot := &entity.MatchSlot{
		FieldID:                   fieldID,
		CourtName:                 "Quadra 1",
		Date:                      time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		Time:                      "20:00",
		DurationMinutes:           60,
		Sport:                     "futsal",
		MatchType:                 entity.MatchTypeAmistoso,
		Origin:                    entity.OriginManual,
		Price:                     150,
		Status:                    entity.StatusAvailable,
		HasLocalTeam:              true,
		HomeTeamName:              &home,
		AllowedOpponentCategories: allowed,
	}
	if err := f.slots.Create(context.Background(), slot); err != nil {
		t.Fatalf("seed slot: %v", err)
	}
	return slot
}

// End-to-end booking scenario: ineligible team bounced, eligible team claims,
// owner confirms, owner cancels, each step with the right notifications.
func TestBookingLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	ownerID := uuid.New()
	field := f.fields.add(ownerID, "Arena Central", -23.55, -46.63, "Quadra 1")
	slot := f.addChallengeSlot(t, field.ID, "Sub-17", "Sub-20")

	captainA := uuid.New()
	teamA := f.auth.addTeam(captainA, "Time A", "Sub-15")
	_, appErr := f.svc.SubmitChallenge(ctx, captainA, slot.ID, &dto.SubmitChallengeRequest{TeamID: teamA.ID, Category: "Sub-15"})
	if appErr == nil || appErr.Code != errors.ErrIneligible {
		t.Fatalf("team A challenge: got %v, want INELIGIBLE", appErr)
	}

	captainB := uuid.New()
	teamB := f.auth.addTeam(captainB, "Time B", "Sub-20", "Adulto")
	claimed, appErr := f.svc.SubmitChallenge(ctx, captainB, slot.ID, &dto.SubmitChallengeRequest{TeamID: teamB.ID, Category: "Sub-20"})
	if appErr != nil {
		t.Fatalf("team B challenge: %v", appErr)
	}
	if claimed.Status != entity.StatusPendingVerification {
		t.Fatalf("status = %q, want pending_verification", claimed.Status)
	}
	if claimed.BookedTeamCategory == nil || *claimed.BookedTeamCategory != "Sub-20" {
		t.Fatal("claim must record the selected category")
	}
	if got := f.dispatcher.count("challenge"); got != 1 {
		t.Fatalf("owner challenge notifications = %d, want 1", got)
	}

	confirmed, appErr := f.svc.OwnerDecide(ctx, ownerID, slot.ID, "confirm")
	if appErr != nil {
		t.Fatalf("confirm: %v", appErr)
	}
	if confirmed.Status != entity.StatusConfirmed || !confirmed.IsBooked() {
		t.Fatalf("status = %q, want confirmed and booked", confirmed.Status)
	}
	if got := f.dispatcher.count("confirmed"); got != 1 {
		t.Fatalf("claimant confirm notifications = %d, want 1", got)
	}

	cancelled, appErr := f.svc.Cancel(ctx, ownerID, slot.ID)
	if appErr != nil {
		t.Fatalf("cancel: %v", appErr)
	}
	if cancelled.Status != entity.StatusAvailable {
		t.Fatalf("status after cancel = %q, want available", cancelled.Status)
	}
	if cancelled.HasBookingGroup() || cancelled.ReceiptURL != nil {
		t.Fatal("cancel must clear every booking field")
	}
	if got := f.dispatcher.count("cancelled"); got != 2 {
		t.Fatalf("cancel notifications = %d, want 2 (owner and claimant)", got)
	}
}

// Exactly one of many concurrent claims wins; losers get ALREADY_CLAIMED and
// the slot carries only the winner's payload.
func TestSubmitChallengeAtMostOneClaimant(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	ownerID := uuid.New()
	field := f.fields.add(ownerID, "Arena Central", -23.55, -46.63, "Quadra 1")
	slot := f.addChallengeSlot(t, field.ID, "Sub-20")

	const contenders = 8
	captains := make([]uuid.UUID, contenders)
	teams := make([]uuid.UUID, contenders)
	for i := 0; i < contenders; i++ {
		captains[i] = uuid.New()
		teams[i] = f.auth.addTeam(captains[i], "Time "+string(rune('A'+i)), "Sub-20").ID
	}

	var wg sync.WaitGroup
	results := make([]*errors.AppError, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = f.svc.SubmitChallenge(ctx, captains[i], slot.ID,
				&dto.SubmitChallengeRequest{TeamID: teams[i], Category: "Sub-20"})
		}(i)
	}
	wg.Wait()

	winner := -1
	for i, appErr := range results {
		if appErr == nil {
			if winner >= 0 {
				t.Fatal("more than one claim succeeded")
			}
			winner = i
		} else if appErr.Code != errors.ErrAlreadyClaimed {
			t.Fatalf("loser %d got %v, want ALREADY_CLAIMED", i, appErr)
		}
	}
	if winner < 0 {
		t.Fatal("no claim succeeded")
	}

	final, _ := f.slots.GetByID(ctx, slot.ID)
	if final.BookedByUserID == nil || *final.BookedByUserID != captains[winner] {
		t.Fatal("slot does not carry the winner's payload")
	}
	if !final.HasBookingGroup() || final.BookedTeamName == nil || final.BookedTeamPhone == nil {
		t.Fatal("booking group must be fully populated")
	}
}

func TestSubmitChallengeCategoryOutsideUsableSet(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	ownerID := uuid.New()
	field := f.fields.add(ownerID, "Arena Central", -23.55, -46.63, "Quadra 1")
	slot := f.addChallengeSlot(t, field.ID, "Sub-20")

	captain := uuid.New()
	// Team is eligible through Sub-20 but picks Adulto for the claim.
	team := f.auth.addTeam(captain, "Time B", "Sub-20", "Adulto")
	_, appErr := f.svc.SubmitChallenge(ctx, captain, slot.ID, &dto.SubmitChallengeRequest{TeamID: team.ID, Category: "Adulto"})
	if appErr == nil || appErr.Code != errors.ErrIneligible {
		t.Fatalf("got %v, want INELIGIBLE", appErr)
	}
}

func TestOwnerDecideRequiresPendingState(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	ownerID := uuid.New()
	field := f.fields.add(ownerID, "Arena Central", -23.55, -46.63, "Quadra 1")
	slot := f.addChallengeSlot(t, field.ID, "Sub-20")

	_, appErr := f.svc.OwnerDecide(ctx, ownerID, slot.ID, "confirm")
	if appErr == nil || appErr.Code != errors.ErrInvalidState {
		t.Fatalf("confirm on available slot: got %v, want INVALID_STATE", appErr)
	}

	_, appErr = f.svc.OwnerDecide(ctx, ownerID, slot.ID, "maybe")
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("bad decision: got %v, want INVALID_INPUT", appErr)
	}
}

func TestOwnerRejectClearsReceipt(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	ownerID := uuid.New()
	field := f.fields.add(ownerID, "Arena Central", -23.55, -46.63, "Quadra 1")
	slot := f.addChallengeSlot(t, field.ID, "Sub-20")

	captain := uuid.New()
	team := f.auth.addTeam(captain, "Time B", "Sub-20")
	if _, appErr := f.svc.SubmitChallenge(ctx, captain, slot.ID, &dto.SubmitChallengeRequest{TeamID: team.ID, Category: "Sub-20"}); appErr != nil {
		t.Fatalf("challenge: %v", appErr)
	}
	if _, appErr := f.svc.UploadReceipt(ctx, captain, slot.ID, &dto.ReceiptUploadRequest{ContentType: "image/png"}); appErr != nil {
		t.Fatalf("upload receipt: %v", appErr)
	}

	rejected, appErr := f.svc.OwnerDecide(ctx, ownerID, slot.ID, "reject")
	if appErr != nil {
		t.Fatalf("reject: %v", appErr)
	}
	if rejected.Status != entity.StatusRejected {
		t.Fatalf("status = %q, want rejected", rejected.Status)
	}
	if rejected.ReceiptURL != nil {
		t.Fatal("rejection must clear the receipt")
	}
	if got := f.dispatcher.count("rejected"); got != 1 {
		t.Fatalf("reject notifications = %d, want 1", got)
	}
}

func TestCancelOnAvailableSlotIsInvalidState(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	ownerID := uuid.New()
	field := f.fields.add(ownerID, "Arena Central", -23.55, -46.63, "Quadra 1")
	slot := f.addChallengeSlot(t, field.ID, "Sub-20")

	_, appErr := f.svc.Cancel(ctx, ownerID, slot.ID)
	if appErr == nil || appErr.Code != errors.ErrInvalidState {
		t.Fatalf("got %v, want INVALID_STATE", appErr)
	}
}

func TestCancelForbiddenForStrangers(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	ownerID := uuid.New()
	field := f.fields.add(ownerID, "Arena Central", -23.55, -46.63, "Quadra 1")
	slot := f.addChallengeSlot(t, field.ID, "Sub-20")

	captain := uuid.New()
	team := f.auth.addTeam(captain, "Time B", "Sub-20")
	if _, appErr := f.svc.SubmitChallenge(ctx, captain, slot.ID, &dto.SubmitChallengeRequest{TeamID: team.ID, Category: "Sub-20"}); appErr != nil {
		t.Fatalf("challenge: %v", appErr)
	}

	_, appErr := f.svc.Cancel(ctx, uuid.New(), slot.ID)
	if appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Fatalf("got %v, want FORBIDDEN", appErr)
	}

	// The claimant may cancel their own booking.
	if _, appErr := f.svc.Cancel(ctx, captain, slot.ID); appErr != nil {
		t.Fatalf("claimant cancel: %v", appErr)
	}
}

func TestCreateManualSlotValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	ownerID := uuid.New()
	field := f.fields.add(ownerID, "Arena Central", -23.55, -46.63, "Quadra 1")
	date := time.Now().AddDate(0, 0, 3).Format("2006-01-02")

	req := &dto.CreateSlotRequest{
		FieldID: field.ID, CourtName: "Quadra 1", Date: date, Time: "19:00",
		Sport: "futsal", Price: 120,
	}
	slot, appErr := f.svc.CreateManualSlot(ctx, ownerID, req)
	if appErr != nil {
		t.Fatalf("create: %v", appErr)
	}
	if slot.MatchType != entity.MatchTypeAluguel || slot.HasLocalTeam {
		t.Fatal("slot without host team must be an open rental")
	}
	if slot.Origin != entity.OriginManual {
		t.Fatalf("origin = %q, want manual", slot.Origin)
	}

	if _, appErr := f.svc.CreateManualSlot(ctx, ownerID, req); appErr == nil || appErr.Code != errors.ErrAlreadyExists {
		t.Fatalf("duplicate create: got %v, want ALREADY_EXISTS", appErr)
	}

	bad := *req
	bad.Time = "25:99"
	if _, appErr := f.svc.CreateManualSlot(ctx, ownerID, &bad); appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("bad time: got %v, want INVALID_INPUT", appErr)
	}

	other := *req
	other.Time = "21:00"
	other.CourtName = "Quadra 3"
	if _, appErr := f.svc.CreateManualSlot(ctx, ownerID, &other); appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("unknown court: got %v, want INVALID_INPUT", appErr)
	}

	if _, appErr := f.svc.CreateManualSlot(ctx, uuid.New(), req); appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Fatalf("stranger create: got %v, want FORBIDDEN", appErr)
	}

	hosted := *req
	hosted.Time = "22:00"
	hosted.HostTeam = &dto.HostTeamRequest{Name: "Casa FC", Category: "Adulto", AllowedCategories: []string{"Adulto"}}
	withHost, appErr := f.svc.CreateManualSlot(ctx, ownerID, &hosted)
	if appErr != nil {
		t.Fatalf("hosted create: %v", appErr)
	}
	if !withHost.HasLocalTeam || withHost.MatchType != entity.MatchTypeAmistoso {
		t.Fatal("slot with host team must be a friendly with a local team")
	}
}

func TestDeleteSlotOnlyWhileAvailable(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	ownerID := uuid.New()
	field := f.fields.add(ownerID, "Arena Central", -23.55, -46.63, "Quadra 1")
	slot := f.addChallengeSlot(t, field.ID, "Sub-20")

	captain := uuid.New()
	team := f.auth.addTeam(captain, "Time B", "Sub-20")
	if _, appErr := f.svc.SubmitChallenge(ctx, captain, slot.ID, &dto.SubmitChallengeRequest{TeamID: team.ID, Category: "Sub-20"}); appErr != nil {
		t.Fatalf("challenge: %v", appErr)
	}

	if appErr := f.svc.DeleteSlot(ctx, ownerID, slot.ID); appErr == nil || appErr.Code != errors.ErrInvalidState {
		t.Fatalf("delete claimed slot: got %v, want INVALID_STATE", appErr)
	}

	if _, appErr := f.svc.Cancel(ctx, ownerID, slot.ID); appErr != nil {
		t.Fatalf("cancel: %v", appErr)
	}
	if appErr := f.svc.DeleteSlot(ctx, ownerID, slot.ID); appErr != nil {
		t.Fatalf("delete available slot: %v", appErr)
	}
}

func TestUploadReceiptGuards(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	ownerID := uuid.New()
	field := f.fields.add(ownerID, "Arena Central", -23.55, -46.63, "Quadra 1")
	slot := f.addChallengeSlot(t, field.ID, "Sub-20")

	captain := uuid.New()
	team := f.auth.addTeam(captain, "Time B", "Sub-20")
	if _, appErr := f.svc.SubmitChallenge(ctx, captain, slot.ID, &dto.SubmitChallengeRequest{TeamID: team.ID, Category: "Sub-20"}); appErr != nil {
		t.Fatalf("challenge: %v", appErr)
	}

	if _, appErr := f.svc.UploadReceipt(ctx, uuid.New(), slot.ID, &dto.ReceiptUploadRequest{ContentType: "image/png"}); appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Fatalf("stranger upload: got %v, want FORBIDDEN", appErr)
	}

	resp, appErr := f.svc.UploadReceipt(ctx, captain, slot.ID, &dto.ReceiptUploadRequest{ContentType: "image/png"})
	if appErr != nil {
		t.Fatalf("upload: %v", appErr)
	}
	if !strings.HasPrefix(resp.UploadURL, "https://upload.example/receipts/") {
		t.Fatalf("upload URL = %q", resp.UploadURL)
	}
	stored, _ := f.slots.GetByID(ctx, slot.ID)
	if stored.ReceiptURL == nil || *stored.ReceiptURL != resp.ReceiptURL {
		t.Fatal("receipt URL not recorded on the slot")
	}
	if got := f.dispatcher.count("receipt"); got != 1 {
		t.Fatalf("receipt notifications = %d, want 1", got)
	}

	if _, appErr := f.svc.OwnerDecide(ctx, ownerID, slot.ID, "confirm"); appErr != nil {
		t.Fatalf("confirm: %v", appErr)
	}
	if _, appErr := f.svc.UploadReceipt(ctx, captain, slot.ID, &dto.ReceiptUploadRequest{ContentType: "image/png"}); appErr == nil || appErr.Code != errors.ErrInvalidState {
		t.Fatalf("upload after confirm: got %v, want INVALID_STATE", appErr)
	}
}

// An unknown requester origin must never exclude slots; a known origin
// filters by the haversine distance to the field.
func TestListAvailableDistanceFilter(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	ownerID := uuid.New()
	near := f.fields.add(ownerID, "Arena Perto", -23.5505, -46.6333, "Quadra 1")
	far := f.fields.add(ownerID, "Arena Longe", -22.9068, -43.1729, "Quadra 1")
	f.addChallengeSlot(t, near.ID, "Sub-20")
	f.addChallengeSlot(t, far.ID, "Sub-20")

	// Origin next to the near field, 50 km radius: only the near slot stays.
	slots, appErr := f.svc.ListAvailable(ctx, dto.ListFilters{
		OriginLat: -23.55, OriginLng: -46.63, MaxDistanceKm: 50,
	})
	if appErr != nil {
		t.Fatalf("list: %v", appErr)
	}
	if len(slots) != 1 || slots[0].FieldName != "Arena Perto" {
		t.Fatalf("filtered list = %d slots, want only Arena Perto", len(slots))
	}
	if slots[0].DistanceKm == nil {
		t.Fatal("distance should be annotated when both points are known")
	}

	// Unknown origin: nothing is excluded by distance.
	slots, appErr = f.svc.ListAvailable(ctx, dto.ListFilters{MaxDistanceKm: 50})
	if appErr != nil {
		t.Fatalf("list: %v", appErr)
	}
	if len(slots) != 2 {
		t.Fatalf("unknown origin list = %d slots, want 2", len(slots))
	}
	for _, s := range slots {
		if s.DistanceKm != nil {
			t.Fatal("distance must stay unset for an unknown origin")
		}
	}
}
