package service

import (
	"context"
	"time"

	"jogofacil/core/errors"
	"jogofacil/core/geo"
	"jogofacil/core/logger"
	"jogofacil/core/params"
	"jogofacil/core/storage"
	"jogofacil/core/tasks"
	"jogofacil/core/utils"
	authrepository "jogofacil/modules/auth/repository"
	fieldentity "jogofacil/modules/field/entity"
	fieldrepository "jogofacil/modules/field/repository"
	notifservice "jogofacil/modules/notification/service"
	"jogofacil/modules/slot/dto"
	"jogofacil/modules/slot/entity"
	"jogofacil/modules/slot/repository"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type SlotServiceInterface interface {
	CreateManualSlot(ctx context.Context, ownerID uuid.UUID, req *dto.CreateSlotRequest) (*entity.MatchSlot, *errors.AppError)
	ListAvailable(ctx context.Context, filters dto.ListFilters) ([]entity.AvailableSlot, *errors.AppError)
	GetFieldAgenda(ctx context.Context, ownerID, fieldID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedSlotEntity, *errors.AppError)
	SubmitChallenge(ctx context.Context, userID, slotID uuid.UUID, req *dto.SubmitChallengeRequest) (*entity.MatchSlot, *errors.AppError)
	OwnerAssign(ctx context.Context, ownerID, slotID uuid.UUID, req *dto.OwnerAssignRequest) (*entity.MatchSlot, *errors.AppError)
	OwnerDecide(ctx context.Context, ownerID, slotID uuid.UUID, decision string) (*entity.MatchSlot, *errors.AppError)
	Cancel(ctx context.Context, userID, slotID uuid.UUID) (*entity.MatchSlot, *errors.AppError)
	DeleteSlot(ctx context.Context, ownerID, slotID uuid.UUID) *errors.AppError
	UploadReceipt(ctx context.Context, userID, slotID uuid.UUID, req *dto.ReceiptUploadRequest) (*dto.ReceiptUploadResponse, *errors.AppError)
	GenerateRecurringSlots(ctx context.Context, profile RecurringProfile, targetCount int) (*GenerationReport, *errors.AppError)
}

// SlotService is the booking coordinator: the single entry point for every
// slot state change. It consults the eligibility resolver before a claim,
// lets the conditional repository writes arbitrate races, reads back the
// authoritative row before declaring success, and emits exactly one
// notification per affected party per transition.
type SlotService struct {
	repo       repository.SlotRepositoryInterface
	fieldRepo  fieldrepository.FieldRepositoryInterface
	authRepo   authrepository.AuthRepositoryInterface
	dispatcher notifservice.DispatcherInterface
	presigner  storage.Presigner
	taskClient *asynq.Client
}

func NewSlotService(
	repo repository.SlotRepositoryInterface,
	fieldRepo fieldrepository.FieldRepositoryInterface,
	authRepo authrepository.AuthRepositoryInterface,
	dispatcher notifservice.DispatcherInterface,
	presigner storage.Presigner,
	taskClient *asynq.Client,
) *SlotService {
	return &SlotService{
		repo:       repo,
		fieldRepo:  fieldRepo,
		authRepo:   authRepo,
		dispatcher: dispatcher,
		presigner:  presigner,
		taskClient: taskClient,
	}
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

func (s *SlotService) loadOwnedField(ctx context.Context, ownerID, fieldID uuid.UUID) (*fieldentity.Field, *errors.AppError) {
	field, err := s.fieldRepo.GetByID(ctx, fieldID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load field", err)
	}
	if field == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Field not found", nil)
	}
	if field.OwnerID != ownerID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Field belongs to another owner", nil)
	}
	return field, nil
}

func (s *SlotService) CreateManualSlot(ctx context.Context, ownerID uuid.UUID, req *dto.CreateSlotRequest) (*entity.MatchSlot, *errors.AppError) {
	logger.Info("SlotService:CreateManualSlot:Start", "field_id", req.FieldID, "date", req.Date, "time", req.Time)

	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Date must be YYYY-MM-DD", err)
	}
	if _, err := time.Parse(timeLayout, req.Time); err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Time must be HH:MM", err)
	}

	field, appErr := s.loadOwnedField(ctx, ownerID, req.FieldID)
	if appErr != nil {
		return nil, appErr
	}
	if req.CourtName != "" && !field.HasCourt(req.CourtName) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Unknown court for this field", nil)
	}

	exists, err := s.repo.ExistsAt(ctx, req.FieldID, req.Date, req.Time, req.CourtName)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check slot collision", err)
	}
	if exists {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "A slot already exists at this date, time and court", nil)
	}

	slot := &entity.MatchSlot{
		FieldID:         req.FieldID,
		CourtName:       req.CourtName,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: req.DurationMinutes,
		Sport:           req.Sport,
		MatchType:       entity.MatchTypeAluguel,
		Origin:          entity.OriginManual,
		Price:           req.Price,
		Status:          entity.StatusAvailable,
	}
	if slot.DurationMinutes == 0 {
		slot.DurationMinutes = 60
	}
	if host := req.HostTeam; host != nil {
		slot.MatchType = entity.MatchTypeAmistoso
		slot.HasLocalTeam = true
		name, category, gender, phone := host.Name, host.Category, host.Gender, host.Phone
		slot.HomeTeamName = &name
		slot.HomeTeamCategory = &category
		slot.HomeTeamGender = &gender
		slot.HomeTeamPhone = &phone
		slot.HomeTeamLogoURL = host.LogoURL
		slot.AllowedOpponentCategories = host.AllowedCategories
	}

	if err := s.repo.Create(ctx, slot); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create slot", err)
	}
	return slot, nil
}

// ListAvailable lists claimable future slots. The distance predicate runs
// here, after the query: a slot is dropped only when both the requester's
// origin and the field's coordinates are real and the distance exceeds the
// radius. An unknown origin never filters anything out.
func (s *SlotService) ListAvailable(ctx context.Context, filters dto.ListFilters) ([]entity.AvailableSlot, *errors.AppError) {
	slots, err := s.repo.ListAvailable(ctx, filters)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list slots", err)
	}

	origin := geo.Coordinates{Lat: filters.OriginLat, Lng: filters.OriginLng}
	result := make([]entity.AvailableSlot, 0, len(slots))
	for i := range slots {
		slot := slots[i]
		fieldCoords := geo.Coordinates{Lat: slot.FieldLat, Lng: slot.FieldLng}
		if origin.Valid() && fieldCoords.Valid() {
			d := geo.Distance(origin, fieldCoords)
			slot.DistanceKm = &d
			if filters.MaxDistanceKm > 0 && d > filters.MaxDistanceKm {
				continue
			}
		}
		result = append(result, slot)
	}
	return result, nil
}

func (s *SlotService) GetFieldAgenda(ctx context.Context, ownerID, fieldID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedSlotEntity, *errors.AppError) {
	if _, appErr := s.loadOwnedField(ctx, ownerID, fieldID); appErr != nil {
		return nil, appErr
	}
	page, err := s.repo.ListByFieldID(ctx, fieldID, queryParams)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list field agenda", err)
	}
	return page, nil
}

// SubmitChallenge is the captain's claim on an available slot. Eligibility
// is re-resolved on every attempt; the conditional claim write decides the
// race, and the returned slot is re-read from the database so the caller
// never sees an optimistic state the write did not actually produce.
func (s *SlotService) SubmitChallenge(ctx context.Context, userID, slotID uuid.UUID, req *dto.SubmitChallengeRequest) (*entity.MatchSlot, *errors.AppError) {
	logger.Info("SlotService:SubmitChallenge:Start", "slot_id", slotID, "team_id", req.TeamID, "category", req.Category)

	slot, err := s.repo.GetByID(ctx, slotID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load slot", err)
	}
	if slot == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Slot not found", nil)
	}

	team, err := s.authRepo.GetTeamByID(ctx, req.TeamID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load team", err)
	}
	if team == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Team not found", nil)
	}
	if team.UserID != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Team belongs to another captain", nil)
	}

	eligible, usable := ResolveEligibility(slot, team.Categories)
	if !eligible {
		return nil, errors.NewAppError(errors.ErrIneligible, "None of the team's categories may challenge this slot", nil)
	}
	if !CategoryUsable(usable, req.Category) {
		return nil, errors.NewAppError(errors.ErrIneligible, "Selected category may not challenge this slot", nil)
	}

	booking := entity.BookingSnapshot{
		UserID:       userID,
		TeamName:     team.Name,
		TeamCategory: req.Category,
		TeamGender:   team.Gender,
		TeamPhone:    team.Phone,
		TeamLogoURL:  team.LogoURL,
	}
	rows, err := s.repo.Claim(ctx, slotID, booking, entity.StatusPendingVerification)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to claim slot", err)
	}
	if rows == 0 {
		return nil, errors.NewAppError(errors.ErrAlreadyClaimed, "Slot was claimed by another team", nil)
	}

	updated, err := s.repo.GetByID(ctx, slotID)
	if err != nil || updated == nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to read claimed slot", err)
	}

	if field, ferr := s.fieldRepo.GetByID(ctx, slot.FieldID); ferr == nil && field != nil {
		s.dispatcher.ChallengeSubmitted(ctx, field.OwnerID, notifservice.TransitionContext{
			SlotID:       slotID,
			FieldName:    field.Name,
			Date:         updated.Date,
			Time:         updated.Time,
			AwayTeamName: team.Name,
		})
	} else if ferr != nil {
		logger.Warn("SlotService:SubmitChallenge:NotifyLookup:Error", "error", ferr)
	}

	return updated, nil
}

// OwnerAssign books a slot directly on the owner's behalf, skipping the
// challenge flow. The target status is the owner's choice between
// pending_payment and confirmed.
func (s *SlotService) OwnerAssign(ctx context.Context, ownerID, slotID uuid.UUID, req *dto.OwnerAssignRequest) (*entity.MatchSlot, *errors.AppError) {
	if req.TargetStatus != entity.StatusPendingPayment && req.TargetStatus != entity.StatusConfirmed {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Target status must be pending_payment or confirmed", nil)
	}

	slot, err := s.repo.GetByID(ctx, slotID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load slot", err)
	}
	if slot == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Slot not found", nil)
	}
	if _, appErr := s.loadOwnedField(ctx, ownerID, slot.FieldID); appErr != nil {
		return nil, appErr
	}

	claimant := ownerID
	if req.UserID != nil {
		claimant = *req.UserID
	}
	booking := entity.BookingSnapshot{
		UserID:       claimant,
		TeamName:     req.TeamName,
		TeamCategory: req.TeamCategory,
		TeamGender:   req.TeamGender,
		TeamPhone:    req.TeamPhone,
	}
	rows, err := s.repo.Claim(ctx, slotID, booking, req.TargetStatus)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to assign slot", err)
	}
	if rows == 0 {
		return nil, errors.NewAppError(errors.ErrAlreadyClaimed, "Slot is no longer available", nil)
	}

	updated, err := s.repo.GetByID(ctx, slotID)
	if err != nil || updated == nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to read assigned slot", err)
	}
	return updated, nil
}

// OwnerDecide confirms or rejects a pending claim. The guarded UPDATE is
// authoritative: zero rows means the slot left the pending states between
// the read and the write, and that surfaces as InvalidState.
func (s *SlotService) OwnerDecide(ctx context.Context, ownerID, slotID uuid.UUID, decision string) (*entity.MatchSlot, *errors.AppError) {
	logger.Info("SlotService:OwnerDecide:Start", "slot_id", slotID, "decision", decision)

	var toStatus string
	switch decision {
	case "confirm":
		toStatus = entity.StatusConfirmed
	case "reject":
		toStatus = entity.StatusRejected
	default:
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Decision must be confirm or reject", nil)
	}

	slot, err := s.repo.GetByID(ctx, slotID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load slot", err)
	}
	if slot == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Slot not found", nil)
	}
	field, appErr := s.loadOwnedField(ctx, ownerID, slot.FieldID)
	if appErr != nil {
		return nil, appErr
	}
	if !slot.AwaitingOwnerDecision() {
		return nil, errors.NewAppError(errors.ErrInvalidState, "Slot is not awaiting a decision", nil)
	}

	rows, err := s.repo.Decide(ctx, slotID, toStatus, toStatus == entity.StatusRejected)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to apply decision", err)
	}
	if rows == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidState, "Slot is not awaiting a decision", nil)
	}

	updated, err := s.repo.GetByID(ctx, slotID)
	if err != nil || updated == nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to read decided slot", err)
	}

	if slot.BookedByUserID != nil {
		tc := notifservice.TransitionContext{
			SlotID:    slotID,
			FieldName: field.Name,
			Date:      updated.Date,
			Time:      updated.Time,
		}
		if updated.BookedTeamName != nil {
			tc.AwayTeamName = *updated.BookedTeamName
		}
		if toStatus == entity.StatusConfirmed {
			s.dispatcher.BookingConfirmed(ctx, *slot.BookedByUserID, tc)
		} else {
			s.dispatcher.BookingRejected(ctx, *slot.BookedByUserID, tc)
		}
	}
	return updated, nil
}

// Cancel returns a claimed slot to available. Allowed from any non-available
// state, by either the field owner or the current claimant. Both parties
// are notified.
func (s *SlotService) Cancel(ctx context.Context, userID, slotID uuid.UUID) (*entity.MatchSlot, *errors.AppError) {
	logger.Info("SlotService:Cancel:Start", "slot_id", slotID)

	slot, err := s.repo.GetByID(ctx, slotID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load slot", err)
	}
	if slot == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Slot not found", nil)
	}
	if slot.Status == entity.StatusAvailable {
		return nil, errors.NewAppError(errors.ErrInvalidState, "Slot has no booking to cancel", nil)
	}

	field, err := s.fieldRepo.GetByID(ctx, slot.FieldID)
	if err != nil || field == nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load field", err)
	}
	isOwner := field.OwnerID == userID
	isClaimant := slot.BookedByUserID != nil && *slot.BookedByUserID == userID
	if !isOwner && !isClaimant {
		return nil, errors.NewAppError(errors.ErrForbidden, "Only the owner or the claimant may cancel", nil)
	}

	claimantID := uuid.Nil
	awayName := ""
	if slot.BookedByUserID != nil {
		claimantID = *slot.BookedByUserID
	}
	if slot.BookedTeamName != nil {
		awayName = *slot.BookedTeamName
	}

	rows, err := s.repo.Cancel(ctx, slotID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to cancel booking", err)
	}
	if rows == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidState, "Slot has no booking to cancel", nil)
	}

	updated, err := s.repo.GetByID(ctx, slotID)
	if err != nil || updated == nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to read cancelled slot", err)
	}

	s.dispatcher.BookingCancelled(ctx, field.OwnerID, claimantID, notifservice.TransitionContext{
		SlotID:       slotID,
		FieldName:    field.Name,
		Date:         updated.Date,
		Time:         updated.Time,
		AwayTeamName: awayName,
	})
	return updated, nil
}

func (s *SlotService) DeleteSlot(ctx context.Context, ownerID, slotID uuid.UUID) *errors.AppError {
	slot, err := s.repo.GetByID(ctx, slotID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to load slot", err)
	}
	if slot == nil {
		return errors.NewAppError(errors.ErrNotFound, "Slot not found", nil)
	}
	if _, appErr := s.loadOwnedField(ctx, ownerID, slot.FieldID); appErr != nil {
		return appErr
	}

	rows, err := s.repo.Delete(ctx, slotID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to delete slot", err)
	}
	if rows == 0 {
		return errors.NewAppError(errors.ErrInvalidState, "Only available slots can be deleted", nil)
	}
	return nil
}

// UploadReceipt presigns an upload URL for the claimant's payment receipt,
// records it on the slot and enqueues the external verification task. The
// owner is notified that a receipt awaits review.
func (s *SlotService) UploadReceipt(ctx context.Context, userID, slotID uuid.UUID, req *dto.ReceiptUploadRequest) (*dto.ReceiptUploadResponse, *errors.AppError) {
	slot, err := s.repo.GetByID(ctx, slotID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load slot", err)
	}
	if slot == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Slot not found", nil)
	}
	if slot.BookedByUserID == nil || *slot.BookedByUserID != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Only the claimant may upload a receipt", nil)
	}
	if !slot.AwaitingOwnerDecision() {
		return nil, errors.NewAppError(errors.ErrInvalidState, "Slot is not awaiting payment verification", nil)
	}

	key := "receipts/" + slotID.String() + "/" + utils.GenerateObjectKey()
	uploadURL, err := s.presigner.PresignUpload(ctx, key, req.ContentType)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to presign receipt upload", err)
	}
	receiptURL := s.presigner.ObjectURL(key)

	rows, err := s.repo.SetReceipt(ctx, slotID, receiptURL, time.Now())
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to record receipt", err)
	}
	if rows == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidState, "Slot is not awaiting payment verification", nil)
	}

	if s.taskClient != nil {
		task, terr := tasks.NewReceiptVerifyTask(slotID)
		if terr == nil {
			if _, terr = s.taskClient.EnqueueContext(ctx, task); terr != nil {
				logger.Warn("SlotService:UploadReceipt:Enqueue:Error", "error", terr)
			}
		}
	}

	if field, ferr := s.fieldRepo.GetByID(ctx, slot.FieldID); ferr == nil && field != nil {
		awayName := ""
		if slot.BookedTeamName != nil {
			awayName = *slot.BookedTeamName
		}
		s.dispatcher.ReceiptUploaded(ctx, field.OwnerID, notifservice.TransitionContext{
			SlotID:       slotID,
			FieldName:    field.Name,
			Date:         slot.Date,
			Time:         slot.Time,
			AwayTeamName: awayName,
		})
	}

	return &dto.ReceiptUploadResponse{UploadURL: uploadURL, ReceiptURL: receiptURL}, nil
}
