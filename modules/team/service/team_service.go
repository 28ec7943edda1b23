package service

import (
	"context"

	"jogofacil/core/errors"
	"jogofacil/core/logger"
	"jogofacil/core/utils"
	fieldentity "jogofacil/modules/field/entity"
	fieldrepository "jogofacil/modules/field/repository"
	notifservice "jogofacil/modules/notification/service"
	slotservice "jogofacil/modules/slot/service"
	"jogofacil/modules/team/dto"
	"jogofacil/modules/team/entity"
	"jogofacil/modules/team/repository"

	"github.com/google/uuid"
)

type TeamServiceInterface interface {
	Create(ctx context.Context, ownerID uuid.UUID, req *dto.RegisteredTeamRequest) (*entity.RegisteredTeam, *errors.AppError)
	GetByFieldID(ctx context.Context, ownerID, fieldID uuid.UUID) ([]entity.RegisteredTeam, *errors.AppError)
	Update(ctx context.Context, ownerID, teamID uuid.UUID, req *dto.RegisteredTeamRequest) (*entity.RegisteredTeam, *errors.AppError)
	Delete(ctx context.Context, ownerID, teamID uuid.UUID) *errors.AppError
	AcceptInvite(ctx context.Context, userID uuid.UUID, code string) (*entity.RegisteredTeam, *errors.AppError)
	GenerateSlots(ctx context.Context, ownerID, teamID uuid.UUID, targetCount int) (*slotservice.GenerationReport, *errors.AppError)
}

// TeamService manages mensalista standing-reservation profiles. Profiles
// start pending with a short invite code; a captain accepting the code
// activates the profile, and the owner can then project it onto the
// calendar through the recurring generator.
type TeamService struct {
	repo       repository.TeamRepositoryInterface
	fieldRepo  fieldrepository.FieldRepositoryInterface
	slotSvc    slotservice.SlotServiceInterface
	dispatcher notifservice.DispatcherInterface
}

func NewTeamService(
	repo repository.TeamRepositoryInterface,
	fieldRepo fieldrepository.FieldRepositoryInterface,
	slotSvc slotservice.SlotServiceInterface,
	dispatcher notifservice.DispatcherInterface,
) *TeamService {
	return &TeamService{
		repo:       repo,
		fieldRepo:  fieldRepo,
		slotSvc:    slotSvc,
		dispatcher: dispatcher,
	}
}

func (s *TeamService) loadOwnedField(ctx context.Context, ownerID, fieldID uuid.UUID) (*fieldentity.Field, *errors.AppError) {
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

func (s *TeamService) Create(ctx context.Context, ownerID uuid.UUID, req *dto.RegisteredTeamRequest) (*entity.RegisteredTeam, *errors.AppError) {
	logger.Info("TeamService:Create:Start", "field_id", req.FieldID, "name", req.Name)

	if req.FixedDay < 0 || req.FixedDay > 6 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Fixed day must be between 0 (Sunday) and 6 (Saturday)", nil)
	}

	field, appErr := s.loadOwnedField(ctx, ownerID, req.FieldID)
	if appErr != nil {
		return nil, appErr
	}
	if req.CourtName != "" && !field.HasCourt(req.CourtName) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Unknown court for this field", nil)
	}

	team := &entity.RegisteredTeam{
		FieldID:    req.FieldID,
		Name:       req.Name,
		Phone:      req.Phone,
		Categories: req.Categories,
		Gender:     req.Gender,
		Sport:      req.Sport,
		FixedDay:   req.FixedDay,
		FixedTime:  req.FixedTime,
		CourtName:  req.CourtName,
		LogoURL:    req.LogoURL,
		Status:     entity.StatusPending,
		InviteCode: utils.GenerateInviteCode(),
	}
	if err := s.repo.Create(ctx, team); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create standing team", err)
	}
	return team, nil
}

func (s *TeamService) GetByFieldID(ctx context.Context, ownerID, fieldID uuid.UUID) ([]entity.RegisteredTeam, *errors.AppError) {
	if _, appErr := s.loadOwnedField(ctx, ownerID, fieldID); appErr != nil {
		return nil, appErr
	}
	teams, err := s.repo.GetByFieldID(ctx, fieldID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list standing teams", err)
	}
	return teams, nil
}

func (s *TeamService) loadOwnedTeam(ctx context.Context, ownerID, teamID uuid.UUID) (*entity.RegisteredTeam, *fieldentity.Field, *errors.AppError) {
	team, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load standing team", err)
	}
	if team == nil {
		return nil, nil, errors.NewAppError(errors.ErrNotFound, "Standing team not found", nil)
	}
	field, appErr := s.loadOwnedField(ctx, ownerID, team.FieldID)
	if appErr != nil {
		return nil, nil, appErr
	}
	return team, field, nil
}

func (s *TeamService) Update(ctx context.Context, ownerID, teamID uuid.UUID, req *dto.RegisteredTeamRequest) (*entity.RegisteredTeam, *errors.AppError) {
	if req.FixedDay < 0 || req.FixedDay > 6 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Fixed day must be between 0 (Sunday) and 6 (Saturday)", nil)
	}

	team, field, appErr := s.loadOwnedTeam(ctx, ownerID, teamID)
	if appErr != nil {
		return nil, appErr
	}
	if req.CourtName != "" && !field.HasCourt(req.CourtName) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Unknown court for this field", nil)
	}

	team.Name = req.Name
	team.Phone = req.Phone
	team.Categories = req.Categories
	team.Gender = req.Gender
	team.Sport = req.Sport
	team.FixedDay = req.FixedDay
	team.FixedTime = req.FixedTime
	team.CourtName = req.CourtName
	team.LogoURL = req.LogoURL
	if err := s.repo.Update(ctx, team); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to update standing team", err)
	}
	return team, nil
}

func (s *TeamService) Delete(ctx context.Context, ownerID, teamID uuid.UUID) *errors.AppError {
	if _, _, appErr := s.loadOwnedTeam(ctx, ownerID, teamID); appErr != nil {
		return appErr
	}
	if err := s.repo.Delete(ctx, teamID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to delete standing team", err)
	}
	return nil
}

// AcceptInvite activates a pending profile using its invite code. The
// activation is a conditional write; a code that was already used surfaces
// as InvalidState, not success.
func (s *TeamService) AcceptInvite(ctx context.Context, userID uuid.UUID, code string) (*entity.RegisteredTeam, *errors.AppError) {
	logger.Info("TeamService:AcceptInvite:Start", "code", code)

	team, err := s.repo.GetByInviteCode(ctx, code)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to look up invite", err)
	}
	if team == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Invite code not found", nil)
	}

	rows, err := s.repo.Activate(ctx, team.ID, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to accept invite", err)
	}
	if rows == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidState, "Invite was already accepted", nil)
	}

	updated, err := s.repo.GetByID(ctx, team.ID)
	if err != nil || updated == nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to read activated team", err)
	}

	if field, ferr := s.fieldRepo.GetByID(ctx, team.FieldID); ferr == nil && field != nil {
		s.dispatcher.StandingTeamJoined(ctx, field.OwnerID, updated.Name, field.Name)
	}
	return updated, nil
}

// GenerateSlots projects an active profile's weekday and time onto the
// upcoming calendar through the recurring generator. Generated slot price
// defaults to the field's hourly rate.
func (s *TeamService) GenerateSlots(ctx context.Context, ownerID, teamID uuid.UUID, targetCount int) (*slotservice.GenerationReport, *errors.AppError) {
	team, field, appErr := s.loadOwnedTeam(ctx, ownerID, teamID)
	if appErr != nil {
		return nil, appErr
	}
	if team.Status != entity.StatusActive {
		return nil, errors.NewAppError(errors.ErrInvalidState, "Standing team is not active yet", nil)
	}

	profile := slotservice.RecurringProfile{
		RegisteredTeamID: team.ID,
		FieldID:          team.FieldID,
		TeamName:         team.Name,
		Category:         team.PrimaryCategory(),
		Gender:           team.Gender,
		Phone:            team.Phone,
		LogoURL:          team.LogoURL,
		Sport:            team.Sport,
		FixedDay:         team.FixedDay,
		FixedTime:        team.FixedTime,
		CourtName:        team.CourtName,
		Price:            field.HourlyRate,
	}
	return s.slotSvc.GenerateRecurringSlots(ctx, profile, targetCount)
}
