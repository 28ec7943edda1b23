package service

import (
	"context"
	"fmt"
	"time"

	"jogofacil/core/cache"
	"jogofacil/core/constants"
	"jogofacil/core/errors"
	"jogofacil/core/logger"
	"jogofacil/core/utils"
	"jogofacil/modules/auth/dto"
	"jogofacil/modules/auth/entity"
	"jogofacil/modules/auth/repository"

	"github.com/google/uuid"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, *errors.AppError)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, *errors.AppError)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, *errors.AppError)

	GetMyTeams(ctx context.Context, userID uuid.UUID) ([]entity.Team, *errors.AppError)
	GetTeam(ctx context.Context, teamID uuid.UUID) (*entity.Team, *errors.AppError)
	CreateTeam(ctx context.Context, userID uuid.UUID, req *dto.TeamRequest) (*entity.Team, *errors.AppError)
	UpdateTeam(ctx context.Context, userID uuid.UUID, teamID uuid.UUID, req *dto.TeamRequest) (*entity.Team, *errors.AppError)
	DeleteTeam(ctx context.Context, userID uuid.UUID, teamID uuid.UUID) *errors.AppError
}

type authService struct {
	repo  repository.AuthRepositoryInterface
	cache cache.Cache
}

func NewAuthService(repo repository.AuthRepositoryInterface, cache cache.Cache) AuthServiceInterface {
	return &authService{repo: repo, cache: cache}
}

func refreshKey(token string) string {
	return "refresh:" + token
}

func (s *authService) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenResponse, *errors.AppError) {
	access, err := utils.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		logger.Error("AuthService:IssueTokens:Access:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to issue token", err)
	}

	refresh := utils.GenerateObjectKey()
	ttl := time.Duration(constants.RefreshTokenTTLHours) * time.Hour
	if err := s.cache.Set(ctx, refreshKey(refresh), user.ID.String(), ttl); err != nil {
		logger.Error("AuthService:IssueTokens:Refresh:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to store refresh token", err)
	}

	return &dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		UserID:       user.ID,
		Role:         user.Role,
	}, nil
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, *errors.AppError) {
	logger.Info("AuthService:Register:Start", "email", req.Email)

	if req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Name, email and password are required", nil)
	}

	role := req.Role
	switch role {
	case entity.RoleOwner, entity.RoleCaptain:
	case "":
		role = entity.RoleCaptain
	default:
		return nil, errors.NewAppError(errors.ErrInvalidInput, fmt.Sprintf("Unknown role %q", req.Role), nil)
	}

	existing, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check existing user", err)
	}
	if existing != nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "Email already registered", nil)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to hash password", err)
	}

	user := &entity.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create user", err)
	}

	logger.Info("AuthService:Register:Success", "user_id", user.ID)
	return s.issueTokens(ctx, user)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, *errors.AppError) {
	logger.Info("AuthService:Login:Start", "email", req.Email)

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load user", err)
	}
	if user == nil || !utils.CheckPassword(user.PasswordHash, req.Password) {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid email or password", nil)
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, *errors.AppError) {
	userIDStr, err := s.cache.Get(ctx, refreshKey(refreshToken))
	if err != nil {
		if err == cache.ErrCacheMiss {
			return nil, errors.NewAppError(errors.ErrUnauthorized, "Refresh token expired or unknown", nil)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to read refresh token", err)
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Corrupt refresh token entry", err)
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil || user == nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "User no longer exists", err)
	}

	// Rotate: old token is single use.
	_ = s.cache.Delete(ctx, refreshKey(refreshToken))

	return s.issueTokens(ctx, user)
}

func (s *authService) GetMyTeams(ctx context.Context, userID uuid.UUID) ([]entity.Team, *errors.AppError) {
	teams, err := s.repo.GetTeamsByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load teams", err)
	}
	return teams, nil
}

func (s *authService) GetTeam(ctx context.Context, teamID uuid.UUID) (*entity.Team, *errors.AppError) {
	team, err := s.repo.GetTeamByID(ctx, teamID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load team", err)
	}
	if team == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Team not found", nil)
	}
	return team, nil
}

func (s *authService) CreateTeam(ctx context.Context, userID uuid.UUID, req *dto.TeamRequest) (*entity.Team, *errors.AppError) {
	if req.Name == "" || len(req.Categories) == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Team name and at least one category are required", nil)
	}

	team := &entity.Team{
		UserID:     userID,
		Name:       req.Name,
		Categories: req.Categories,
		Gender:     req.Gender,
		Phone:      req.Phone,
	}
	if req.LogoURL != "" {
		team.LogoURL = &req.LogoURL
	}

	if err := s.repo.CreateTeam(ctx, team); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create team", err)
	}
	return team, nil
}

func (s *authService) UpdateTeam(ctx context.Context, userID uuid.UUID, teamID uuid.UUID, req *dto.TeamRequest) (*entity.Team, *errors.AppError) {
	team, err := s.repo.GetTeamByID(ctx, teamID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load team", err)
	}
	if team == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Team not found", nil)
	}
	if team.UserID != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Not your team", nil)
	}

	if req.Name != "" {
		team.Name = req.Name
	}
	if len(req.Categories) > 0 {
		team.Categories = req.Categories
	}
	if req.Gender != "" {
		team.Gender = req.Gender
	}
	if req.Phone != "" {
		team.Phone = req.Phone
	}
	if req.LogoURL != "" {
		team.LogoURL = &req.LogoURL
	}

	if err := s.repo.UpdateTeam(ctx, team); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to update team", err)
	}
	return team, nil
}

func (s *authService) DeleteTeam(ctx context.Context, userID uuid.UUID, teamID uuid.UUID) *errors.AppError {
	if err := s.repo.DeleteTeam(ctx, teamID, userID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to delete team", err)
	}
	return nil
}
