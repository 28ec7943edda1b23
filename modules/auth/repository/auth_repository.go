package repository

import (
	"context"
	"database/sql"

	"jogofacil/core/database"
	"jogofacil/core/logger"
	"jogofacil/modules/auth/entity"

	"github.com/google/uuid"
)

// AuthRepository handles user and team persistence.
type AuthRepository struct {
	DB database.IDatabase
}

func NewAuthRepository(db database.IDatabase) *AuthRepository {
	return &AuthRepository{DB: db}
}

// AuthRepositoryInterface defines the contract for identity persistence.
type AuthRepositoryInterface interface {
	CreateUser(ctx context.Context, user *entity.User) error
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	CreateTeam(ctx context.Context, team *entity.Team) error
	GetTeamByID(ctx context.Context, id uuid.UUID) (*entity.Team, error)
	GetTeamsByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Team, error)
	UpdateTeam(ctx context.Context, team *entity.Team) error
	DeleteTeam(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

func (r *AuthRepository) CreateUser(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (name, email, phone, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	row := r.DB.QueryRowContext(ctx, query,
		user.Name, user.Email, user.Phone, user.PasswordHash, user.Role)
	if err := row.Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		logger.Error("AuthRepository:CreateUser:Error", "error", err)
		return err
	}
	return nil
}

func (r *AuthRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT id, name, email, phone, password_hash, role, created_at, updated_at
		FROM users WHERE email = $1
	`
	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByEmail:Error", "error", err)
		return nil, err
	}
	return &user, nil
}

func (r *AuthRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `
		SELECT id, name, email, phone, password_hash, role, created_at, updated_at
		FROM users WHERE id = $1
	`
	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByID:Error", "error", err)
		return nil, err
	}
	return &user, nil
}

func (r *AuthRepository) CreateTeam(ctx context.Context, team *entity.Team) error {
	query := `
		INSERT INTO teams (user_id, name, categories, gender, phone, logo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	row := r.DB.QueryRowContext(ctx, query,
		team.UserID, team.Name, team.Categories, team.Gender, team.Phone, team.LogoURL)
	if err := row.Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt); err != nil {
		logger.Error("AuthRepository:CreateTeam:Error", "error", err)
		return err
	}
	return nil
}

func (r *AuthRepository) GetTeamByID(ctx context.Context, id uuid.UUID) (*entity.Team, error) {
	query := `
		SELECT id, user_id, name, categories, gender, phone, logo_url, created_at, updated_at
		FROM teams WHERE id = $1
	`
	var team entity.Team
	err := r.DB.GetContext(ctx, &team, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:GetTeamByID:Error", "error", err)
		return nil, err
	}
	return &team, nil
}

func (r *AuthRepository) GetTeamsByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Team, error) {
	query := `
		SELECT id, user_id, name, categories, gender, phone, logo_url, created_at, updated_at
		FROM teams WHERE user_id = $1
		ORDER BY created_at
	`
	var teams []entity.Team
	err := r.DB.SelectContext(ctx, &teams, query, userID)
	if err != nil {
		logger.Error("AuthRepository:GetTeamsByUserID:Error", "error", err)
		return nil, err
	}
	return teams, nil
}

func (r *AuthRepository) UpdateTeam(ctx context.Context, team *entity.Team) error {
	query := `
		UPDATE teams
		SET name = $2, categories = $3, gender = $4, phone = $5, logo_url = $6, updated_at = NOW()
		WHERE id = $1 AND user_id = $7
	`
	err := r.DB.ExecContext(ctx, query,
		team.ID, team.Name, team.Categories, team.Gender, team.Phone, team.LogoURL, team.UserID)
	if err != nil {
		logger.Error("AuthRepository:UpdateTeam:Error", "error", err)
		return err
	}
	return nil
}

func (r *AuthRepository) DeleteTeam(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	query := `DELETE FROM teams WHERE id = $1 AND user_id = $2`
	err := r.DB.ExecContext(ctx, query, id, userID)
	if err != nil {
		logger.Error("AuthRepository:DeleteTeam:Error", "error", err)
		return err
	}
	return nil
}
