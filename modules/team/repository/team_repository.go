package repository

import (
	"context"
	"database/sql"

	"jogofacil/core/database"
	"jogofacil/core/logger"
	"jogofacil/modules/team/entity"

	"github.com/google/uuid"
)

type TeamRepository struct {
	DB database.IDatabase
}

func NewTeamRepository(db database.IDatabase) *TeamRepository {
	return &TeamRepository{DB: db}
}

type TeamRepositoryInterface interface {
	Create(ctx context.Context, team *entity.RegisteredTeam) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.RegisteredTeam, error)
	GetByFieldID(ctx context.Context, fieldID uuid.UUID) ([]entity.RegisteredTeam, error)
	GetByInviteCode(ctx context.Context, code string) (*entity.RegisteredTeam, error)
	Update(ctx context.Context, team *entity.RegisteredTeam) error
	Activate(ctx context.Context, id uuid.UUID, captainUserID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

const teamColumns = `id, field_id, name, captain_user_id, phone, categories, gender,
	sport, fixed_day, fixed_time, court_name, logo_url, status, invite_code,
	created_at, updated_at`

func (r *TeamRepository) Create(ctx context.Context, team *entity.RegisteredTeam) error {
	query := `
		INSERT INTO registered_teams (field_id, name, captain_user_id, phone, categories,
			gender, sport, fixed_day, fixed_time, court_name, logo_url, status, invite_code,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	row := r.DB.QueryRowContext(ctx, query,
		team.FieldID, team.Name, team.CaptainUserID, team.Phone, team.Categories,
		team.Gender, team.Sport, team.FixedDay, team.FixedTime, team.CourtName,
		team.LogoURL, team.Status, team.InviteCode)
	if err := row.Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt); err != nil {
		logger.Error("TeamRepository:Create:Error", "error", err)
		return err
	}
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.RegisteredTeam, error) {
	query := `SELECT ` + teamColumns + ` FROM registered_teams WHERE id = $1`
	var team entity.RegisteredTeam
	err := r.DB.GetContext(ctx, &team, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("TeamRepository:GetByID:Error", "error", err)
		return nil, err
	}
	return &team, nil
}

func (r *TeamRepository) GetByFieldID(ctx context.Context, fieldID uuid.UUID) ([]entity.RegisteredTeam, error) {
	query := `SELECT ` + teamColumns + ` FROM registered_teams WHERE field_id = $1 ORDER BY created_at`
	var teams []entity.RegisteredTeam
	if err := r.DB.SelectContext(ctx, &teams, query, fieldID); err != nil {
		logger.Error("TeamRepository:GetByFieldID:Error", "error", err)
		return nil, err
	}
	return teams, nil
}

func (r *TeamRepository) GetByInviteCode(ctx context.Context, code string) (*entity.RegisteredTeam, error) {
	query := `SELECT ` + teamColumns + ` FROM registered_teams WHERE invite_code = $1`
	var team entity.RegisteredTeam
	err := r.DB.GetContext(ctx, &team, query, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("TeamRepository:GetByInviteCode:Error", "error", err)
		return nil, err
	}
	return &team, nil
}

// Update never touches field_id, status or invite_code; those move through
// their own paths.
func (r *TeamRepository) Update(ctx context.Context, team *entity.RegisteredTeam) error {
	query := `
		UPDATE registered_teams
		SET name = $2, phone = $3, categories = $4, gender = $5, sport = $6,
		    fixed_day = $7, fixed_time = $8, court_name = $9, logo_url = $10,
		    updated_at = NOW()
		WHERE id = $1
	`
	err := r.DB.ExecContext(ctx, query,
		team.ID, team.Name, team.Phone, team.Categories, team.Gender, team.Sport,
		team.FixedDay, team.FixedTime, team.CourtName, team.LogoURL)
	if err != nil {
		logger.Error("TeamRepository:Update:Error", "error", err)
		return err
	}
	return nil
}

// Activate flips a pending profile to active and binds the accepting
// captain. Conditional on status so a second accept of the same code is a
// no-op the service can detect.
func (r *TeamRepository) Activate(ctx context.Context, id uuid.UUID, captainUserID uuid.UUID) (int64, error) {
	query := `
		UPDATE registered_teams
		SET status = 'active', captain_user_id = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`
	rows, err := r.DB.ExecRowsContext(ctx, query, id, captainUserID)
	if err != nil {
		logger.Error("TeamRepository:Activate:Error", "error", err, "team_id", id)
		return 0, err
	}
	return rows, nil
}

func (r *TeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM registered_teams WHERE id = $1`
	if err := r.DB.ExecContext(ctx, query, id); err != nil {
		logger.Error("TeamRepository:Delete:Error", "error", err)
		return err
	}
	return nil
}
