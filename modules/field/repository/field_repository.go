package repository

import (
	"context"
	"database/sql"

	"jogofacil/core/database"
	"jogofacil/core/logger"
	"jogofacil/modules/field/entity"

	"github.com/google/uuid"
)

type FieldRepository struct {
	DB database.IDatabase
}

func NewFieldRepository(db database.IDatabase) *FieldRepository {
	return &FieldRepository{DB: db}
}

type FieldRepositoryInterface interface {
	Create(ctx context.Context, field *entity.Field) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Field, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Field, error)
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]entity.Field, error)
	Update(ctx context.Context, field *entity.Field) error
}

const fieldColumns = `id, owner_id, name, slug, address, lat, lng, hourly_rate,
	cancellation_fee_pct, pix_key, pix_name, pix_bank, courts, phone, image_url,
	created_at, updated_at`

func (r *FieldRepository) Create(ctx context.Context, field *entity.Field) error {
	query := `
		INSERT INTO fields (owner_id, name, slug, address, lat, lng, hourly_rate,
			cancellation_fee_pct, pix_key, pix_name, pix_bank, courts, phone, image_url,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	row := r.DB.QueryRowContext(ctx, query,
		field.OwnerID, field.Name, field.Slug, field.Address, field.Lat, field.Lng,
		field.HourlyRate, field.CancellationFeePct, field.PixKey, field.PixName,
		field.PixBank, field.Courts, field.Phone, field.ImageURL)
	if err := row.Scan(&field.ID, &field.CreatedAt, &field.UpdatedAt); err != nil {
		logger.Error("FieldRepository:Create:Error", "error", err)
		return err
	}
	return nil
}

func (r *FieldRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Field, error) {
	query := `SELECT ` + fieldColumns + ` FROM fields WHERE id = $1`
	var field entity.Field
	err := r.DB.GetContext(ctx, &field, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("FieldRepository:GetByID:Error", "error", err)
		return nil, err
	}
	return &field, nil
}

func (r *FieldRepository) GetBySlug(ctx context.Context, slug string) (*entity.Field, error) {
	query := `SELECT ` + fieldColumns + ` FROM fields WHERE slug = $1`
	var field entity.Field
	err := r.DB.GetContext(ctx, &field, query, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("FieldRepository:GetBySlug:Error", "error", err)
		return nil, err
	}
	return &field, nil
}

func (r *FieldRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]entity.Field, error) {
	query := `SELECT ` + fieldColumns + ` FROM fields WHERE owner_id = $1 ORDER BY created_at`
	var fields []entity.Field
	err := r.DB.SelectContext(ctx, &fields, query, ownerID)
	if err != nil {
		logger.Error("FieldRepository:GetByOwnerID:Error", "error", err)
		return nil, err
	}
	return fields, nil
}

// Update never touches owner_id: ownership is immutable after creation.
func (r *FieldRepository) Update(ctx context.Context, field *entity.Field) error {
	query := `
		UPDATE fields
		SET name = $2, slug = $3, address = $4, lat = $5, lng = $6, hourly_rate = $7,
		    cancellation_fee_pct = $8, pix_key = $9, pix_name = $10, pix_bank = $11,
		    courts = $12, phone = $13, image_url = $14, updated_at = NOW()
		WHERE id = $1
	`
	err := r.DB.ExecContext(ctx, query,
		field.ID, field.Name, field.Slug, field.Address, field.Lat, field.Lng,
		field.HourlyRate, field.CancellationFeePct, field.PixKey, field.PixName,
		field.PixBank, field.Courts, field.Phone, field.ImageURL)
	if err != nil {
		logger.Error("FieldRepository:Update:Error", "error", err)
		return err
	}
	return nil
}
