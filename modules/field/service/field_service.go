package service

import (
	"context"
	"fmt"

	"jogofacil/core/errors"
	"jogofacil/core/logger"
	"jogofacil/core/storage"
	"jogofacil/core/utils"
	"jogofacil/modules/field/dto"
	"jogofacil/modules/field/entity"
	"jogofacil/modules/field/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type FieldServiceInterface interface {
	Create(ctx context.Context, ownerID uuid.UUID, req *dto.FieldRequest) (*entity.Field, *errors.AppError)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Field, *errors.AppError)
	GetBySlug(ctx context.Context, fieldSlug string) (*entity.Field, *errors.AppError)
	GetMyFields(ctx context.Context, ownerID uuid.UUID) ([]entity.Field, *errors.AppError)
	Update(ctx context.Context, ownerID uuid.UUID, fieldID uuid.UUID, req *dto.FieldRequest) (*entity.Field, *errors.AppError)
	ImageUploadURL(ctx context.Context, ownerID uuid.UUID, fieldID uuid.UUID, contentType string) (*dto.UploadURLResponse, *errors.AppError)
}

type fieldService struct {
	repo      repository.FieldRepositoryInterface
	presigner storage.Presigner
}

func NewFieldService(repo repository.FieldRepositoryInterface, presigner storage.Presigner) FieldServiceInterface {
	return &fieldService{repo: repo, presigner: presigner}
}

func (s *fieldService) Create(ctx context.Context, ownerID uuid.UUID, req *dto.FieldRequest) (*entity.Field, *errors.AppError) {
	logger.Info("FieldService:Create:Start", "owner_id", ownerID, "name", req.Name)

	if req.Name == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Field name is required", nil)
	}
	if len(req.Courts) == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "At least one court is required", nil)
	}

	field := &entity.Field{
		OwnerID:            ownerID,
		Name:               req.Name,
		Slug:               slug.Make(req.Name),
		Address:            req.Address,
		Lat:                req.Lat,
		Lng:                req.Lng,
		HourlyRate:         req.HourlyRate,
		CancellationFeePct: req.CancellationFeePct,
		PixKey:             req.PixKey,
		PixName:            req.PixName,
		PixBank:            req.PixBank,
		Courts:             req.Courts,
		Phone:              req.Phone,
	}

	if err := s.repo.Create(ctx, field); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create field", err)
	}

	logger.Info("FieldService:Create:Success", "field_id", field.ID, "slug", field.Slug)
	return field, nil
}

func (s *fieldService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Field, *errors.AppError) {
	field, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load field", err)
	}
	if field == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Field not found", nil)
	}
	return field, nil
}

func (s *fieldService) GetBySlug(ctx context.Context, fieldSlug string) (*entity.Field, *errors.AppError) {
	field, err := s.repo.GetBySlug(ctx, fieldSlug)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load field", err)
	}
	if field == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Field not found", nil)
	}
	return field, nil
}

func (s *fieldService) GetMyFields(ctx context.Context, ownerID uuid.UUID) ([]entity.Field, *errors.AppError) {
	fields, err := s.repo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load fields", err)
	}
	return fields, nil
}

func (s *fieldService) Update(ctx context.Context, ownerID uuid.UUID, fieldID uuid.UUID, req *dto.FieldRequest) (*entity.Field, *errors.AppError) {
	field, appErr := s.GetByID(ctx, fieldID)
	if appErr != nil {
		return nil, appErr
	}
	if field.OwnerID != ownerID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Only the owner may edit a field", nil)
	}

	if req.Name != "" {
		field.Name = req.Name
		field.Slug = slug.Make(req.Name)
	}
	if req.Address != "" {
		field.Address = req.Address
	}
	if req.Lat != 0 || req.Lng != 0 {
		field.Lat = req.Lat
		field.Lng = req.Lng
	}
	if req.HourlyRate > 0 {
		field.HourlyRate = req.HourlyRate
	}
	if req.CancellationFeePct > 0 {
		field.CancellationFeePct = req.CancellationFeePct
	}
	if req.PixKey != "" {
		field.PixKey = req.PixKey
	}
	if req.PixName != "" {
		field.PixName = req.PixName
	}
	if req.PixBank != "" {
		field.PixBank = req.PixBank
	}
	if len(req.Courts) > 0 {
		field.Courts = req.Courts
	}
	if req.Phone != "" {
		field.Phone = req.Phone
	}

	if err := s.repo.Update(ctx, field); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to update field", err)
	}
	return field, nil
}

func (s *fieldService) ImageUploadURL(ctx context.Context, ownerID uuid.UUID, fieldID uuid.UUID, contentType string) (*dto.UploadURLResponse, *errors.AppError) {
	field, appErr := s.GetByID(ctx, fieldID)
	if appErr != nil {
		return nil, appErr
	}
	if field.OwnerID != ownerID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Only the owner may upload a field image", nil)
	}

	key := fmt.Sprintf("fields/%s/%s", fieldID, utils.GenerateObjectKey())
	uploadURL, err := s.presigner.PresignUpload(ctx, key, contentType)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to presign upload", err)
	}

	publicURL := s.presigner.ObjectURL(key)
	field.ImageURL = &publicURL
	if err := s.repo.Update(ctx, field); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to store image reference", err)
	}

	return &dto.UploadURLResponse{UploadURL: uploadURL, PublicURL: publicURL}, nil
}
