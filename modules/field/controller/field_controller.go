package controller

import (
	"jogofacil/core/controller"
	"jogofacil/core/errors"
	authcontroller "jogofacil/modules/auth/controller"
	"jogofacil/modules/field/dto"
	"jogofacil/modules/field/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type FieldController struct {
	controller.BaseController
	service service.FieldServiceInterface
}

func NewFieldController(svc service.FieldServiceInterface) *FieldController {
	return &FieldController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

// Create handles POST /private/fields
// @Summary Create a field
// @Tags Field
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.FieldRequest true "Field data"
// @Router /private/fields [post]
func (c *FieldController) Create(ctx echo.Context) error {
	ownerID, err := authcontroller.UserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.FieldRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	field, appErr := c.service.Create(ctx.Request().Context(), ownerID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, field, "Field created")
}

// GetMyFields handles GET /private/fields
func (c *FieldController) GetMyFields(ctx echo.Context) error {
	ownerID, err := authcontroller.UserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	fields, appErr := c.service.GetMyFields(ctx.Request().Context(), ownerID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, fields, "Success")
}

// GetBySlug handles GET /fields/:slug (public)
func (c *FieldController) GetBySlug(ctx echo.Context) error {
	field, appErr := c.service.GetBySlug(ctx.Request().Context(), ctx.Param("slug"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, field, "Success")
}

// Update handles PUT /private/fields/:id
func (c *FieldController) Update(ctx echo.Context) error {
	ownerID, err := authcontroller.UserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	fieldID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid field ID")
	}

	var req dto.FieldRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	field, appErr := c.service.Update(ctx.Request().Context(), ownerID, fieldID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, field, "Field updated")
}

// ImageUploadURL handles POST /private/fields/:id/image-url
func (c *FieldController) ImageUploadURL(ctx echo.Context) error {
	ownerID, err := authcontroller.UserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	fieldID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid field ID")
	}

	contentType := ctx.QueryParam("content_type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	resp, appErr := c.service.ImageUploadURL(ctx.Request().Context(), ownerID, fieldID, contentType)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "Upload URL generated")
}
