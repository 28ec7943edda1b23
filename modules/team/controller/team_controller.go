package controller

import (
	"jogofacil/core/controller"
	"jogofacil/core/errors"
	authcontroller "jogofacil/modules/auth/controller"
	"jogofacil/modules/team/dto"
	"jogofacil/modules/team/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type TeamController struct {
	controller.BaseController
	service service.TeamServiceInterface
}

func NewTeamController(svc service.TeamServiceInterface) *TeamController {
	return &TeamController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

// Create handles POST /private/registered-teams
// @Summary Register a mensalista profile on a field
// @Tags RegisteredTeam
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.RegisteredTeamRequest true "Standing team data"
// @Router /private/registered-teams [post]
func (c *TeamController) Create(ctx echo.Context) error {
	ownerID, err := authcontroller.UserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.RegisteredTeamRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	team, appErr := c.service.Create(ctx.Request().Context(), ownerID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, team, "Standing team registered")
}

// ListByField handles GET /private/fields/:id/registered-teams
func (c *TeamController) ListByField(ctx echo.Context) error {
	ownerID, err := authcontroller.UserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	fieldID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid field id")
	}

	teams, appErr := c.service.GetByFieldID(ctx.Request().Context(), ownerID, fieldID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, teams, "Standing teams retrieved")
}

// Update handles PUT /private/registered-teams/:id
func (c *TeamController) Update(ctx echo.Context) error {
	ownerID, err := authcontroller.UserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	teamID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid team id")
	}

	var req dto.RegisteredTeamRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	team, appErr := c.service.Update(ctx.Request().Context(), ownerID, teamID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, team, "Standing team updated")
}

// Delete handles DELETE /private/registered-teams/:id
func (c *TeamController) Delete(ctx echo.Context) error {
	ownerID, err := authcontroller.UserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	teamID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid team id")
	}

	if appErr := c.service.Delete(ctx.Request().Context(), ownerID, teamID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Standing team deleted")
}

// AcceptInvite handles POST /private/registered-teams/accept-invite
func (c *TeamController) AcceptInvite(ctx echo.Context) error {
	userID, err := authcontroller.UserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.AcceptInviteRequest
	if err := ctx.Bind(&req); err != nil || req.Code == "" {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	team, appErr := c.service.AcceptInvite(ctx.Request().Context(), userID, req.Code)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, team, "Invite accepted")
}

// GenerateSlots handles POST /private/registered-teams/:id/generate-slots
// @Summary Generate upcoming standing slots for a mensalista
// @Tags RegisteredTeam
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Registered team id"
// @Param request body dto.GenerateSlotsRequest false "Target count"
// @Router /private/registered-teams/{id}/generate-slots [post]
func (c *TeamController) GenerateSlots(ctx echo.Context) error {
	ownerID, err := authcontroller.UserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	teamID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid team id")
	}

	var req dto.GenerateSlotsRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	report, appErr := c.service.GenerateSlots(ctx.Request().Context(), ownerID, teamID, req.TargetCount)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, report, "Standing slots generated")
}
