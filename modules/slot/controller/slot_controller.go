package controller

import (
	"strconv"

	"jogofacil/core/controller"
	"jogofacil/core/errors"
	"jogofacil/core/params"
	authcontroller "jogofacil/modules/auth/controller"
	"jogofacil/modules/slot/dto"
	"jogofacil/modules/slot/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type SlotController struct {
	controller.BaseController
	service service.SlotServiceInterface
}

func NewSlotController(svc service.SlotServiceInterface) *SlotController {
	return &SlotController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

func slotIDParam(ctx echo.Context) (uuid.UUID, error) {
	return uuid.Parse(ctx.Param("id"))
}

// ListAvailable handles GET /slots
// @Summary Explore available slots
// @Tags Slot
// @Produce json
// @Param sport query string false "Sport"
// @Param category query string false "Team category"
// @Param gender query string false "Gender"
// @Param max_distance_km query number false "Max distance in km"
// @Param lat query number false "Requester latitude"
// @Param lng query number false "Requester longitude"
// @Router /slots [get]
func (c *SlotController) ListAvailable(ctx echo.Context) error {
	filters := dto.ListFilters{
		Sport:    ctx.QueryParam("sport"),
		Category: ctx.QueryParam("category"),
		Gender:   ctx.QueryParam("gender"),
	}
	if v, err := strconv.ParseFloat(ctx.QueryParam("max_distance_km"), 64); err == nil {
		filters.MaxDistanceKm = v
	}
	if v, err := strconv.ParseFloat(ctx.QueryParam("lat"), 64); err == nil {
		filters.OriginLat = v
	}
	if v, err := strconv.ParseFloat(ctx.QueryParam("lng"), 64); err == nil {
		filters.OriginLng = v
	}

	slots, appErr := c.service.ListAvailable(ctx.Request().Context(), filters)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, slots, "Available slots retrieved")
}

// Create handles POST /private/slots
func (c *SlotController) Create(ctx echo.Context) error {
	ownerID, err := authcontroller.UserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateSlotRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	slot, appErr := c.service.CreateManualSlot(ctx.Request().Context(), ownerID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, slot, "Slot created")
}

// FieldAgenda handles GET /private/fields/:id/agenda
func (c *SlotController) FieldAgenda(ctx echo.Context) error {
	ownerID, err := authcontroller.UserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	fieldID, err := slotIDParam(ctx)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid field id")
	}

	queryParams := params.NewQueryParams(ctx)
	page, appErr := c.service.GetFieldAgenda(ctx.Request().Context(), ownerID, fieldID, *queryParams)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, page, "Field agenda retrieved")
}

// SubmitChallenge handles POST /private/slots/:id/challenge
// @Summary Challenge or rent an available slot
// @Tags Slot
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Slot id"
// @Param request body dto.SubmitChallengeRequest true "Team and category"
// @Router /private/slots/{id}/challenge [post]
func (c *SlotController) SubmitChallenge(ctx echo.Context) error {
	userID, err := authcontroller.UserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	slotID, err := slotIDParam(ctx)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid slot id")
	}

	var req dto.SubmitChallengeRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	slot, appErr := c.service.SubmitChallenge(ctx.Request().Context(), userID, slotID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, slot, "Challenge submitted")
}

// Assign handles POST /private/slots/:id/assign
func (c *SlotController) Assign(ctx echo.Context) error {
	ownerID, err := authcontroller.UserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	slotID, err := slotIDParam(ctx)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid slot id")
	}

	var req dto.OwnerAssignRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	slot, appErr := c.service.OwnerAssign(ctx.Request().Context(), ownerID, slotID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, slot, "Slot assigned")
}

// Decide handles PUT /private/slots/:id/decision
func (c *SlotController) Decide(ctx echo.Context) error {
	ownerID, err := authcontroller.UserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	slotID, err := slotIDParam(ctx)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid slot id")
	}

	var req dto.DecisionRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	slot, appErr := c.service.OwnerDecide(ctx.Request().Context(), ownerID, slotID, req.Decision)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, slot, "Decision applied")
}

// Cancel handles PUT /private/slots/:id/cancel
func (c *SlotController) Cancel(ctx echo.Context) error {
	userID, err := authcontroller.UserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	slotID, err := slotIDParam(ctx)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid slot id")
	}

	slot, appErr := c.service.Cancel(ctx.Request().Context(), userID, slotID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, slot, "Booking cancelled")
}

// Delete handles DELETE /private/slots/:id
func (c *SlotController) Delete(ctx echo.Context) error {
	ownerID, err := authcontroller.UserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	slotID, err := slotIDParam(ctx)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid slot id")
	}

	if appErr := c.service.DeleteSlot(ctx.Request().Context(), ownerID, slotID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Slot deleted")
}

// UploadReceipt handles POST /private/slots/:id/receipt
func (c *SlotController) UploadReceipt(ctx echo.Context) error {
	userID, err := authcontroller.UserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	slotID, err := slotIDParam(ctx)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid slot id")
	}

	var req dto.ReceiptUploadRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	resp, appErr := c.service.UploadReceipt(ctx.Request().Context(), userID, slotID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "Receipt upload URL issued")
}
