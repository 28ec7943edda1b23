package router

import (
	"jogofacil/core/middleware"
	"jogofacil/modules/auth/entity"
	"jogofacil/modules/slot/controller"

	"github.com/labstack/echo/v4"
)

type SlotRouter struct {
	controller *controller.SlotController
}

func NewSlotRouter(ctrl *controller.SlotController) *SlotRouter {
	return &SlotRouter{controller: ctrl}
}

func (r *SlotRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	e.GET("/slots", r.controller.ListAvailable)

	private := e.Group("/private/slots", mw.AuthMiddleware())
	private.POST("/:id/challenge", r.controller.SubmitChallenge)
	private.PUT("/:id/cancel", r.controller.Cancel)
	private.POST("/:id/receipt", r.controller.UploadReceipt)

	owner := e.Group("/private/slots", mw.AuthMiddleware(), mw.RequireRole(entity.RoleOwner, entity.RoleAdmin))
	owner.POST("", r.controller.Create)
	owner.POST("/:id/assign", r.controller.Assign)
	owner.PUT("/:id/decision", r.controller.Decide)
	owner.DELETE("/:id", r.controller.Delete)

	agenda := e.Group("/private/fields", mw.AuthMiddleware(), mw.RequireRole(entity.RoleOwner, entity.RoleAdmin))
	agenda.GET("/:id/agenda", r.controller.FieldAgenda)
}
