package router

import (
	"jogofacil/core/middleware"
	authentity "jogofacil/modules/auth/entity"
	"jogofacil/modules/team/controller"

	"github.com/labstack/echo/v4"
)

type TeamRouter struct {
	controller *controller.TeamController
}

func NewTeamRouter(ctrl *controller.TeamController) *TeamRouter {
	return &TeamRouter{controller: ctrl}
}

func (r *TeamRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	// Any authenticated captain can redeem an invite code.
	invites := e.Group("/private/registered-teams", mw.AuthMiddleware())
	invites.POST("/accept-invite", r.controller.AcceptInvite)

	owner := e.Group("/private/registered-teams", mw.AuthMiddleware(), mw.RequireRole(authentity.RoleOwner, authentity.RoleAdmin))
	owner.POST("", r.controller.Create)
	owner.PUT("/:id", r.controller.Update)
	owner.DELETE("/:id", r.controller.Delete)
	owner.POST("/:id/generate-slots", r.controller.GenerateSlots)

	fields := e.Group("/private/fields", mw.AuthMiddleware(), mw.RequireRole(authentity.RoleOwner, authentity.RoleAdmin))
	fields.GET("/:id/registered-teams", r.controller.ListByField)
}
