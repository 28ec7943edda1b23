package router

import (
	"jogofacil/core/middleware"
	"jogofacil/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	controller *controller.AuthController
}

func NewAuthRouter(ctrl *controller.AuthController) *AuthRouter {
	return &AuthRouter{controller: ctrl}
}

func (r *AuthRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	public := e.Group("/auth")
	public.POST("/register", r.controller.Register)
	public.POST("/login", r.controller.Login)
	public.POST("/refresh", r.controller.Refresh)

	teams := e.Group("/private/teams", mw.AuthMiddleware())
	teams.GET("", r.controller.GetMyTeams)
	teams.POST("", r.controller.CreateTeam)
	teams.PUT("/:id", r.controller.UpdateTeam)
	teams.DELETE("/:id", r.controller.DeleteTeam)
}
