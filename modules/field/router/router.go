package router

import (
	"jogofacil/core/middleware"
	"jogofacil/modules/auth/entity"
	"jogofacil/modules/field/controller"

	"github.com/labstack/echo/v4"
)

type FieldRouter struct {
	controller *controller.FieldController
}

func NewFieldRouter(ctrl *controller.FieldController) *FieldRouter {
	return &FieldRouter{controller: ctrl}
}

func (r *FieldRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	e.GET("/fields/:slug", r.controller.GetBySlug)

	private := e.Group("/private/fields", mw.AuthMiddleware(), mw.RequireRole(entity.RoleOwner, entity.RoleAdmin))
	private.POST("", r.controller.Create)
	private.GET("", r.controller.GetMyFields)
	private.PUT("/:id", r.controller.Update)
	private.POST("/:id/image-url", r.controller.ImageUploadURL)
}
