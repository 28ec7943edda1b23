package auth

import (
	"jogofacil/core/cache"
	"jogofacil/core/database"
	"jogofacil/core/middleware"
	"jogofacil/modules/auth/controller"
	"jogofacil/modules/auth/repository"
	"jogofacil/modules/auth/router"
	"jogofacil/modules/auth/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Group, db database.IDatabase, cache cache.Cache, mw *middleware.Middleware) service.AuthServiceInterface {
	repo := repository.NewAuthRepository(db)
	svc := service.NewAuthService(repo, cache)
	ctrl := controller.NewAuthController(svc)

	router.NewAuthRouter(ctrl).Register(e, mw)

	return svc
}
