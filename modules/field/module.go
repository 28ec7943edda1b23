package field

import (
	"jogofacil/core/database"
	"jogofacil/core/middleware"
	"jogofacil/core/storage"
	"jogofacil/modules/field/controller"
	"jogofacil/modules/field/repository"
	"jogofacil/modules/field/router"
	"jogofacil/modules/field/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Group, db database.IDatabase, presigner storage.Presigner, mw *middleware.Middleware) service.FieldServiceInterface {
	repo := repository.NewFieldRepository(db)
	svc := service.NewFieldService(repo, presigner)
	ctrl := controller.NewFieldController(svc)

	router.NewFieldRouter(ctrl).Register(e, mw)

	return svc
}
