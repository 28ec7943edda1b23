package team

import (
	"jogofacil/core/database"
	"jogofacil/core/middleware"
	fieldrepository "jogofacil/modules/field/repository"
	notifservice "jogofacil/modules/notification/service"
	slotservice "jogofacil/modules/slot/service"
	"jogofacil/modules/team/controller"
	"jogofacil/modules/team/repository"
	"jogofacil/modules/team/router"
	"jogofacil/modules/team/service"

	"github.com/labstack/echo/v4"
)

func Init(
	e *echo.Group,
	db database.IDatabase,
	slotSvc slotservice.SlotServiceInterface,
	dispatcher notifservice.DispatcherInterface,
	mw *middleware.Middleware,
) service.TeamServiceInterface {
	repo := repository.NewTeamRepository(db)
	fieldRepo := fieldrepository.NewFieldRepository(db)
	svc := service.NewTeamService(repo, fieldRepo, slotSvc, dispatcher)
	ctrl := controller.NewTeamController(svc)

	router.NewTeamRouter(ctrl).Register(e, mw)

	return svc
}
