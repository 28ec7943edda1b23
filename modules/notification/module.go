package notification

import (
	"jogofacil/core/cache"
	"jogofacil/core/database"
	"jogofacil/core/middleware"
	"jogofacil/core/queue"
	"jogofacil/modules/notification/controller"
	"jogofacil/modules/notification/repository"
	"jogofacil/modules/notification/router"
	"jogofacil/modules/notification/service"

	"github.com/labstack/echo/v4"
)

// Init wires the notification module and returns the dispatcher other
// modules use to emit booking notifications.
func Init(e *echo.Group, db database.IDatabase, cache cache.Cache, publisher *queue.Publisher, mw *middleware.Middleware) service.DispatcherInterface {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo, cache)
	ctrl := controller.NewNotificationController(svc)

	router.NewNotificationRouter(ctrl).Register(e, mw)

	return service.NewDispatcher(svc, publisher)
}
