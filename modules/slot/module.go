package slot

import (
	"jogofacil/core/config"
	"jogofacil/core/database"
	"jogofacil/core/middleware"
	"jogofacil/core/storage"
	authrepository "jogofacil/modules/auth/repository"
	fieldrepository "jogofacil/modules/field/repository"
	notifservice "jogofacil/modules/notification/service"
	"jogofacil/modules/slot/controller"
	"jogofacil/modules/slot/repository"
	"jogofacil/modules/slot/router"
	"jogofacil/modules/slot/service"
	"jogofacil/modules/slot/worker"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
)

// Init wires the slot module and registers its background handlers on the
// worker mux. The returned service is what the team module's generator
// endpoint delegates to.
func Init(
	e *echo.Group,
	db database.IDatabase,
	dispatcher notifservice.DispatcherInterface,
	presigner storage.Presigner,
	taskClient *asynq.Client,
	workerMux *asynq.ServeMux,
	mw *middleware.Middleware,
) service.SlotServiceInterface {
	repo := repository.NewSlotRepository(db)
	fieldRepo := fieldrepository.NewFieldRepository(db)
	authRepo := authrepository.NewAuthRepository(db)

	svc := service.NewSlotService(repo, fieldRepo, authRepo, dispatcher, presigner, taskClient)
	ctrl := controller.NewSlotController(svc)
	router.NewSlotRouter(ctrl).Register(e, mw)

	if workerMux != nil {
		verifier := worker.NewReceiptVerifier(repo, fieldRepo, dispatcher, config.Get().Verification)
		verifier.Register(workerMux)
	}

	return svc
}
