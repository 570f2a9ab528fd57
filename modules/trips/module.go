package trips

import (
	"embed"

	directoryservices "github.com/tramova/tramova/modules/directory/services"
	"github.com/tramova/tramova/modules/trips/infrastructure/persistence"
	"github.com/tramova/tramova/modules/trips/presentation/controllers"
	"github.com/tramova/tramova/modules/trips/services"
	"github.com/tramova/tramova/pkg/application"
	"github.com/tramova/tramova/pkg/configuration"
)

//go:embed infrastructure/persistence/schema/trips-schema.sql
var MigrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&MigrationFiles)

	directory := app.Service(directoryservices.DirectoryService{}).(*directoryservices.DirectoryService)
	app.RegisterServices(
		services.NewImportService(
			persistence.NewSessionRepository(),
			persistence.NewTripRepository(),
			directory,
			app.EventPublisher(),
			configuration.Use().Import,
		),
	)
	app.RegisterControllers(
		controllers.NewImportAPIController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "trips"
}
