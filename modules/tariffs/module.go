package tariffs

import (
	"embed"

	"github.com/tramova/tramova/modules/tariffs/infrastructure/persistence"
	"github.com/tramova/tramova/modules/tariffs/presentation/controllers"
	"github.com/tramova/tramova/modules/tariffs/services"
	"github.com/tramova/tramova/pkg/application"
)

//go:embed infrastructure/persistence/schema/tariffs-schema.sql
var MigrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&MigrationFiles)
	app.RegisterServices(
		services.NewTariffService(persistence.NewTariffRepository(), app.EventPublisher()),
	)
	app.RegisterControllers(
		controllers.NewTariffAPIController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "tariffs"
}
