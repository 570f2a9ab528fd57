package directory

import (
	"embed"

	"github.com/tramova/tramova/modules/directory/infrastructure/persistence"
	"github.com/tramova/tramova/modules/directory/presentation/controllers"
	"github.com/tramova/tramova/modules/directory/services"
	"github.com/tramova/tramova/pkg/application"
)

//go:embed infrastructure/persistence/schema/directory-schema.sql
var MigrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&MigrationFiles)
	app.RegisterServices(
		services.NewDirectoryService(persistence.NewDirectoryRepository(), app.EventPublisher()),
	)
	app.RegisterControllers(
		controllers.NewDirectoryAPIController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "directory"
}
