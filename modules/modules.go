package modules

import (
	"github.com/tramova/tramova/modules/directory"
	"github.com/tramova/tramova/modules/tariffs"
	"github.com/tramova/tramova/modules/trips"
	"github.com/tramova/tramova/pkg/application"
)

// BuiltInModules in registration order: trips resolves the directory service
// at register time, so directory must come first.
var BuiltInModules = []application.Module{
	directory.NewModule(),
	tariffs.NewModule(),
	trips.NewModule(),
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range append(BuiltInModules, externalModules...) {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
