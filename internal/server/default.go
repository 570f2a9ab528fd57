package server

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/tramova/tramova/pkg/application"
	"github.com/tramova/tramova/pkg/configuration"
	"github.com/tramova/tramova/pkg/middleware"
	"github.com/tramova/tramova/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Pool          *pgxpool.Pool
}

func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application
	app.RegisterMiddleware(
		middleware.RequestLogger(options.Logger),
		middleware.Pool(options.Pool),
	)
	app.RegisterControllers(
		NewHealthController(options.Pool),
	)
	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})
	notAllowed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	})
	return server.NewHTTPServer(app, notFound, notAllowed), nil
}
