package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tramova/tramova/modules/directory/domain/refdata"
	"github.com/tramova/tramova/modules/directory/presentation/mappers"
	"github.com/tramova/tramova/modules/directory/services"
	"github.com/tramova/tramova/pkg/application"
	"github.com/tramova/tramova/pkg/composables"
	"github.com/tramova/tramova/pkg/middleware"
)

type DirectoryAPIController struct {
	app       application.Application
	directory *services.DirectoryService
	basePath  string
}

func NewDirectoryAPIController(app application.Application) application.Controller {
	return &DirectoryAPIController{
		app:       app,
		directory: app.Service(services.DirectoryService{}).(*services.DirectoryService),
		basePath:  "/directory/api",
	}
}

func (c *DirectoryAPIController) Key() string {
	return c.basePath
}

func (c *DirectoryAPIController) Register(r *mux.Router) {
	commonMiddleware := []mux.MiddlewareFunc{
		middleware.ProvideOwnerID(),
	}

	getRouter := r.PathPrefix(c.basePath).Subrouter()
	getRouter.Use(commonMiddleware...)
	getRouter.HandleFunc("/sites", c.ListSites).Methods(http.MethodGet)
	getRouter.HandleFunc("/personnel", c.ListPersonnel).Methods(http.MethodGet)
	getRouter.HandleFunc("/vehicles", c.ListVehicles).Methods(http.MethodGet)
	getRouter.HandleFunc("/routes", c.ListRoutes).Methods(http.MethodGet)

	writeRouter := r.PathPrefix(c.basePath).Subrouter()
	writeRouter.Use(commonMiddleware...)
	writeRouter.Use(middleware.WithTransaction())
	writeRouter.HandleFunc("/sites", c.CreateSite).Methods(http.MethodPost)
	writeRouter.HandleFunc("/personnel", c.CreatePersonnel).Methods(http.MethodPost)
	writeRouter.HandleFunc("/vehicles", c.CreateVehicle).Methods(http.MethodPost)
	writeRouter.HandleFunc("/routes", c.CreateRoute).Methods(http.MethodPost)
}

func (c *DirectoryAPIController) CreateSite(w http.ResponseWriter, r *http.Request) {
	var dto refdata.CreateSiteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, http.StatusBadRequest, "DIRECTORY_INVALID_JSON", "invalid json")
		return
	}
	if fields, ok := dto.Ok(); !ok {
		writeValidationError(w, fields)
		return
	}
	created, err := c.directory.CreateSite(r.Context(), &dto)
	if err != nil {
		c.writeDirectoryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mappers.SiteToViewModel(created))
}

func (c *DirectoryAPIController) ListSites(w http.ResponseWriter, r *http.Request) {
	items, err := c.directory.ListSites(r.Context())
	if err != nil {
		c.writeDirectoryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": mappers.SitesToViewModels(items)})
}

func (c *DirectoryAPIController) CreatePersonnel(w http.ResponseWriter, r *http.Request) {
	var dto refdata.CreatePersonnelDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, http.StatusBadRequest, "DIRECTORY_INVALID_JSON", "invalid json")
		return
	}
	if fields, ok := dto.Ok(); !ok {
		writeValidationError(w, fields)
		return
	}
	created, err := c.directory.CreatePersonnel(r.Context(), &dto)
	if err != nil {
		c.writeDirectoryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mappers.PersonnelToViewModel(created))
}

func (c *DirectoryAPIController) ListPersonnel(w http.ResponseWriter, r *http.Request) {
	items, err := c.directory.ListPersonnel(r.Context())
	if err != nil {
		c.writeDirectoryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": mappers.PersonnelToViewModels(items)})
}

func (c *DirectoryAPIController) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var dto refdata.CreateVehicleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, http.StatusBadRequest, "DIRECTORY_INVALID_JSON", "invalid json")
		return
	}
	if fields, ok := dto.Ok(); !ok {
		writeValidationError(w, fields)
		return
	}
	created, err := c.directory.CreateVehicle(r.Context(), &dto)
	if err != nil {
		c.writeDirectoryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mappers.VehicleToViewModel(created))
}

func (c *DirectoryAPIController) ListVehicles(w http.ResponseWriter, r *http.Request) {
	items, err := c.directory.ListVehicles(r.Context())
	if err != nil {
		c.writeDirectoryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": mappers.VehiclesToViewModels(items)})
}

func (c *DirectoryAPIController) CreateRoute(w http.ResponseWriter, r *http.Request) {
	var dto refdata.CreateRouteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, http.StatusBadRequest, "DIRECTORY_INVALID_JSON", "invalid json")
		return
	}
	if fields, ok := dto.Ok(); !ok {
		writeValidationError(w, fields)
		return
	}
	created, err := c.directory.CreateRoute(r.Context(), &dto)
	if err != nil {
		c.writeDirectoryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mappers.RouteToViewModel(created))
}

func (c *DirectoryAPIController) ListRoutes(w http.ResponseWriter, r *http.Request) {
	items, err := c.directory.ListRoutes(r.Context())
	if err != nil {
		c.writeDirectoryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": mappers.RoutesToViewModels(items)})
}

func (c *DirectoryAPIController) writeDirectoryError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, refdata.ErrSiteExists):
		writeAPIError(w, http.StatusConflict, "DIRECTORY_SITE_EXISTS", "site already exists")
	case errors.Is(err, refdata.ErrPersonnelExists):
		writeAPIError(w, http.StatusConflict, "DIRECTORY_PERSONNEL_EXISTS", "personnel already exists")
	case errors.Is(err, refdata.ErrVehicleExists):
		writeAPIError(w, http.StatusConflict, "DIRECTORY_VEHICLE_EXISTS", "vehicle already exists")
	case errors.Is(err, refdata.ErrRouteExists):
		writeAPIError(w, http.StatusConflict, "DIRECTORY_ROUTE_EXISTS", "route already exists")
	default:
		composables.UseLogger(r.Context()).WithError(err).Error("directory operation failed")
		writeAPIError(w, http.StatusInternalServerError, "DIRECTORY_INTERNAL", "internal error")
	}
}
