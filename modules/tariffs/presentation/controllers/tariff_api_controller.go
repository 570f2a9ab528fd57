package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/tramova/tramova/modules/tariffs/domain/aggregates/tariff"
	"github.com/tramova/tramova/modules/tariffs/presentation/mappers"
	"github.com/tramova/tramova/modules/tariffs/presentation/viewmodels"
	"github.com/tramova/tramova/modules/tariffs/services"
	"github.com/tramova/tramova/pkg/application"
	"github.com/tramova/tramova/pkg/composables"
	"github.com/tramova/tramova/pkg/middleware"
)

type TariffAPIController struct {
	app      application.Application
	tariffs  *services.TariffService
	basePath string
}

func NewTariffAPIController(app application.Application) application.Controller {
	return &TariffAPIController{
		app:      app,
		tariffs:  app.Service(services.TariffService{}).(*services.TariffService),
		basePath: "/tariffs/api",
	}
}

func (c *TariffAPIController) Key() string {
	return c.basePath
}

func (c *TariffAPIController) Register(r *mux.Router) {
	commonMiddleware := []mux.MiddlewareFunc{
		middleware.ProvideOwnerID(),
	}

	getRouter := r.PathPrefix(c.basePath).Subrouter()
	getRouter.Use(commonMiddleware...)
	getRouter.HandleFunc("/routes/{routeId}/tariffs", c.ListByRoute).Methods(http.MethodGet)
	getRouter.HandleFunc("/routes/{routeId}/tariffs/current", c.Current).Methods(http.MethodGet)
	getRouter.HandleFunc("/routes/{routeId}/tariffs/resolve", c.Resolve).Methods(http.MethodGet)

	writeRouter := r.PathPrefix(c.basePath).Subrouter()
	writeRouter.Use(commonMiddleware...)
	writeRouter.Use(middleware.WithTransaction())
	writeRouter.HandleFunc("/tariffs", c.Create).Methods(http.MethodPost)
	writeRouter.HandleFunc("/tariffs/{id}", c.Update).Methods(http.MethodPut)
}

func (c *TariffAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var dto tariff.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, http.StatusBadRequest, "TARIFF_INVALID_JSON", "invalid json")
		return
	}
	if fields, ok := dto.Ok(); !ok {
		writeValidationError(w, fields)
		return
	}

	created, err := c.tariffs.Create(r.Context(), &dto)
	if err != nil {
		c.writeTariffError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mappers.TariffToViewModel(created))
}

func (c *TariffAPIController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "TARIFF_INVALID_ID", "invalid tariff id")
		return
	}
	var dto tariff.UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, http.StatusBadRequest, "TARIFF_INVALID_JSON", "invalid json")
		return
	}
	if fields, ok := dto.Ok(); !ok {
		writeValidationError(w, fields)
		return
	}

	updated, err := c.tariffs.Update(r.Context(), id, &dto)
	if err != nil {
		c.writeTariffError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.TariffToViewModel(updated))
}

func (c *TariffAPIController) ListByRoute(w http.ResponseWriter, r *http.Request) {
	routeID, err := uuid.Parse(mux.Vars(r)["routeId"])
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "TARIFF_INVALID_ROUTE", "invalid route id")
		return
	}
	items, err := c.tariffs.GetByRoute(r.Context(), routeID)
	if err != nil {
		c.writeTariffError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": mappers.TariffsToViewModels(items),
	})
}

func (c *TariffAPIController) Resolve(w http.ResponseWriter, r *http.Request) {
	routeID, err := uuid.Parse(mux.Vars(r)["routeId"])
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "TARIFF_INVALID_ROUTE", "invalid route id")
		return
	}
	rateType, method, ok := c.keyParams(w, r)
	if !ok {
		return
	}
	onDate, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "TARIFF_INVALID_DATE", "expected date=YYYY-MM-DD")
		return
	}

	resolved, err := c.tariffs.ResolveApplicable(r.Context(), routeID, rateType, method, onDate)
	if err != nil {
		c.writeTariffError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.TariffToViewModel(resolved))
}

func (c *TariffAPIController) Current(w http.ResponseWriter, r *http.Request) {
	routeID, err := uuid.Parse(mux.Vars(r)["routeId"])
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "TARIFF_INVALID_ROUTE", "invalid route id")
		return
	}
	rateType, method, ok := c.keyParams(w, r)
	if !ok {
		return
	}

	current, stale, err := c.tariffs.CurrentForDisplay(r.Context(), routeID, rateType, method, time.Now())
	if err != nil {
		c.writeTariffError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewmodels.CurrentTariff{
		Tariff: mappers.TariffToViewModel(current),
		Stale:  stale,
	})
}

func (c *TariffAPIController) keyParams(w http.ResponseWriter, r *http.Request) (tariff.RateType, tariff.Method, bool) {
	rateType := tariff.RateType(strings.ToLower(r.URL.Query().Get("rate_type")))
	if !rateType.Valid() {
		writeAPIError(w, http.StatusBadRequest, "TARIFF_INVALID_RATE_TYPE", "unknown rate type")
		return "", "", false
	}
	method := tariff.Method(strings.ToLower(r.URL.Query().Get("method")))
	if !method.Valid() {
		writeAPIError(w, http.StatusBadRequest, "TARIFF_INVALID_METHOD", "unknown calculation method")
		return "", "", false
	}
	return rateType, method, true
}

func (c *TariffAPIController) writeTariffError(w http.ResponseWriter, r *http.Request, err error) {
	var conflict *tariff.ConflictError
	var violation *tariff.InvariantViolationError
	switch {
	case errors.As(err, &conflict):
		writeJSON(w, http.StatusConflict, map[string]any{
			"code":           "TARIFF_CONFLICT",
			"message":        conflict.Description,
			"conflicting_id": conflict.ConflictingID.String(),
		})
	case errors.As(err, &violation):
		composables.UseLogger(r.Context()).WithError(err).Error("tariff invariant violated")
		writeAPIError(w, http.StatusInternalServerError, "TARIFF_INVARIANT_VIOLATION", "overlapping tariff versions detected")
	case errors.Is(err, tariff.ErrNoApplicable):
		writeAPIError(w, http.StatusNotFound, "TARIFF_NO_APPLICABLE", "no tariff covers the requested date")
	case errors.Is(err, tariff.ErrNotFound):
		writeAPIError(w, http.StatusNotFound, "TARIFF_NOT_FOUND", "tariff not found")
	case errors.Is(err, tariff.ErrInvalidWindow), errors.Is(err, tariff.ErrMissingValidFrom):
		writeAPIError(w, http.StatusUnprocessableEntity, "TARIFF_INVALID_WINDOW", err.Error())
	default:
		composables.UseLogger(r.Context()).WithError(err).Error("tariff operation failed")
		writeAPIError(w, http.StatusInternalServerError, "TARIFF_INTERNAL", "internal error")
	}
}
