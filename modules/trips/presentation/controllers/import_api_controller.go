package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/tramova/tramova/modules/directory/domain/refdata"
	"github.com/tramova/tramova/modules/trips/domain/importer"
	"github.com/tramova/tramova/modules/trips/domain/trip"
	"github.com/tramova/tramova/modules/trips/infrastructure/excel"
	"github.com/tramova/tramova/modules/trips/presentation/mappers"
	"github.com/tramova/tramova/modules/trips/services"
	"github.com/tramova/tramova/pkg/application"
	"github.com/tramova/tramova/pkg/composables"
	"github.com/tramova/tramova/pkg/middleware"
)

const maxUploadBytes = 16 << 20

type ImportAPIController struct {
	app      application.Application
	imports  *services.ImportService
	basePath string
}

func NewImportAPIController(app application.Application) application.Controller {
	return &ImportAPIController{
		app:      app,
		imports:  app.Service(services.ImportService{}).(*services.ImportService),
		basePath: "/trips/api",
	}
}

func (c *ImportAPIController) Key() string {
	return c.basePath
}

// Register wires the import endpoints. Import passes manage their own
// transactions row by row, so unlike plain CRUD writes they must not run
// under the request-level transaction middleware: one rejected row would
// poison the shared transaction and turn the batch all-or-nothing.
func (c *ImportAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.ProvideOwnerID())
	router.HandleFunc("/imports", c.ImportBatch).Methods(http.MethodPost)
	router.HandleFunc("/imports/{id}", c.Session).Methods(http.MethodGet)
	router.HandleFunc("/imports/{id}/retry", c.Retry).Methods(http.MethodPost)
	router.HandleFunc("/trips", c.ListTrips).Methods(http.MethodGet)
}

type importBatchRequest struct {
	Rows []importer.Row `json:"rows"`
}

type retryRequest struct {
	Kinds []string `json:"kinds"`
}

// ImportBatch accepts either a JSON body with inline rows or a multipart
// upload with an xlsx file under the "file" field.
func (c *ImportAPIController) ImportBatch(w http.ResponseWriter, r *http.Request) {
	rows, ok := c.readRows(w, r)
	if !ok {
		return
	}

	session, err := c.imports.ImportBatch(r.Context(), rows)
	if err != nil {
		if session != nil {
			composables.UseLogger(r.Context()).WithError(err).Error("import pipeline fault")
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"code":    "IMPORT_PIPELINE_FAILED",
				"message": "import pass failed; re-submit the batch",
				"session": mappers.SessionToViewModel(session),
			})
			return
		}
		c.writeImportError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mappers.SessionToViewModel(session))
}

func (c *ImportAPIController) Session(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "IMPORT_INVALID_ID", "invalid session id")
		return
	}
	session, err := c.imports.Session(r.Context(), id)
	if err != nil {
		c.writeImportError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.SessionToViewModel(session))
}

func (c *ImportAPIController) Retry(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "IMPORT_INVALID_ID", "invalid session id")
		return
	}
	var req retryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "IMPORT_INVALID_JSON", "invalid json")
		return
	}
	if len(req.Kinds) == 0 {
		writeAPIError(w, http.StatusBadRequest, "IMPORT_NO_KINDS", "at least one correction kind is required")
		return
	}
	kinds := make([]refdata.Kind, 0, len(req.Kinds))
	for _, raw := range req.Kinds {
		kinds = append(kinds, refdata.Kind(strings.ToLower(strings.TrimSpace(raw))))
	}

	session, err := c.imports.Retry(r.Context(), id, kinds)
	if err != nil {
		if session != nil {
			composables.UseLogger(r.Context()).WithError(err).Error("retry pipeline fault")
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"code":    "IMPORT_PIPELINE_FAILED",
				"message": "retry pass failed",
				"session": mappers.SessionToViewModel(session),
			})
			return
		}
		c.writeImportError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.SessionToViewModel(session))
}

func (c *ImportAPIController) ListTrips(w http.ResponseWriter, r *http.Request) {
	pagination := composables.UsePaginated(r)
	items, err := c.imports.ListTrips(r.Context(), &trip.FindParams{
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
	})
	if err != nil {
		c.writeImportError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": mappers.TripsToViewModels(items)})
}

func (c *ImportAPIController) readRows(w http.ResponseWriter, r *http.Request) ([]importer.Row, bool) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeAPIError(w, http.StatusBadRequest, "IMPORT_INVALID_UPLOAD", "invalid multipart upload")
			return nil, false
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			writeAPIError(w, http.StatusBadRequest, "IMPORT_MISSING_FILE", "expected an xlsx upload under \"file\"")
			return nil, false
		}
		defer file.Close()
		rows, err := excel.ReadRows(file)
		if err != nil {
			writeAPIError(w, http.StatusBadRequest, "IMPORT_INVALID_WORKBOOK", "could not read the workbook")
			return nil, false
		}
		return rows, true
	}

	var req importBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "IMPORT_INVALID_JSON", "invalid json")
		return nil, false
	}
	return req.Rows, true
}

func (c *ImportAPIController) writeImportError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, importer.ErrSessionNotFound):
		writeAPIError(w, http.StatusNotFound, "SESSION_NOT_FOUND", "import session not found")
	case errors.Is(err, importer.ErrSessionBusy):
		writeAPIError(w, http.StatusConflict, "SESSION_BUSY", "another retry is in progress; try again")
	case errors.Is(err, importer.ErrSessionFinalized):
		writeAPIError(w, http.StatusUnprocessableEntity, "SESSION_FINALIZED", "session is already completed or failed")
	case errors.Is(err, importer.ErrKindAlreadyProcessed):
		writeAPIError(w, http.StatusUnprocessableEntity, "KIND_ALREADY_PROCESSED", "this correction kind was already retried")
	case errors.Is(err, importer.ErrInvalidKind):
		writeAPIError(w, http.StatusBadRequest, "IMPORT_INVALID_KIND", "unknown correction kind")
	default:
		composables.UseLogger(r.Context()).WithError(err).Error("import operation failed")
		writeAPIError(w, http.StatusInternalServerError, "IMPORT_INTERNAL", "internal error")
	}
}
