package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/servicedesk-hq/servicedesk/modules/assets/domain/aggregates/asset"
	"github.com/servicedesk-hq/servicedesk/modules/assets/presentation/mappers"
	"github.com/servicedesk-hq/servicedesk/modules/assets/services"
	"github.com/servicedesk-hq/servicedesk/pkg/composables"
	"github.com/servicedesk-hq/servicedesk/pkg/configuration"
	"github.com/servicedesk-hq/servicedesk/pkg/excel"
	"github.com/servicedesk-hq/servicedesk/pkg/serrors"
	"github.com/servicedesk-hq/servicedesk/pkg/server"
)

type AssetsAPIController struct {
	assets   *services.AssetService
	imports  *services.AssetImportService
	basePath string
}

func NewAssetsAPIController(assets *services.AssetService, imports *services.AssetImportService) server.Controller {
	return &AssetsAPIController{
		assets:   assets,
		imports:  imports,
		basePath: "/assets/api",
	}
}

func (c *AssetsAPIController) Key() string {
	return c.basePath
}

func (c *AssetsAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/assets", c.List).Methods(http.MethodGet)
	router.HandleFunc("/assets/{pid}", c.GetByPID).Methods(http.MethodGet)
	router.HandleFunc("/import", c.Import).Methods(http.MethodPost)
}

func (c *AssetsAPIController) List(w http.ResponseWriter, r *http.Request) {
	conf := configuration.Use()

	limit := conf.PageSize
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= conf.MaxPageSize {
			limit = parsed
		}
	}
	offset := 0
	if v := strings.TrimSpace(r.URL.Query().Get("offset")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	params := &asset.FindParams{
		Q:      strings.TrimSpace(r.URL.Query().Get("q")),
		Status: asset.Status(strings.TrimSpace(r.URL.Query().Get("status"))),
		Limit:  limit,
		Offset: offset,
	}
	items, err := c.assets.GetPaginated(r.Context(), params)
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to list assets")
		writeAPIError(w, r, http.StatusInternalServerError, "ASSETS_INTERNAL", "internal error")
		return
	}

	out := make([]any, 0, len(items))
	for _, a := range items {
		out = append(out, mappers.AssetToListItem(a))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": out,
	})
}

func (c *AssetsAPIController) GetByPID(w http.ResponseWriter, r *http.Request) {
	pid := mux.Vars(r)["pid"]

	a, err := c.assets.GetByPID(r.Context(), pid)
	if err != nil {
		if errors.Is(err, asset.ErrNotFound) {
			writeAPIError(w, r, http.StatusNotFound, "ASSETS_NOT_FOUND", "asset not found")
			return
		}
		composables.UseLogger(r.Context()).WithError(err).Error("failed to load asset")
		writeAPIError(w, r, http.StatusInternalServerError, "ASSETS_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, mappers.AssetToListItem(a))
}

// Import accepts a multipart workbook upload and returns the batch outcome.
// Per-row failures are data in a 200 response; only batch-fatal conditions
// become error responses.
func (c *AssetsAPIController) Import(w http.ResponseWriter, r *http.Request) {
	conf := configuration.Use()
	r.Body = http.MaxBytesReader(w, r.Body, conf.MaxUploadSize)
	if err := r.ParseMultipartForm(conf.MaxUploadSize); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "ASSETS_IMPORT_INVALID_UPLOAD", "invalid multipart upload")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "ASSETS_IMPORT_NO_FILE", "missing file")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	result, err := c.imports.Import(r.Context(), file)
	if err != nil {
		switch {
		case errors.Is(err, excel.ErrNoDataRows), errors.Is(err, excel.ErrNoSheets):
			writeAPIError(w, r, http.StatusBadRequest, "ASSETS_IMPORT_EMPTY", err.Error())
		case errors.Is(err, services.ErrNoPIDColumn):
			writeAPIError(w, r, http.StatusBadRequest, services.ErrNoPIDColumn.Code, err.Error())
		default:
			var serr *serrors.BaseError
			if errors.As(err, &serr) {
				writeAPIError(w, r, http.StatusBadRequest, serr.Code, serr.Message)
				return
			}
			composables.UseLogger(r.Context()).WithError(err).Error("asset import failed")
			writeAPIError(w, r, http.StatusBadRequest, "ASSETS_IMPORT_INVALID_FILE", "failed to read workbook")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}
