package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/servicedesk-hq/servicedesk/modules/core/domain/aggregates/user"
	"github.com/servicedesk-hq/servicedesk/modules/core/presentation/mappers"
	"github.com/servicedesk-hq/servicedesk/modules/core/services"
	"github.com/servicedesk-hq/servicedesk/pkg/composables"
	"github.com/servicedesk-hq/servicedesk/pkg/configuration"
	"github.com/servicedesk-hq/servicedesk/pkg/serrors"
	"github.com/servicedesk-hq/servicedesk/pkg/server"
)

// UsersAPIController serves the user directory: the lookup target for asset
// assignment and a seeding endpoint for provisioning accounts.
type UsersAPIController struct {
	users    *services.UserService
	basePath string
}

func NewUsersAPIController(users *services.UserService) server.Controller {
	return &UsersAPIController{
		users:    users,
		basePath: "/users/api",
	}
}

func (c *UsersAPIController) Key() string {
	return c.basePath
}

func (c *UsersAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/users", c.List).Methods(http.MethodGet)
	router.HandleFunc("/users", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/users/{id}", c.GetByID).Methods(http.MethodGet)
}

func (c *UsersAPIController) List(w http.ResponseWriter, r *http.Request) {
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

	params := &user.FindParams{
		Q:      strings.TrimSpace(r.URL.Query().Get("q")),
		Limit:  limit,
		Offset: offset,
	}
	items, err := c.users.GetPaginated(r.Context(), params)
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to list users")
		writeAPIError(w, r, http.StatusInternalServerError, "USERS_INTERNAL", "internal error")
		return
	}

	out := make([]any, 0, len(items))
	for _, u := range items {
		out = append(out, mappers.UserToListItem(u))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": out,
	})
}

func (c *UsersAPIController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "USERS_INVALID_ID", "invalid user id")
		return
	}

	u, err := c.users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			writeAPIError(w, r, http.StatusNotFound, "USERS_NOT_FOUND", "user not found")
			return
		}
		composables.UseLogger(r.Context()).WithError(err).Error("failed to load user")
		writeAPIError(w, r, http.StatusInternalServerError, "USERS_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, mappers.UserToListItem(u))
}

type createUserRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (c *UsersAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "USERS_INVALID_BODY", "invalid request body")
		return
	}

	if strings.TrimSpace(req.Email) == "" {
		serr := serrors.NewFieldRequiredError("Email")
		writeAPIError(w, r, http.StatusBadRequest, serr.Code, serr.Message)
		return
	}
	if strings.TrimSpace(req.Username) == "" {
		serr := serrors.NewFieldRequiredError("Username")
		writeAPIError(w, r, http.StatusBadRequest, serr.Code, serr.Message)
		return
	}

	created, err := c.users.Create(r.Context(), user.New(req.Email, req.Username, req.FirstName, req.LastName))
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to create user")
		writeAPIError(w, r, http.StatusInternalServerError, "USERS_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, mappers.UserToListItem(created))
}
