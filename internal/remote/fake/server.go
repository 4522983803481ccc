package fake

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/workly/workly/internal/log"
	"github.com/workly/workly/internal/model"
	"github.com/workly/workly/internal/remote"
	"github.com/workly/workly/internal/remote/httpapi"
)

// HandlerConfig is the configuration for the fake API HTTP handler.
type HandlerConfig struct {
	API remote.API
	// PathPrefix is the prefix where the API is served (e.g. "/api/v1").
	PathPrefix string
	// Token is the accepted bearer token, when empty any bearer token is accepted.
	Token  string
	Logger log.Logger
}

func (c *HandlerConfig) defaults() error {
	if c.API == nil {
		return fmt.Errorf("api is required")
	}
	c.PathPrefix = "/" + strings.Trim(c.PathPrefix, "/")
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "remote.FakeHandler"})
	return nil
}

type handler struct {
	api    remote.API
	token  string
	logger log.Logger
}

// NewHandler returns an HTTP handler that serves the Workly REST API backed by the received API.
func NewHandler(cfg HandlerConfig) (http.Handler, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	h := handler{api: cfg.API, token: cfg.Token, logger: cfg.Logger}

	r := mux.NewRouter()
	s := r.PathPrefix(cfg.PathPrefix).Subrouter()
	s.Use(h.authMiddleware)

	s.HandleFunc("/projects/mine", h.listProjects).Methods(http.MethodGet)
	s.HandleFunc("/projects/{id:[0-9]+}", h.getProject).Methods(http.MethodGet)
	s.HandleFunc("/columns/project/{id:[0-9]+}", h.listColumns).Methods(http.MethodGet)
	s.HandleFunc("/columns", h.createColumn).Methods(http.MethodPost)
	s.HandleFunc("/columns/{id:[0-9]+}", h.renameColumn).Methods(http.MethodPut)
	s.HandleFunc("/columns/{id:[0-9]+}", h.deleteColumn).Methods(http.MethodDelete)
	s.HandleFunc("/columns/{id:[0-9]+}/position", h.setColumnPosition).Methods(http.MethodPatch)
	s.HandleFunc("/tasks", h.createTask).Methods(http.MethodPost)
	s.HandleFunc("/tasks/{id:[0-9]+}", h.getTask).Methods(http.MethodGet)
	s.HandleFunc("/tasks/{id:[0-9]+}", h.deleteTask).Methods(http.MethodDelete)
	s.HandleFunc("/tasks/{id:[0-9]+}/position", h.setTaskPosition).Methods(http.MethodPatch)
	s.HandleFunc("/tasks/{id:[0-9]+}/move/{columnID:[0-9]+}", h.moveTask).Methods(http.MethodPost)

	return r, nil
}

func (h handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" || (h.token != "" && token != h.token) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h handler) listProjects(w http.ResponseWriter, r *http.Request) {
	ps, err := h.api.ListProjects(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := make([]httpapi.ProjectJSON, 0, len(ps))
	for _, p := range ps {
		out = append(out, httpapi.ProjectJSON{ID: p.ID, Title: p.Title, Favorite: p.Favorite, Owner: p.Owner})
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h handler) getProject(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	p, err := h.api.GetProject(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, httpapi.ProjectJSON{ID: p.ID, Title: p.Title, Favorite: p.Favorite, Owner: p.Owner})
}

func (h handler) listColumns(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	b, err := h.api.GetBoard(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := make([]httpapi.ColumnJSON, 0, len(b.Columns))
	for _, c := range b.Columns {
		out = append(out, httpapi.ColumnFromModel(b.ProjectID, c))
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h handler) createColumn(w http.ResponseWriter, r *http.Request) {
	var req httpapi.CreateColumnJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	c, err := h.api.CreateColumn(r.Context(), req.ProjectID, req.Title)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, httpapi.ColumnFromModel(req.ProjectID, *c))
}

func (h handler) renameColumn(w http.ResponseWriter, r *http.Request) {
	var req httpapi.CreateColumnJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	c, err := h.api.RenameColumn(r.Context(), req.ProjectID, pathID(r, "id"), req.Title)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, httpapi.ColumnFromModel(req.ProjectID, *c))
}

func (h handler) deleteColumn(w http.ResponseWriter, r *http.Request) {
	if err := h.api.DeleteColumn(r.Context(), pathID(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h handler) setColumnPosition(w http.ResponseWriter, r *http.Request) {
	pos, err := strconv.Atoi(r.URL.Query().Get("position"))
	if err != nil || pos < 0 {
		http.Error(w, "invalid position", http.StatusBadRequest)
		return
	}

	if err := h.api.SetColumnPosition(r.Context(), pathID(r, "id"), pos); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h handler) createTask(w http.ResponseWriter, r *http.Request) {
	var req httpapi.CreateTaskJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	t, err := h.api.CreateTask(r.Context(), req.ColumnID, req.Title)
	if err != nil {
		h.writeError(w, err)
		return
	}
	out := httpapi.TaskFromModel(*t)
	out.ColumnID = req.ColumnID
	h.writeJSON(w, http.StatusCreated, out)
}

func (h handler) getTask(w http.ResponseWriter, r *http.Request) {
	t, err := h.api.GetTask(r.Context(), pathID(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, httpapi.TaskFromModel(*t))
}

func (h handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.api.DeleteTask(r.Context(), pathID(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h handler) setTaskPosition(w http.ResponseWriter, r *http.Request) {
	pos, err := strconv.Atoi(r.URL.Query().Get("position"))
	if err != nil || pos < 0 {
		http.Error(w, "invalid position", http.StatusBadRequest)
		return
	}

	if err := h.api.SetTaskPosition(r.Context(), pathID(r, "id"), pos); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h handler) moveTask(w http.ResponseWriter, r *http.Request) {
	if err := h.api.MoveTask(r.Context(), pathID(r, "id"), pathID(r, "columnID")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Errorf("could not write response: %s", err)
	}
}

func (h handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, model.ErrNotValid):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// pathID returns a numeric path variable, the router regexp already validated it.
func pathID(r *http.Request, name string) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	return id
}
