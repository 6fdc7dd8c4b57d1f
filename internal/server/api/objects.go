// Package api provides the HTTP API handlers of the mudra daemon.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/mudra/internal/interaction"
	"github.com/ayusman/mudra/internal/store"
)

// SceneControl is the slice of the live scene the API needs: switching
// the controlled object and retuning its machine.
type SceneControl interface {
	Select(id string) error
	SetConfig(id string, cfg interaction.Config) error
}

// ObjectHandler handles HTTP requests for controllable objects.
type ObjectHandler struct {
	store *store.Store
	scene SceneControl
}

// NewObjectHandler creates an ObjectHandler. scene may be nil when the
// daemon runs headless (configuration-only mode).
func NewObjectHandler(s *store.Store, scene SceneControl) *ObjectHandler {
	return &ObjectHandler{store: s, scene: scene}
}

// ServeHTTP routes object requests.
// Paths: /api/objects, /api/objects/{id}, /api/objects/{id}/select.
func (h *ObjectHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/objects")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.list(w, r)
		return
	}

	if id, ok := strings.CutSuffix(path, "/select"); ok {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.selectObject(w, r, id)
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.updateConfig(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type objectResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Kind      string             `json:"kind"`
	Config    interaction.Config `json:"config"`
	CreatedAt string             `json:"created_at"`
	UpdatedAt string             `json:"updated_at"`
}

type listObjectsResponse struct {
	Objects []objectResponse `json:"objects"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toResponse(o *store.Object) objectResponse {
	return objectResponse{
		ID:        o.ID,
		Name:      o.Name,
		Kind:      o.Kind,
		Config:    o.Config,
		CreatedAt: o.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: o.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func (h *ObjectHandler) list(w http.ResponseWriter, r *http.Request) {
	objects, err := h.store.Objects().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list objects")
		return
	}

	response := listObjectsResponse{
		Objects: make([]objectResponse, 0, len(objects)),
	}
	for _, o := range objects {
		response.Objects = append(response.Objects, toResponse(o))
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *ObjectHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	obj, err := h.store.Objects().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Object not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get object")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(obj))
}

// updateConfig persists new interaction tuning and applies it to the
// live scene when one is attached.
func (h *ObjectHandler) updateConfig(w http.ResponseWriter, r *http.Request, id string) {
	var cfg interaction.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if cfg.ScaleMin > cfg.ScaleMax {
		writeError(w, http.StatusBadRequest, "scaleMin must not exceed scaleMax")
		return
	}

	if err := h.store.Objects().UpdateConfig(id, cfg); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Object not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update object")
		return
	}

	if h.scene != nil {
		h.scene.SetConfig(id, cfg)
	}

	obj, err := h.store.Objects().GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload object")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(obj))
}

func (h *ObjectHandler) selectObject(w http.ResponseWriter, r *http.Request, id string) {
	if _, err := h.store.Objects().GetByID(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Object not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get object")
		return
	}

	if h.scene != nil {
		if err := h.scene.Select(id); err != nil {
			writeError(w, http.StatusConflict, "Object not loaded in scene")
			return
		}
	}

	if err := h.store.Settings().Set(store.SettingSelectedObject, id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to persist selection")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"selected": id})
}
