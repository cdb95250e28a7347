package plants

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// Handler exposes the plant HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

// RegisterRoutes mounts the plant routes. The {id} pattern only
// admits digits, so non-integer segments 404 at the router.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/plants", func(r chi.Router) {
		r.Get("/", h.listPlants)
		r.Post("/", h.createPlant)
		r.Get("/{id:[0-9]+}", h.getPlant)
		r.Delete("/{id:[0-9]+}", h.deletePlant)
	})
}

func (h *Handler) listPlants(w http.ResponseWriter, r *http.Request) {
	plants, err := h.service.ListPlants(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, plants)
}

func (h *Handler) getPlant(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// All-digit ids beyond int64 cannot match any stored row.
		respondError(w, &NotFoundError{ID: raw})
		return
	}
	p, err := h.service.GetPlant(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) createPlant(w http.ResponseWriter, r *http.Request) {
	var req CreatePlantRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		msg := err.Error()
		// An empty body carries none of the required keys.
		if errors.Is(err, io.EOF) {
			msg = msgMissingFields
		}
		respond(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	p, err := h.service.CreatePlant(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *Handler) deletePlant(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondError(w, &NotFoundError{ID: raw})
		return
	}
	if err := h.service.DeletePlant(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Plant with id %d successfully deleted", id),
	})
}

// respondError maps service errors to status codes: validation and
// integrity failures to 400, missing plants to 404, the rest to 500.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var validationErr *ValidationError
	var notFoundErr *NotFoundError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		status = http.StatusNotFound
	case errors.Is(err, ErrIntegrity):
		status = http.StatusBadRequest
	}
	respond(w, status, map[string]string{"error": err.Error()})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
