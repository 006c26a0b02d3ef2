package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"fabhomes/internal/models"
	"fabhomes/internal/services"
)

type FavoriteHandler struct {
	Service *services.FavoriteService
	Log     logrus.FieldLogger
}

type favoriteRequest struct {
	PropertyID *string `json:"property_id"`
}

// propertyID returns nil when the field is absent. A value that is not a
// UUID cannot name a listing and is reported as not found.
func (b favoriteRequest) propertyID() (*uuid.UUID, error) {
	if b.PropertyID == nil || strings.TrimSpace(*b.PropertyID) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*b.PropertyID))
	if err != nil {
		return nil, models.ErrNotFound
	}
	return &id, nil
}

func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := requiredCaller(w, r)
	if !ok {
		return
	}
	page, err := parsePage(r)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	items, count, err := h.Service.List(r.Context(), caller.ID, page)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, newPage(r, page, count, items))
}

// Toggle answers 201 when it created the favorite and 200 otherwise.
func (h *FavoriteHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	caller, ok := requiredCaller(w, r)
	if !ok {
		return
	}
	var body favoriteRequest
	if err := decodeJSON(w, r, &body); err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	propertyID, err := body.propertyID()
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	result, err := h.Service.Toggle(r.Context(), caller.ID, propertyID)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, result)
}

func (h *FavoriteHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := requiredCaller(w, r)
	if !ok {
		return
	}
	var body favoriteRequest
	if err := decodeJSON(w, r, &body); err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	propertyID, err := body.propertyID()
	if err != nil {
		respondServiceError(w, r, h.Log, models.NewValidationError("property_id", "does_not_exist", "Property does not exist."))
		return
	}
	view, err := h.Service.Add(r.Context(), caller.ID, propertyID)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (h *FavoriteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := requiredCaller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	if err := h.Service.Remove(r.Context(), caller.ID, id); err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
