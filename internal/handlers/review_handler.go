package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"fabhomes/internal/models"
	"fabhomes/internal/services"
)

type ReviewHandler struct {
	Service *services.ReviewService
	Log     logrus.FieldLogger
}

// List needs exactly one of ?agent=, ?agency= or ?property=.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	agent, agency, property := q.uuidPtr("agent"), q.uuidPtr("agency"), q.uuidPtr("property")
	if err := q.err(); err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	target, err := models.TargetFromRefs(agent, agency, property)
	if err != nil {
		respondServiceError(w, r, h.Log, models.NewValidationError("non_field_errors", "invalid_target",
			"Filter by exactly one of agent, agency or property."))
		return
	}
	reviews, err := h.Service.List(r.Context(), target)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(reviews))
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := requiredCaller(w, r)
	if !ok {
		return
	}
	var in models.ReviewInput
	if err := decodeAndValidate(w, r, &in); err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	view, err := h.Service.Create(r.Context(), *caller, in)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}
