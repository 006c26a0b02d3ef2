package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"fabhomes/internal/services"
)

// AgencyHandler exposes verified agencies only.
type AgencyHandler struct {
	Service *services.AgencyService
	Log     logrus.FieldLogger
}

func (h *AgencyHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	items, count, err := h.Service.List(r.Context(), page)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, newPage(r, page, count, items))
}

func (h *AgencyHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	agency, err := h.Service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, agency)
}

func (h *AgencyHandler) Properties(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	items, err := h.Service.Properties(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(items))
}

func (h *AgencyHandler) Agents(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	agents, err := h.Service.Agents(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(agents))
}
