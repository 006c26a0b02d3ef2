package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"fabhomes/internal/identity"
	"fabhomes/internal/models"
	"fabhomes/internal/services"
)

// InquiryHandler serves guests and signed-in users. Only the sender and the
// listing's seller can see or move an inquiry.
type InquiryHandler struct {
	Service *services.InquiryService
	Log     logrus.FieldLogger
}

func (h *InquiryHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	items, count, err := h.Service.List(r.Context(), identity.CallerFromContext(r.Context()), page)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, newPage(r, page, count, items))
}

func (h *InquiryHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	detail, err := h.Service.Get(r.Context(), identity.CallerFromContext(r.Context()), id)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *InquiryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.InquiryInput
	if err := decodeAndValidate(w, r, &in); err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	summary, err := h.Service.Create(r.Context(), identity.CallerFromContext(r.Context()), in)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	h.Log.WithFields(logrus.Fields{"inquiry_id": summary.ID, "property_id": summary.PropertyID}).Info("inquiry received")
	writeJSON(w, http.StatusCreated, summary)
}

type statusUpdate struct {
	Status string `json:"status"`
}

func (h *InquiryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	var body statusUpdate
	if err := decodeJSON(w, r, &body); err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	summary, err := h.Service.UpdateStatus(r.Context(), identity.CallerFromContext(r.Context()), id, body.Status)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
