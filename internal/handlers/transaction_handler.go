package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"fabhomes/internal/models"
	"fabhomes/internal/services"
)

// TransactionHandler shows each caller the deals they are party to as buyer,
// seller or agent.
type TransactionHandler struct {
	Service *services.TransactionService
	Log     logrus.FieldLogger
}

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
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

func (h *TransactionHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	caller, ok := requiredCaller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	tx, err := h.Service.Get(r.Context(), caller.ID, id)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := requiredCaller(w, r)
	if !ok {
		return
	}
	var in models.TransactionInput
	if err := decodeAndValidate(w, r, &in); err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	tx, err := h.Service.Create(r.Context(), caller.ID, in)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	h.Log.WithFields(logrus.Fields{"transaction_id": tx.ID, "buyer_id": caller.ID}).Info("negotiation opened")
	writeJSON(w, http.StatusCreated, tx)
}
