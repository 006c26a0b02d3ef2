package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"fabhomes/internal/services"
)

type AnalyticsHandler struct {
	Service *services.AnalyticsService
	Log     logrus.FieldLogger
}

func (h *AnalyticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Service.Get(r.Context())
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}
