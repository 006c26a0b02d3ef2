package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"fabhomes/internal/services"
)

type UserHandler struct {
	Service *services.UserService
	Log     logrus.FieldLogger
}

// Me returns the resolved caller with a fresh copy of their profile.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	caller, ok := requiredCaller(w, r)
	if !ok {
		return
	}
	user, err := h.Service.Get(r.Context(), caller.ID)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
