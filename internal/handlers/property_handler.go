package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"fabhomes/internal/models"
	"fabhomes/internal/services"
)

const (
	maxImageUpload   = 10 << 20
	imageUploadField = "image"
)

type PropertyHandler struct {
	Service *services.PropertyService
	Log     logrus.FieldLogger
}

// List answers the filtered, paginated listing query. featured=true switches
// to the unpaginated most-viewed list.
func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	if queryBool(r, "featured") {
		items, err := h.Service.Featured(r.Context())
		if err != nil {
			respondServiceError(w, r, h.Log, err)
			return
		}
		writeJSON(w, http.StatusOK, nonNil(items))
		return
	}

	filter, err := propertyFilterFromQuery(r)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	h.respondPage(w, r, filter)
}

func (h *PropertyHandler) Search(w http.ResponseWriter, r *http.Request) {
	filter, err := searchFilterFromQuery(r)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	h.respondPage(w, r, filter)
}

func (h *PropertyHandler) respondPage(w http.ResponseWriter, r *http.Request, filter models.PropertyFilter) {
	page, err := parsePage(r)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	items, count, err := h.Service.List(r.Context(), filter, page)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, newPage(r, page, count, items))
}

func (h *PropertyHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	detail, err := h.Service.Detail(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := requiredCaller(w, r)
	if !ok {
		return
	}
	var in models.PropertyInput
	if err := decodeAndValidate(w, r, &in); err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	detail, err := h.Service.Create(r.Context(), caller.ID, in)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	h.Log.WithFields(logrus.Fields{"property_id": detail.ID, "seller_id": caller.ID}).Info("property listed")
	writeJSON(w, http.StatusCreated, detail)
}

// Update serves PUT and PATCH. PATCH applies the body on top of the stored
// listing; PUT starts from an empty input so omitted fields fail validation.
func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := requiredCaller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	partial := r.Method == http.MethodPatch
	detail, err := h.Service.Update(r.Context(), caller.ID, id, func(in *models.PropertyInput) error {
		if !partial {
			*in = models.PropertyInput{}
		}
		return decodeAndValidate(w, r, in)
	})
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := requiredCaller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	if err := h.Service.Delete(r.Context(), caller.ID, id); err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	h.Log.WithFields(logrus.Fields{"property_id": id, "user_id": caller.ID}).Info("property deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (h *PropertyHandler) IncrementView(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	views, err := h.Service.IncrementViews(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"views_count": views})
}

func (h *PropertyHandler) Similar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	items, err := h.Service.Similar(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(items))
}

// UploadImage stores the multipart "image" file and appends its URL to the
// listing.
func (h *PropertyHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	caller, ok := requiredCaller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageUpload)
	if err := r.ParseMultipartForm(maxImageUpload); err != nil {
		respondServiceError(w, r, h.Log, models.NewValidationError(imageUploadField, ErrCodeInvalidPayload, "Upload a valid image in a multipart form."))
		return
	}
	file, header, err := r.FormFile(imageUploadField)
	if err != nil {
		respondServiceError(w, r, h.Log, models.NewValidationError(imageUploadField, "required", "No file was submitted."))
		return
	}
	defer file.Close()

	body, err := io.ReadAll(file)
	if err != nil {
		respondServiceError(w, r, h.Log, models.NewValidationError(imageUploadField, ErrCodeInvalidPayload, "The submitted file could not be read."))
		return
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(body)
	}
	if !strings.HasPrefix(contentType, "image/") {
		respondServiceError(w, r, h.Log, models.NewValidationError(imageUploadField, "invalid_image", "Upload a valid image."))
		return
	}

	detail, err := h.Service.UploadImage(r.Context(), caller.ID, id, header.Filename, contentType, body)
	if err != nil {
		respondServiceError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
