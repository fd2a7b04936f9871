package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"readnest/internal/blobstore"
)

// PhotoHandler handles the two-step photo upload handshake and retrieval
type PhotoHandler struct {
	blobs     blobstore.Store
	maxUpload int64
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(blobs blobstore.Store, maxUpload int64) *PhotoHandler {
	return &PhotoHandler{blobs: blobs, maxUpload: maxUpload}
}

// CreateUpload mints a fresh photo key; the client then uploads bytes to
// it in a second request
// POST /v1/uploads
func (h *PhotoHandler) CreateUpload(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"key": "photos/" + uuid.NewString()})
}

// UploadFile stores photo bytes under a previously minted key. Accepts
// either a multipart form with a "file" field or a raw body.
// POST /v1/upload-file?key=
func (h *PhotoHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		respondError(w, http.StatusBadRequest, "missing key")
		return
	}
	if !blobstore.ValidKey(key) {
		respondError(w, http.StatusBadRequest, "invalid key")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	var data []byte
	var contentType string
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, header, err := r.FormFile("file")
		if err != nil {
			respondError(w, http.StatusBadRequest, "missing file")
			return
		}
		defer file.Close()

		data, err = io.ReadAll(file)
		if err != nil {
			respondError(w, http.StatusBadRequest, "failed to read file")
			return
		}
		contentType = header.Header.Get("Content-Type")
	} else {
		var err error
		data, err = io.ReadAll(r.Body)
		if err != nil {
			respondError(w, http.StatusBadRequest, "failed to read body")
			return
		}
		contentType = r.Header.Get("Content-Type")
	}

	if len(data) == 0 {
		respondError(w, http.StatusBadRequest, "empty body")
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := h.blobs.Put(r.Context(), key, data, contentType); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "key": key})
}

// GetPhoto streams a stored photo
// GET /v1/photo?key=
func (h *PhotoHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		respondError(w, http.StatusBadRequest, "missing key")
		return
	}
	if !blobstore.ValidKey(key) {
		respondError(w, http.StatusBadRequest, "invalid key")
		return
	}

	data, contentType, err := h.blobs.Get(r.Context(), key)
	if errors.Is(err, blobstore.ErrNotFound) {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if err != nil {
		respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(data)
}
