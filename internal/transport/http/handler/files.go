package handler

import (
	"io"
	"net/http"
	"time"

	fileapp "github.com/employee-records-api/internal/application/file"
	"github.com/go-chi/chi/v5"
)

// FileHandler serves uploaded pictures and resumes.
type FileHandler struct {
	svc fileapp.Service
}

func NewFileHandler(svc fileapp.Service) *FileHandler { return &FileHandler{svc: svc} }

// Download streams the file bytes, or answers a short-lived presigned URL
// when ?presign=true so large resumes don't route through the API.
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "id")
	if r.URL.Query().Get("presign") == "true" {
		url, err := h.svc.PresignURL(r.Context(), fileID, 15*time.Minute)
		if err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"url": url})
		return
	}
	rc, f, err := h.svc.Download(r.Context(), fileID)
	if err != nil {
		httpError(w, err)
		return
	}
	defer rc.Close()
	w.Header().Set("Content-Type", f.Type)
	_, _ = io.Copy(w, rc)
}

func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "file deleted"})
}
