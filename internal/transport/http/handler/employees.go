package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/employee-records-api/internal/application/employee"
	fileapp "github.com/employee-records-api/internal/application/file"
	"github.com/employee-records-api/internal/domain"
	"github.com/employee-records-api/internal/pkg/validate"
	"github.com/go-chi/chi/v5"
)

const maxUploadBytes = 32 << 20

// EmployeeHandler handles employee CRUD endpoints. Create and Update accept
// multipart forms so the record fields and the picture/resume files arrive in
// one request, matching the HTML form that drives them.
type EmployeeHandler struct {
	svc     employee.Service
	fileSvc fileapp.Service
}

func NewEmployeeHandler(svc employee.Service, fileSvc fileapp.Service) *EmployeeHandler {
	return &EmployeeHandler{svc: svc, fileSvc: fileSvc}
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	req := domain.CreateEmployeeRequest{
		Name:       r.FormValue("name"),
		Email:      r.FormValue("email"),
		Position:   optionalFormValue(r, "position"),
		Department: optionalFormValue(r, "department"),
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	e, err := h.svc.Create(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	if err := h.attachFiles(r, e.EmployeeID); err != nil {
		httpError(w, err)
		return
	}
	e, err = h.svc.Get(r.Context(), e.EmployeeID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 50
	}
	employees, next, err := h.svc.List(r.Context(), limit, r.URL.Query().Get("cursor"))
	if err != nil {
		httpError(w, err)
		return
	}
	if employees == nil {
		employees = []domain.Employee{}
	}
	writeJSON(w, http.StatusOK, PaginatedEmployeesEnvelope{Data: employees, NextCursor: next})
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	employeeID := chi.URLParam(r, "id")
	req := domain.UpdateEmployeeRequest{
		Name:       optionalFormValue(r, "name"),
		Email:      optionalFormValue(r, "email"),
		Position:   optionalFormValue(r, "position"),
		Department: optionalFormValue(r, "department"),
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	hasFiles := hasFormFile(r, "picture") || hasFormFile(r, "resume")
	var (
		e   *domain.Employee
		err error
	)
	if req.Name != nil || req.Email != nil || req.Position != nil || req.Department != nil {
		e, err = h.svc.Update(r.Context(), employeeID, req)
	} else if hasFiles {
		e, err = h.svc.Get(r.Context(), employeeID)
	} else {
		writeError(w, http.StatusBadRequest, "no fields to update")
		return
	}
	if err != nil {
		httpError(w, err)
		return
	}
	if hasFiles {
		if err := h.attachFiles(r, e.EmployeeID); err != nil {
			httpError(w, err)
			return
		}
		if e, err = h.svc.Get(r.Context(), e.EmployeeID); err != nil {
			httpError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "employee deleted"})
}

// attachFiles uploads the optional picture and resume form files and records
// their URLs on the employee.
func (h *EmployeeHandler) attachFiles(r *http.Request, employeeID string) error {
	for field, kind := range map[string]string{
		"picture": domain.FileKindPicture,
		"resume":  domain.FileKindResume,
	} {
		f, header, err := r.FormFile(field)
		if err != nil {
			continue // field absent
		}
		uploaded, upErr := h.fileSvc.Upload(r.Context(), fileapp.UploadInput{
			Reader:      f,
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			EmployeeID:  employeeID,
			Kind:        kind,
		})
		f.Close()
		if upErr != nil {
			return upErr
		}
		if err := h.svc.SetFileURL(r.Context(), employeeID, kind, uploaded.URL); err != nil {
			return err
		}
	}
	return nil
}

func optionalFormValue(r *http.Request, field string) *string {
	if _, ok := r.MultipartForm.Value[field]; !ok {
		return nil
	}
	v := r.FormValue(field)
	return &v
}

func hasFormFile(r *http.Request, field string) bool {
	if r.MultipartForm == nil {
		return false
	}
	var fhs []*multipart.FileHeader
	if r.MultipartForm.File != nil {
		fhs = r.MultipartForm.File[field]
	}
	return len(fhs) > 0
}
