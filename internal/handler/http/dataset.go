package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/diverse-infotech/attendance-insight-go/internal/domain/dataset"
	"github.com/diverse-infotech/attendance-insight-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DatasetHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Facts(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type datasetHandlerImpl struct {
	datasetService dataset.DatasetService
}

func NewDatasetHandler(datasetService dataset.DatasetService) DatasetHandler {
	return &datasetHandlerImpl{
		datasetService: datasetService,
	}
}

// Upload implements DatasetHandler.
func (h *datasetHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Attendance sheet file is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	req := dataset.UploadRequest{
		StartDate:  r.FormValue("start_date"),
		File:       file,
		FileHeader: fileHeader,
	}

	// Validate request
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	// Call service
	result, err := h.datasetService.Upload(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance sheet ingested", result)
}

// Get implements DatasetHandler.
func (h *datasetHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")

	result, err := h.datasetService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Facts implements DatasetHandler.
func (h *datasetHandlerImpl) Facts(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")
	filter := filterFromQuery(r)

	result, err := h.datasetService.ListFacts(r.Context(), id, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: int64(len(result))})
}

// Delete implements DatasetHandler.
func (h *datasetHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")

	if err := h.datasetService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Dataset deleted", nil)
}

// filterFromQuery reads the shared record filter from query parameters.
// Departments arrive comma-separated; an absent parameter leaves the
// dimension unfiltered.
func filterFromQuery(r *http.Request) dataset.Filter {
	var filter dataset.Filter

	q := r.URL.Query()
	if v := q.Get("employee"); v != "" {
		filter.Employee = &v
	}
	if v := q.Get("resident"); v != "" {
		filter.Resident = &v
	}
	if v := q.Get("departments"); v != "" {
		for _, dept := range strings.Split(v, ",") {
			if dept = strings.TrimSpace(dept); dept != "" {
				filter.Departments = append(filter.Departments, dept)
			}
		}
	}
	if v := q.Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := q.Get("end_date"); v != "" {
		filter.EndDate = &v
	}

	return filter
}
