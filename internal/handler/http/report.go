package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/diverse-infotech/attendance-insight-go/internal/domain/report"
	"github.com/diverse-infotech/attendance-insight-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	Overview(w http.ResponseWriter, r *http.Request)
	Daily(w http.ResponseWriter, r *http.Request)
	Monthly(w http.ResponseWriter, r *http.Request)
	Employees(w http.ResponseWriter, r *http.Request)
	Departments(w http.ResponseWriter, r *http.Request)
	ExportDaily(w http.ResponseWriter, r *http.Request)
	ExportMonthly(w http.ResponseWriter, r *http.Request)
	EmailSummary(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// Overview implements ReportHandler.
func (h *reportHandlerImpl) Overview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")

	result, err := h.reportService.Overview(r.Context(), id, filterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Daily implements ReportHandler.
func (h *reportHandlerImpl) Daily(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")

	result, err := h.reportService.Daily(r.Context(), id, filterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: int64(len(result))})
}

// Monthly implements ReportHandler.
func (h *reportHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")

	result, err := h.reportService.Monthly(r.Context(), id, filterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: int64(len(result))})
}

// Employees implements ReportHandler.
func (h *reportHandlerImpl) Employees(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")

	result, err := h.reportService.ByEmployee(r.Context(), id, filterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: int64(len(result))})
}

// Departments implements ReportHandler.
func (h *reportHandlerImpl) Departments(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")

	result, err := h.reportService.ByDepartment(r.Context(), id, filterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: int64(len(result))})
}

// ExportDaily implements ReportHandler.
func (h *reportHandlerImpl) ExportDaily(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")

	result, err := h.reportService.ExportDaily(r.Context(), id, filterFromQuery(r), exportFormat(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, result.Filename, result.ContentType, result.Data)
}

// ExportMonthly implements ReportHandler.
func (h *reportHandlerImpl) ExportMonthly(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")

	result, err := h.reportService.ExportMonthly(r.Context(), id, filterFromQuery(r), exportFormat(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, result.Filename, result.ContentType, result.Data)
}

// EmailSummary implements ReportHandler.
func (h *reportHandlerImpl) EmailSummary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")

	var req report.EmailSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode request body", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.ComposeSummaryEmail(r.Context(), id, filterFromQuery(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, result.Filename, result.ContentType, result.Data)
}

func exportFormat(r *http.Request) string {
	format := r.URL.Query().Get("format")
	if format == "" {
		return report.FormatCSV
	}
	return format
}
