package handler

import (
	"context"
	"net/http"

	"github.com/harshman7/insight-agent-idp/internal/adapter/http/dto"
	"github.com/harshman7/insight-agent-idp/internal/domain"
	"github.com/harshman7/insight-agent-idp/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	GenerateReport(ctx context.Context, req usecase.ReportRequest) (*domain.Report, error)
}

// ReportHandler handles report generation requests.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// Generate runs every enabled section and returns the merged report. A
// report with failed sections is still a 200; see the errors field.
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req dto.ReportRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, "invalid report request", err)
		return
	}

	report, err := h.reportUC.GenerateReport(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to generate report", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ReportFromDomain(report))
}
