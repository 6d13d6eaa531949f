package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/harshman7/insight-agent-idp/internal/adapter/http/dto"
	"github.com/harshman7/insight-agent-idp/internal/usecase"
)

// ExportService defines the behavior needed by ExportHandler.
type ExportService interface {
	ExportWorkbook(ctx context.Context, req usecase.ReportRequest) (*usecase.ExportResult, error)
	SummaryMarkdown(ctx context.Context, req usecase.ReportRequest) (string, error)
}

// ExportHandler handles report exports.
type ExportHandler struct {
	exportUC ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportUC ExportService) *ExportHandler {
	return &ExportHandler{exportUC: exportUC}
}

// Workbook renders the report as xlsx. When the export was stored the
// response is a JSON pointer to it; otherwise the file is streamed back.
func (h *ExportHandler) Workbook(w http.ResponseWriter, r *http.Request) {
	var req dto.ReportRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, "invalid export request", err)
		return
	}

	res, err := h.exportUC.ExportWorkbook(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to export workbook", err)
		return
	}

	if res.Location != "" {
		writeJSON(w, http.StatusCreated, dto.ExportResponse{
			Name:     res.Name,
			Location: res.Location,
			Bytes:    len(res.Data),
		})
		return
	}

	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(res.Data)
}

// Summary renders a markdown digest of the report.
func (h *ExportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	rng, err := parseRangeQuery(r)
	if err != nil {
		writeDomainError(w, "invalid range", err)
		return
	}
	asOf, err := dto.ParseDate("as_of", r.URL.Query().Get("as_of"))
	if err != nil {
		writeDomainError(w, "invalid as_of", err)
		return
	}

	md, err := h.exportUC.SummaryMarkdown(r.Context(), usecase.ReportRequest{
		Range:  rng,
		Vendor: r.URL.Query().Get("vendor"),
		AsOf:   asOf,
	})
	if err != nil {
		writeDomainError(w, "failed to render summary", err)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(md))
}
