package handler

import (
	"context"
	"net/http"

	"github.com/harshman7/insight-agent-idp/internal/adapter/http/dto"
	"github.com/harshman7/insight-agent-idp/internal/domain"
	"github.com/harshman7/insight-agent-idp/internal/usecase"
)

// ForecastService defines the behavior needed by ForecastHandler.
type ForecastService interface {
	Forecast(ctx context.Context, req usecase.ForecastRequest) (*domain.Forecast, error)
}

// ForecastHandler handles spend forecast requests.
type ForecastHandler struct {
	forecastUC ForecastService
}

// NewForecastHandler creates a new ForecastHandler.
func NewForecastHandler(forecastUC ForecastService) *ForecastHandler {
	return &ForecastHandler{forecastUC: forecastUC}
}

// Create projects monthly spend. Too little history is not an error: the
// response carries available=false and a reason.
func (h *ForecastHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ForecastRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, "invalid forecast request", err)
		return
	}

	fc, err := h.forecastUC.Forecast(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to build forecast", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ForecastFromDomain(fc))
}
