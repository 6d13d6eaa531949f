package dto

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/harshman7/insight-agent-idp/internal/analysis"
	"github.com/harshman7/insight-agent-idp/internal/domain"
	"github.com/harshman7/insight-agent-idp/internal/usecase"
)

// RangeRequest is the date range and vendor scope shared by requests.
// Dates use the YYYY-MM-DD form; empty means unbounded.
type RangeRequest struct {
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
	Vendor string `json:"vendor,omitempty"`
}

// ParseDate parses an optional YYYY-MM-DD date.
func ParseDate(field, value string) (*civil.Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	d, err := civil.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD", domain.ErrInput, field)
	}
	return &d, nil
}

// ParseRange parses a from/to pair into a validated range.
func ParseRange(from, to string) (domain.DateRange, error) {
	f, err := ParseDate("from", from)
	if err != nil {
		return domain.DateRange{}, err
	}
	t, err := ParseDate("to", to)
	if err != nil {
		return domain.DateRange{}, err
	}
	rng := domain.DateRange{From: f, To: t}
	if err := rng.Validate(); err != nil {
		return domain.DateRange{}, err
	}
	return rng, nil
}

// DateRange converts the request's from/to fields.
func (r *RangeRequest) DateRange() (domain.DateRange, error) {
	return ParseRange(r.From, r.To)
}

// ReportRequest represents a request to generate a report.
type ReportRequest struct {
	RangeRequest
	Sections []string `json:"sections,omitempty"`
	AsOf     string   `json:"as_of,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *ReportRequest) ToUseCaseInput() (usecase.ReportRequest, error) {
	rng, err := r.DateRange()
	if err != nil {
		return usecase.ReportRequest{}, err
	}
	asOf, err := ParseDate("as_of", r.AsOf)
	if err != nil {
		return usecase.ReportRequest{}, err
	}

	sections := make([]domain.Section, 0, len(r.Sections))
	for _, s := range r.Sections {
		sections = append(sections, domain.Section(strings.TrimSpace(s)))
	}

	return usecase.ReportRequest{
		Range:    rng,
		Vendor:   r.Vendor,
		Sections: sections,
		AsOf:     asOf,
	}, nil
}

// MatchRequest represents a receipt matching request. Threshold and
// WindowDays override the configured values when set.
type MatchRequest struct {
	RangeRequest
	Threshold  *float64 `json:"threshold,omitempty"`
	WindowDays *int     `json:"window_days,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *MatchRequest) ToUseCaseInput() (usecase.MatchRequest, error) {
	rng, err := r.DateRange()
	if err != nil {
		return usecase.MatchRequest{}, err
	}
	return usecase.MatchRequest{
		Range:      rng,
		Vendor:     r.Vendor,
		Threshold:  r.Threshold,
		WindowDays: r.WindowDays,
	}, nil
}

// ForecastRequest represents a spend forecast request.
type ForecastRequest struct {
	RangeRequest
	Horizon int `json:"horizon,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *ForecastRequest) ToUseCaseInput() (usecase.ForecastRequest, error) {
	rng, err := r.DateRange()
	if err != nil {
		return usecase.ForecastRequest{}, err
	}
	if r.Horizon < 0 || r.Horizon > analysis.MaxForecastHorizon {
		return usecase.ForecastRequest{}, fmt.Errorf("%w: horizon must be between 1 and %d", domain.ErrInput, analysis.MaxForecastHorizon)
	}
	return usecase.ForecastRequest{
		Range:   rng,
		Vendor:  r.Vendor,
		Horizon: r.Horizon,
	}, nil
}
