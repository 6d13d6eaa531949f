package domain

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Trend classifies the slope of a spend forecast.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// Month is a calendar month.
type Month struct {
	Year  int
	Month int
}

// MonthOf returns the month containing d.
func MonthOf(d civil.Date) Month {
	return Month{Year: d.Year, Month: int(d.Month)}
}

// Index returns a monotonically increasing month number.
func (m Month) Index() int {
	return m.Year*12 + (m.Month - 1)
}

// MonthFromIndex is the inverse of Index.
func MonthFromIndex(idx int) Month {
	return Month{Year: idx / 12, Month: idx%12 + 1}
}

// Add returns the month n months after m.
func (m Month) Add(n int) Month {
	return MonthFromIndex(m.Index() + n)
}

// String formats the month as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

// MonthlyTotal is the summed amount of one calendar month.
type MonthlyTotal struct {
	Month            Month
	Total            decimal.Decimal
	TransactionCount int
}

// ForecastPoint is a projected monthly total.
type ForecastPoint struct {
	Month           Month
	PredictedAmount decimal.Decimal
}

// Forecast is a short-horizon spend projection. When Available is false the
// projection is empty and Reason explains why.
type Forecast struct {
	Available bool
	Reason    string
	Horizon   int
	History   []MonthlyTotal
	Points    []ForecastPoint
	Trend     Trend
	Slope     float64
	Intercept float64
}
