package usecase

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/harshman7/insight-agent-idp/internal/domain"
)

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// processingDate resolves the date anomalies are judged against.
func processingDate(clock Clock, asOf *civil.Date) civil.Date {
	if asOf != nil {
		return *asOf
	}
	return civil.DateOf(clock.Now().UTC())
}

type nopObserver struct{}

func (nopObserver) ObserveSection(domain.Section, time.Duration, error) {}
func (nopObserver) ObserveReport(*domain.Report)                        {}
func (nopObserver) ObserveCache(bool)                                   {}
