package analysis

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/harshman7/insight-agent-idp/internal/domain"
)

func date(s string) *civil.Date {
	d, err := civil.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func tx(id, vendor, amount, day string, typ domain.DocumentType) domain.Transaction {
	t := domain.Transaction{
		ID:         id,
		DocumentID: "doc-" + id,
		Vendor:     vendor,
		Amount:     decimal.RequireFromString(amount),
		Type:       typ,
	}
	if day != "" {
		t.Date = date(day)
	}
	return t
}

func ptr[T any](v T) *T { return &v }
