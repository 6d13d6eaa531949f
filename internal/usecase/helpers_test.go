package usecase_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/harshman7/insight-agent-idp/internal/domain"
	"github.com/harshman7/insight-agent-idp/internal/usecase"
)

type staticReader struct {
	snap  *domain.Snapshot
	err   error
	calls int
}

func (r *staticReader) ReadSnapshot(_ context.Context, _ usecase.SnapshotFilter) (*domain.Snapshot, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	// Hand out a copy so callers cannot alias the fixture.
	txs := append([]domain.Transaction(nil), r.snap.Transactions...)
	docs := append([]domain.Document(nil), r.snap.Documents...)
	return &domain.Snapshot{Transactions: txs, Documents: docs, TakenAt: r.snap.TakenAt}, nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type seqIDs struct{ n int }

func (g *seqIDs) Generate() string {
	g.n++
	return fmt.Sprintf("rpt-%d", g.n)
}

func day(s string) *civil.Date {
	d, err := civil.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func txn(id, vendor, amount, date string, typ domain.DocumentType) domain.Transaction {
	t := domain.Transaction{
		ID:         id,
		DocumentID: "doc-" + id,
		Vendor:     vendor,
		Amount:     decimal.RequireFromString(amount),
		Type:       typ,
	}
	if date != "" {
		t.Date = day(date)
	}
	return t
}

func invoice(id, vendor, amount, date, number string) domain.Transaction {
	t := txn(id, vendor, amount, date, domain.DocumentTypeInvoice)
	t.InvoiceNumber = &number
	return t
}

func snapshotOf(txs ...domain.Transaction) *domain.Snapshot {
	return &domain.Snapshot{Transactions: txs, TakenAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
}

// concurrentReader is safe for concurrent use because it never mutates.
type concurrentReader struct{ snap *domain.Snapshot }

func (r *concurrentReader) ReadSnapshot(_ context.Context, _ usecase.SnapshotFilter) (*domain.Snapshot, error) {
	return r.snap, nil
}

type syncIDs struct{ n atomic.Int64 }

func (g *syncIDs) Generate() string {
	return fmt.Sprintf("rpt-%d", g.n.Add(1))
}
