package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/harshman7/insight-agent-idp/internal/domain"
	"github.com/harshman7/insight-agent-idp/internal/usecase"
)

type fileDocument struct {
	ID         string `json:"id"`
	Filename   string `json:"filename"`
	StorageRef string `json:"storage_ref"`
	Type       string `json:"type"`
}

type fileTransaction struct {
	ID            string                        `json:"id"`
	DocumentID    string                        `json:"document_id"`
	Vendor        string                        `json:"vendor"`
	Amount        *decimal.Decimal              `json:"amount"`
	Date          *civil.Date                   `json:"date"`
	Type          string                        `json:"type"`
	Category      *string                       `json:"category"`
	InvoiceNumber *string                       `json:"invoice_number"`
	Confidence    map[domain.FieldGroup]float64 `json:"confidence"`
	Corrected     bool                          `json:"corrected"`
}

type snapshotFile struct {
	Documents    []fileDocument    `json:"documents"`
	Transactions []fileTransaction `json:"transactions"`
}

// SnapshotStore is an in-memory usecase.SnapshotReader. Every read returns
// a private copy, so a concurrent Replace never changes a snapshot in use.
type SnapshotStore struct {
	mu   sync.RWMutex
	snap domain.Snapshot
	now  func() time.Time
}

// NewSnapshotStore creates a store holding snap.
func NewSnapshotStore(snap domain.Snapshot) *SnapshotStore {
	return &SnapshotStore{snap: snap, now: time.Now}
}

// LoadFile reads a JSON snapshot file into a new store.
func LoadFile(path string) (*SnapshotStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	snap, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return NewSnapshotStore(*snap), nil
}

// Decode parses and validates a JSON snapshot.
func Decode(r io.Reader) (*domain.Snapshot, error) {
	var raw snapshotFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decode snapshot: %v", domain.ErrInput, err)
	}

	snap := &domain.Snapshot{
		Transactions: make([]domain.Transaction, 0, len(raw.Transactions)),
		Documents:    make([]domain.Document, 0, len(raw.Documents)),
	}
	idsByDoc := make(map[string][]string)
	for _, ft := range raw.Transactions {
		tx := domain.Transaction{
			ID:            ft.ID,
			DocumentID:    ft.DocumentID,
			Vendor:        ft.Vendor,
			Date:          ft.Date,
			Type:          domain.DocumentType(ft.Type),
			InvoiceNumber: ft.InvoiceNumber,
			Confidence:    ft.Confidence,
			Corrected:     ft.Corrected,
		}
		if ft.Amount == nil {
			tx.AmountMissing = true
		} else {
			tx.Amount = *ft.Amount
		}
		if ft.Category != nil {
			c := domain.Category(*ft.Category)
			tx.Category = &c
		}
		snap.Transactions = append(snap.Transactions, tx)
		if tx.DocumentID != "" {
			idsByDoc[tx.DocumentID] = append(idsByDoc[tx.DocumentID], tx.ID)
		}
	}
	if err := domain.ValidateTransactions(snap.Transactions); err != nil {
		return nil, err
	}

	for _, fd := range raw.Documents {
		t := domain.DocumentType(fd.Type)
		if !t.IsValid() {
			return nil, fmt.Errorf("%w: document %s has unknown type %q", domain.ErrInput, fd.ID, fd.Type)
		}
		snap.Documents = append(snap.Documents, domain.Document{
			ID:             fd.ID,
			Filename:       fd.Filename,
			StorageRef:     fd.StorageRef,
			Type:           t,
			TransactionIDs: idsByDoc[fd.ID],
		})
	}
	return snap, nil
}

// Replace swaps the stored snapshot.
func (s *SnapshotStore) Replace(snap domain.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
}

// Snapshot returns a copy of everything held by the store.
func (s *SnapshotStore) Snapshot() *domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked(domain.DateRange{})
}

// ReadSnapshot returns a copy narrowed to the filter's date range.
func (s *SnapshotStore) ReadSnapshot(ctx context.Context, filter usecase.SnapshotFilter) (*domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked(filter.Range), nil
}

func (s *SnapshotStore) copyLocked(rng domain.DateRange) *domain.Snapshot {
	out := &domain.Snapshot{
		Transactions: make([]domain.Transaction, 0, len(s.snap.Transactions)),
		Documents:    make([]domain.Document, 0, len(s.snap.Documents)),
		TakenAt:      s.now(),
	}
	for _, tx := range s.snap.Transactions {
		if !rng.IsZero() && (!tx.HasDate() || !rng.Contains(*tx.Date)) {
			continue
		}
		out.Transactions = append(out.Transactions, copyTransaction(tx))
	}
	for _, d := range s.snap.Documents {
		d.TransactionIDs = append([]string(nil), d.TransactionIDs...)
		out.Documents = append(out.Documents, d)
	}
	return out
}

func copyTransaction(tx domain.Transaction) domain.Transaction {
	if tx.Date != nil {
		d := *tx.Date
		tx.Date = &d
	}
	if tx.Category != nil {
		c := *tx.Category
		tx.Category = &c
	}
	if tx.InvoiceNumber != nil {
		n := *tx.InvoiceNumber
		tx.InvoiceNumber = &n
	}
	if tx.Confidence != nil {
		conf := make(map[domain.FieldGroup]float64, len(tx.Confidence))
		for k, v := range tx.Confidence {
			conf[k] = v
		}
		tx.Confidence = conf
	}
	return tx
}
