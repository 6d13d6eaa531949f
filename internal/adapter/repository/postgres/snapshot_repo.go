package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/harshman7/insight-agent-idp/internal/domain"
	"github.com/harshman7/insight-agent-idp/internal/infrastructure/postgres/generated"
	"github.com/harshman7/insight-agent-idp/internal/usecase"
)

// ReadObserver records snapshot read outcomes.
type ReadObserver interface {
	ObserveSnapshotRead(elapsed time.Duration, err error)
}

type nopReadObserver struct{}

func (nopReadObserver) ObserveSnapshotRead(time.Duration, error) {}

// SnapshotRepository implements usecase.SnapshotReader on PostgreSQL.
type SnapshotRepository struct {
	txm      *TxManager
	retrier  *Retrier
	observer ReadObserver
	now      func() time.Time
	logger   zerolog.Logger
}

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(pool *pgxpool.Pool, logger zerolog.Logger, observer ReadObserver) *SnapshotRepository {
	return newSnapshotRepository(pool, logger, observer)
}

func newSnapshotRepository(pool pgxPool, logger zerolog.Logger, observer ReadObserver) *SnapshotRepository {
	if observer == nil {
		observer = nopReadObserver{}
	}
	return &SnapshotRepository{
		txm:      newTxManagerWithPool(pool),
		retrier:  NewRetrier(logger),
		observer: observer,
		now:      time.Now,
		logger:   logger,
	}
}

// ReadSnapshot loads documents and transactions inside one read-only
// repeatable-read transaction.
func (r *SnapshotRepository) ReadSnapshot(ctx context.Context, filter usecase.SnapshotFilter) (*domain.Snapshot, error) {
	start := r.now()

	var snap *domain.Snapshot
	err := r.retrier.Retry(ctx, func() error {
		s, err := r.readOnce(ctx, filter)
		if err != nil {
			return err
		}
		snap = s
		return nil
	})
	r.observer.ObserveSnapshotRead(r.now().Sub(start), err)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	r.logger.Debug().
		Int("transactions", len(snap.Transactions)).
		Int("documents", len(snap.Documents)).
		Msg("snapshot read")
	return snap, nil
}

func (r *SnapshotRepository) readOnce(ctx context.Context, filter usecase.SnapshotFilter) (*domain.Snapshot, error) {
	tx, err := r.txm.BeginSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Close(ctx)

	q := generated.New(tx.PgxTx())

	docRows, err := q.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	txRows, err := q.ListTransactions(ctx, generated.ListTransactionsParams{
		FromDate: dateToPg(filter.Range.From),
		ToDate:   dateToPg(filter.Range.To),
	})
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	snap := &domain.Snapshot{
		Transactions: make([]domain.Transaction, 0, len(txRows)),
		Documents:    make([]domain.Document, 0, len(docRows)),
		TakenAt:      r.now(),
	}
	for _, row := range txRows {
		t, err := toDomainTransaction(row)
		if err != nil {
			return nil, err
		}
		snap.Transactions = append(snap.Transactions, t)
	}

	idsByDoc := make(map[string][]string)
	for _, t := range snap.Transactions {
		if t.DocumentID != "" {
			idsByDoc[t.DocumentID] = append(idsByDoc[t.DocumentID], t.ID)
		}
	}
	for _, row := range docRows {
		d := toDomainDocument(row)
		d.TransactionIDs = idsByDoc[d.ID]
		snap.Documents = append(snap.Documents, d)
	}
	return snap, nil
}

// ImportSnapshot upserts every document and transaction of snap in one
// transaction. Records are validated first; nothing is written when any
// record is invalid.
func (r *SnapshotRepository) ImportSnapshot(ctx context.Context, snap *domain.Snapshot) error {
	if err := domain.ValidateTransactions(snap.Transactions); err != nil {
		return err
	}

	params := make([]generated.UpsertTransactionParams, 0, len(snap.Transactions))
	for i := range snap.Transactions {
		p, err := toUpsertTransactionParams(&snap.Transactions[i])
		if err != nil {
			return fmt.Errorf("transaction %s: %w", snap.Transactions[i].ID, err)
		}
		params = append(params, p)
	}

	err := r.retrier.Retry(ctx, func() error {
		tx, err := r.txm.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Close(ctx)

		q := generated.New(tx.PgxTx())
		for _, d := range snap.Documents {
			if err := q.UpsertDocument(ctx, generated.UpsertDocumentParams{
				ID:           d.ID,
				Filename:     d.Filename,
				StorageRef:   d.StorageRef,
				DocumentType: string(d.Type),
			}); err != nil {
				return fmt.Errorf("document %s: %w", d.ID, err)
			}
		}
		for _, p := range params {
			if err := q.UpsertTransaction(ctx, p); err != nil {
				return fmt.Errorf("transaction %s: %w", p.ID, err)
			}
		}
		return tx.Commit(ctx)
	})
	if err != nil {
		return fmt.Errorf("import snapshot: %w", err)
	}

	r.logger.Info().
		Int("transactions", len(snap.Transactions)).
		Int("documents", len(snap.Documents)).
		Msg("snapshot imported")
	return nil
}
