package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/harshman7/insight-agent-idp/internal/domain"
	"github.com/harshman7/insight-agent-idp/internal/infrastructure/postgres/generated"
)

func numericToDecimal(n pgtype.Numeric) (decimal.Decimal, bool, error) {
	if !n.Valid {
		return decimal.Zero, false, nil
	}
	if n.NaN || n.InfinityModifier != pgtype.Finite || n.Int == nil {
		return decimal.Zero, false, fmt.Errorf("non-finite amount")
	}
	return decimal.NewFromBigInt(n.Int, n.Exp), true, nil
}

func decimalToNumeric(d decimal.Decimal, missing bool) pgtype.Numeric {
	if missing {
		return pgtype.Numeric{}
	}
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

func dateFromPg(d pgtype.Date) *civil.Date {
	if !d.Valid || d.InfinityModifier != pgtype.Finite {
		return nil
	}
	cd := civil.DateOf(d.Time)
	return &cd
}

func dateToPg(d *civil.Date) pgtype.Date {
	if d == nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: d.In(time.UTC), Valid: true}
}

func textFromPg(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

func textToPg(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func toDomainTransaction(row generated.Transaction) (domain.Transaction, error) {
	amount, ok, err := numericToDecimal(row.Amount)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("transaction %s: %w", row.ID, err)
	}

	tx := domain.Transaction{
		ID:            row.ID,
		Vendor:        row.Vendor,
		Amount:        amount,
		AmountMissing: !ok,
		Date:          dateFromPg(row.TransactionDate),
		Type:          domain.DocumentType(row.DocumentType),
		InvoiceNumber: textFromPg(row.InvoiceNumber),
		Corrected:     row.Corrected,
	}
	if row.DocumentID.Valid {
		tx.DocumentID = row.DocumentID.String
	}
	if row.Category.Valid {
		c := domain.Category(row.Category.String)
		tx.Category = &c
	}
	if len(row.Confidence) > 0 {
		if err := json.Unmarshal(row.Confidence, &tx.Confidence); err != nil {
			return domain.Transaction{}, fmt.Errorf("transaction %s: invalid confidence: %w", row.ID, err)
		}
	}
	return tx, nil
}

func toUpsertTransactionParams(tx *domain.Transaction) (generated.UpsertTransactionParams, error) {
	conf := tx.Confidence
	if conf == nil {
		conf = map[domain.FieldGroup]float64{}
	}
	raw, err := json.Marshal(conf)
	if err != nil {
		return generated.UpsertTransactionParams{}, err
	}

	var category *string
	if tx.Category != nil {
		c := string(*tx.Category)
		category = &c
	}
	var documentID *string
	if tx.DocumentID != "" {
		documentID = &tx.DocumentID
	}

	return generated.UpsertTransactionParams{
		ID:              tx.ID,
		DocumentID:      textToPg(documentID),
		Vendor:          tx.Vendor,
		Amount:          decimalToNumeric(tx.Amount, tx.AmountMissing),
		TransactionDate: dateToPg(tx.Date),
		DocumentType:    string(tx.Type),
		Category:        textToPg(category),
		InvoiceNumber:   textToPg(tx.InvoiceNumber),
		Confidence:      raw,
		Corrected:       tx.Corrected,
	}, nil
}

func toDomainDocument(row generated.Document) domain.Document {
	return domain.Document{
		ID:         row.ID,
		Filename:   row.Filename,
		StorageRef: row.StorageRef,
		Type:       domain.DocumentType(row.DocumentType),
	}
}
