package domain

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// DocumentType classifies the source document of a transaction.
type DocumentType string

const (
	DocumentTypeInvoice   DocumentType = "invoice"
	DocumentTypeReceipt   DocumentType = "receipt"
	DocumentTypeStatement DocumentType = "statement"
	DocumentTypeOther     DocumentType = "other"
)

// IsValid reports whether t is a known document type.
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypeInvoice, DocumentTypeReceipt, DocumentTypeStatement, DocumentTypeOther:
		return true
	}
	return false
}

// Category is a business spend category assigned upstream.
type Category string

const (
	CategoryOfficeSupplies Category = "office_supplies"
	CategoryTravel         Category = "travel"
	CategoryMeals          Category = "meals"
	CategoryUtilities      Category = "utilities"
	CategorySoftware       Category = "software"
	CategoryServices       Category = "professional_services"
	CategoryEquipment      Category = "equipment"
	CategoryRent           Category = "rent"
	CategoryOther          Category = "other"
)

// UncategorizedLabel is used for transactions without a category.
const UncategorizedLabel = "Uncategorized"

// FieldGroup names a group of extracted fields that share a confidence score.
type FieldGroup string

const (
	FieldGroupVendor  FieldGroup = "vendor"
	FieldGroupAmount  FieldGroup = "amount"
	FieldGroupDate    FieldGroup = "date"
	FieldGroupInvoice FieldGroup = "invoice_number"
)

// Transaction is one extracted financial record. It is immutable once read
// from a snapshot; corrections arrive upstream as replacement records with
// Corrected set.
type Transaction struct {
	ID            string
	DocumentID    string
	Vendor        string
	Amount        decimal.Decimal
	AmountMissing bool
	Date          *civil.Date
	Type          DocumentType
	Category      *Category
	InvoiceNumber *string
	Confidence    map[FieldGroup]float64
	Corrected     bool
}

// HasAmount reports whether the extraction produced an amount.
func (t *Transaction) HasAmount() bool {
	return !t.AmountMissing
}

// HasDate reports whether the transaction carries a valid calendar date.
func (t *Transaction) HasDate() bool {
	return t.Date != nil && t.Date.IsValid()
}

// Document is the source document that produced one or more transactions.
type Document struct {
	ID             string
	Filename       string
	StorageRef     string
	Type           DocumentType
	TransactionIDs []string
}

// Snapshot is the immutable set of records a single run operates on.
type Snapshot struct {
	Transactions []Transaction
	Documents    []Document
	TakenAt      time.Time
}

// DocumentsByID indexes the snapshot documents.
func (s *Snapshot) DocumentsByID() map[string]*Document {
	out := make(map[string]*Document, len(s.Documents))
	for i := range s.Documents {
		out[s.Documents[i].ID] = &s.Documents[i]
	}
	return out
}

// TransactionByID returns the transaction with the given ID.
func (s *Snapshot) TransactionByID(id string) (*Transaction, error) {
	for i := range s.Transactions {
		if s.Transactions[i].ID == id {
			return &s.Transactions[i], nil
		}
	}
	return nil, ErrTransactionNotFound
}

// DateRange is an inclusive, optionally open-ended range of calendar dates.
type DateRange struct {
	From *civil.Date
	To   *civil.Date
}

// Contains reports whether d falls inside the range.
func (r DateRange) Contains(d civil.Date) bool {
	if r.From != nil && d.Before(*r.From) {
		return false
	}
	if r.To != nil && d.After(*r.To) {
		return false
	}
	return true
}

// IsZero reports whether the range is unbounded on both ends.
func (r DateRange) IsZero() bool {
	return r.From == nil && r.To == nil
}
