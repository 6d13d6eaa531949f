package analysis

import (
	"fmt"
	"strings"

	"github.com/harshman7/insight-agent-idp/internal/domain"
)

// RequiredField names a field the completeness rules can demand.
type RequiredField string

const (
	FieldVendor        RequiredField = "vendor"
	FieldAmount        RequiredField = "amount"
	FieldInvoiceNumber RequiredField = "invoice_number"
	FieldDate          RequiredField = "date"
)

var requiredFields = map[domain.DocumentType][]RequiredField{
	domain.DocumentTypeInvoice:   {FieldVendor, FieldAmount, FieldInvoiceNumber, FieldDate},
	domain.DocumentTypeReceipt:   {FieldVendor, FieldAmount, FieldDate},
	domain.DocumentTypeStatement: {FieldVendor, FieldDate},
}

// RequiredFields returns the fields a document type must carry.
func RequiredFields(t domain.DocumentType) []RequiredField {
	return requiredFields[t]
}

func hasField(tx *domain.Transaction, f RequiredField) bool {
	switch f {
	case FieldVendor:
		return strings.TrimSpace(tx.Vendor) != ""
	case FieldAmount:
		return tx.HasAmount()
	case FieldInvoiceNumber:
		return tx.InvoiceNumber != nil && strings.TrimSpace(*tx.InvoiceNumber) != ""
	case FieldDate:
		return tx.HasDate()
	}
	return true
}

// CheckCompleteness emits one finding per transaction missing any field its
// document type requires. A transaction without a type inherits the type of
// its owning document.
func CheckCompleteness(txs []domain.Transaction, docs []domain.Document) []domain.Finding {
	docByID := make(map[string]*domain.Document, len(docs))
	for i := range docs {
		docByID[docs[i].ID] = &docs[i]
	}

	var findings []domain.Finding
	for i := range txs {
		tx := &txs[i]
		doc := docByID[tx.DocumentID]

		docType := tx.Type
		if !docType.IsValid() && doc != nil {
			docType = doc.Type
		}

		var missing []string
		for _, f := range requiredFields[docType] {
			if !hasField(tx, f) {
				missing = append(missing, string(f))
			}
		}
		if len(missing) == 0 {
			continue
		}

		sev := domain.SeverityMedium
		if len(missing) >= 2 {
			sev = domain.SeverityHigh
		}
		detail := fmt.Sprintf("%s is missing %s", docType, strings.Join(missing, ", "))
		if doc != nil && doc.Filename != "" {
			detail += fmt.Sprintf(" (document %s)", doc.Filename)
		}
		findings = append(findings, domain.Finding{
			TransactionIDs: []string{tx.ID},
			Kind:           domain.FindingKindMissingField,
			Severity:       sev,
			Detail:         detail,
			Score:          float64(len(missing)),
			Section:        domain.SectionCompleteness,
		})
	}
	return findings
}
