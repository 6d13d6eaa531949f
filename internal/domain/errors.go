package domain

import "errors"

var (
	// Analysis error taxonomy
	ErrInput            = errors.New("invalid input")
	ErrInsufficientData = errors.New("insufficient data")
	ErrComputation      = errors.New("computation failed")

	// Lookup errors
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrVendorNotFound      = errors.New("vendor not found")
)

// ClassifyError maps an error onto the section error taxonomy.
func ClassifyError(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrInput):
		return ErrorKindInput
	case errors.Is(err, ErrInsufficientData):
		return ErrorKindInsufficientData
	default:
		return ErrorKindComputation
	}
}
