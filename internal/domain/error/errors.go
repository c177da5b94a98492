package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidQrPayload    = 4001
	CodeInvalidAmount       = 4002
	CodeInvalidUserID       = 4003
	CodeDuplicateReceipt    = 4004
	CodeConstraintViolation = 4005
	CodeEmptyReceipt        = 4006
	CodeInvalidRequest      = 4007
	CodeUserNotFound        = 4040
	CodeTransactionNotFound = 4041
	CodeConcurrentUpdate    = 4090

	// 5xxx - Server and upstream errors
	CodeInternalServer           = 5000
	CodeFetchFailed              = 5021
	CodeParseFailed              = 5022
	CodePersistenceFailed        = 5031
	CodePersistenceInconsistency = 5032
)

// Base error types
var (
	// ErrInvalidQrPayload is returned when no receipt URL can be extracted from scanned text
	ErrInvalidQrPayload = errors.New("invalid QR payload")

	// ErrFetchFailed is returned when the fiscal endpoint cannot be reached or answers with a non-OK status
	ErrFetchFailed = errors.New("could not fetch receipt from fiscal system")

	// ErrParseFailed is returned when the fiscal page or its JSON response has an unexpected shape
	ErrParseFailed = errors.New("could not parse fiscal receipt")

	// ErrEmptyReceipt is returned when a fetched receipt carries no line items
	ErrEmptyReceipt = errors.New("no items found in receipt")

	// ErrDuplicateReceipt is returned when the same receipt has already been turned into a transaction
	ErrDuplicateReceipt = errors.New("receipt has already been scanned")

	// ErrPersistenceFailed is returned when the transaction write was rolled back
	ErrPersistenceFailed = errors.New("failed to persist transaction")

	// ErrPersistenceInconsistency is returned when the outcome of a multi-row write is unknown
	ErrPersistenceInconsistency = errors.New("persistence inconsistency")

	// ErrInvalidAmount is returned when a money amount has an invalid format
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNegativeAmount is returned when a money amount is negative
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidQuantity is returned when a line item quantity is not a positive integer
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")

	// ErrInvalidUserID is returned when the user ID is not a positive integer
	ErrInvalidUserID = errors.New("user ID must be positive")

	// ErrInvalidStore is returned when a store has no name
	ErrInvalidStore = errors.New("store name cannot be empty")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrStoreNotFound is returned when the requested store doesn't exist
	ErrStoreNotFound = errors.New("store not found")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrConcurrentUpdate is returned when the database aborted a write because of a concurrent one
	ErrConcurrentUpdate = errors.New("concurrent update conflict")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrDuplicateUser is returned when trying to create a user that already exists
	ErrDuplicateUser = errors.New("user already exists")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrRollbackFailed is returned by the unit of work when a failed write could not be rolled back
	ErrRollbackFailed = errors.New("transaction rollback failed")

	// ErrCommitFailed is returned by the unit of work when the final commit did not succeed
	ErrCommitFailed = errors.New("transaction commit failed")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrPersistenceInconsistency):
		return CodePersistenceInconsistency
	case errors.Is(err, ErrInvalidQrPayload):
		return CodeInvalidQrPayload
	case errors.Is(err, ErrFetchFailed):
		return CodeFetchFailed
	case errors.Is(err, ErrParseFailed):
		return CodeParseFailed
	case errors.Is(err, ErrEmptyReceipt):
		return CodeEmptyReceipt
	case errors.Is(err, ErrDuplicateReceipt):
		return CodeDuplicateReceipt
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrConcurrentUpdate):
		return CodeConcurrentUpdate
	case errors.Is(err, ErrPersistenceFailed):
		return CodePersistenceFailed
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrConstraintViolation):
		return CodeConstraintViolation
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	default:
		return CodeInternalServer
	}
}

// IsUserNotFoundError checks if the error is a user not found error
func IsUserNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrStoreNotFound)
}

// IsDuplicateReceiptError checks if the error reports an already scanned receipt
func IsDuplicateReceiptError(err error) bool {
	return errors.Is(err, ErrDuplicateReceipt)
}

// IsConcurrentUpdateError checks if the error was caused by a serialization failure or deadlock
func IsConcurrentUpdateError(err error) bool {
	return errors.Is(err, ErrConcurrentUpdate)
}

// UnitOfWorkError describes a failed atomic write
type UnitOfWorkError struct {
	Operation string
	Err       error
}

// Error implements the error interface for UnitOfWorkError
func (e *UnitOfWorkError) Error() string {
	return fmt.Sprintf("unit of work %s failed: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error
func (e *UnitOfWorkError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *UnitOfWorkError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "unit_of_work_error",
		"operation":  e.Operation,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}
