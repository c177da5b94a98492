package error

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed receipt scan
type ErrorKind int

const (
	// KindUnknown is the zero value and never produced by the scan pipeline
	KindUnknown ErrorKind = iota
	// KindInvalidQrPayload - no extractable URL in the scanned text
	KindInvalidQrPayload
	// KindFetchFailed - transport error or non-OK status from the fiscal endpoint
	KindFetchFailed
	// KindParseFailed - invoice tokens missing or upstream response not valid JSON
	KindParseFailed
	// KindEmptyReceipt - the receipt has nothing to award points for
	KindEmptyReceipt
	// KindDuplicateReceipt - the receipt was already turned into a transaction
	KindDuplicateReceipt
	// KindPersistenceFailed - the write was rolled back, nothing was stored
	KindPersistenceFailed
	// KindPersistenceInconsistency - the outcome of the write is unknown
	KindPersistenceInconsistency
)

var kindNames = map[ErrorKind]string{
	KindUnknown:                  "Unknown",
	KindInvalidQrPayload:         "InvalidQrPayload",
	KindFetchFailed:              "FetchFailed",
	KindParseFailed:              "ParseFailed",
	KindEmptyReceipt:             "EmptyReceipt",
	KindDuplicateReceipt:         "DuplicateReceipt",
	KindPersistenceFailed:        "PersistenceFailed",
	KindPersistenceInconsistency: "PersistenceInconsistency",
}

var kindSentinels = map[ErrorKind]error{
	KindInvalidQrPayload:         ErrInvalidQrPayload,
	KindFetchFailed:              ErrFetchFailed,
	KindParseFailed:              ErrParseFailed,
	KindEmptyReceipt:             ErrEmptyReceipt,
	KindDuplicateReceipt:         ErrDuplicateReceipt,
	KindPersistenceFailed:        ErrPersistenceFailed,
	KindPersistenceInconsistency: ErrPersistenceInconsistency,
}

// String returns the name of the kind
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Retryable reports whether rescanning the same receipt may succeed
func (k ErrorKind) Retryable() bool {
	switch k {
	case KindFetchFailed, KindParseFailed, KindPersistenceFailed:
		return true
	default:
		return false
	}
}

// ScanError is the tagged failure returned by every stage of the scan pipeline
type ScanError struct {
	Kind   ErrorKind
	Detail string
	Err    error
}

// NewScanError creates a scan error of the given kind
func NewScanError(kind ErrorKind, detail string, err error) *ScanError {
	return &ScanError{
		Kind:   kind,
		Detail: detail,
		Err:    err,
	}
}

// Error implements the error interface
func (e *ScanError) Error() string {
	msg := e.Kind.String()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error
func (e *ScanError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel error that belongs to the kind
func (e *ScanError) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && target == sentinel
}

// Message returns the human readable diagnostic shown to users
func (e *ScanError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	if sentinel, ok := kindSentinels[e.Kind]; ok {
		return sentinel.Error()
	}
	return ErrInternalServer.Error()
}

// LogFields returns a map of fields for structured logging
func (e *ScanError) LogFields() map[string]any {
	fields := map[string]any{
		"error_type": "scan_error",
		"error_kind": e.Kind.String(),
		"retryable":  e.Kind.Retryable(),
		"detail":     e.Detail,
		"error_code": ErrorCode(e),
	}
	if e.Err != nil {
		fields["error"] = e.Err.Error()
	}
	return fields
}

// KindOf returns the kind carried by err, or KindUnknown when err is not a scan error
func KindOf(err error) ErrorKind {
	var scanErr *ScanError
	if errors.As(err, &scanErr) {
		return scanErr.Kind
	}
	return KindUnknown
}
