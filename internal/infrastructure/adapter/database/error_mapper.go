package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	domainErr "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
	"github.com/amirhossein-jamali/receipt-points/internal/infrastructure/adapter/repository"
)

// EntityType represents the type of entity for errors mapping
type EntityType string

const (
	EntityTypeUser        EntityType = "user"
	EntityTypeStore       EntityType = "store"
	EntityTypeProduct     EntityType = "product"
	EntityTypeTransaction EntityType = "transaction"
)

// ErrorMapper maps database errors to domain errors
type ErrorMapper struct {
	classifier *repository.ErrorClassifier
}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{classifier: repository.NewErrorClassifier()}
}

// IsConcurrencyConflict reports whether err is a serialization failure, deadlock or lock timeout
func (m *ErrorMapper) IsConcurrencyConflict(err error) bool {
	return err != nil && (domainErr.IsConcurrentUpdateError(err) || m.classifier.IsLockError(err))
}

// MapError maps a database error to a domain error
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr.ErrNotFound
	}

	switch m.classifier.Classify(err) {
	case repository.LockError:
		return fmt.Errorf("%w: %s: %v", domainErr.ErrConcurrentUpdate, operation, err)
	case repository.DuplicateKeyError, repository.ConstraintError:
		return fmt.Errorf("%w: %s: %v", domainErr.ErrConstraintViolation, operation, err)
	default:
		return fmt.Errorf("%w: %s: %v", domainErr.ErrDatabaseConnection, operation, err)
	}
}

// MapEntityNotFoundError maps database errors to specific entity not found errors
func (m *ErrorMapper) MapEntityNotFoundError(err error, entityType EntityType) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		switch entityType {
		case EntityTypeUser:
			return domainErr.ErrUserNotFound
		case EntityTypeStore:
			return domainErr.ErrStoreNotFound
		case EntityTypeTransaction:
			return domainErr.ErrTransactionNotFound
		default:
			return domainErr.ErrNotFound
		}
	}

	return m.MapError(err, string(entityType))
}
