package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/receipt-points/internal/domain/entity"
	errs "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
	coreport "github.com/amirhossein-jamali/receipt-points/internal/domain/port/core"
	"github.com/amirhossein-jamali/receipt-points/internal/infrastructure/adapter/model"
)

// TransactionRepository implements TransactionRepository interface using GORM
type TransactionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// entityToModel converts a transaction entity to a database model without its items
func (r *TransactionRepository) entityToModel(tx *entity.Transaction) model.Transaction {
	return model.Transaction{
		ID:          tx.ID,
		UserID:      tx.UserID,
		StoreID:     tx.StoreID,
		TotalPoints: tx.TotalPoints,
		TotalAmount: tx.TotalAmount,
		ReceiptKey:  tx.ReceiptKey,
		RawPayload:  tx.RawPayload,
		TestMode:    tx.TestMode,
		CreatedAt:   tx.CreatedAt,
	}
}

func itemToModel(item *entity.TransactionItem) model.TransactionItem {
	return model.TransactionItem{
		ID:            item.ID,
		TransactionID: item.TransactionID,
		LineNumber:    item.LineNumber,
		ProductName:   item.ProductName,
		Quantity:      item.Quantity,
		Price:         item.Price,
		UnitPrice:     item.UnitPrice,
		ProductID:     item.ProductID,
		Points:        item.Points,
		Matched:       item.Matched,
	}
}

// modelToEntity converts a loaded transaction model, items and store included, to an entity
func (r *TransactionRepository) modelToEntity(m *model.Transaction) *entity.Transaction {
	tx := &entity.Transaction{
		ID:          m.ID,
		UserID:      m.UserID,
		StoreID:     m.StoreID,
		TotalPoints: m.TotalPoints,
		TotalAmount: m.TotalAmount,
		ReceiptKey:  m.ReceiptKey,
		RawPayload:  m.RawPayload,
		TestMode:    m.TestMode,
		CreatedAt:   m.CreatedAt,
		Items:       make([]entity.TransactionItem, len(m.Items)),
	}

	for i, item := range m.Items {
		tx.Items[i] = entity.TransactionItem{
			ID:            item.ID,
			TransactionID: item.TransactionID,
			LineNumber:    item.LineNumber,
			ProductName:   item.ProductName,
			Quantity:      item.Quantity,
			Price:         item.Price,
			UnitPrice:     item.UnitPrice,
			ProductID:     item.ProductID,
			Points:        item.Points,
			Matched:       item.Matched,
		}
	}

	if m.Store.ID != "" {
		tx.Store = modelToStore(&m.Store)
	}

	return tx
}

// Create saves a new transaction row. Items are written separately with CreateItem.
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	r.logger.Debug("Creating transaction", map[string]any{
		"transaction_id": transaction.ID,
		"user_id":        transaction.UserID,
	})

	transactionModel := r.entityToModel(transaction)

	result := r.db.WithContext(ctx).Omit(clause.Associations).Create(&transactionModel)
	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			r.logger.Info("Receipt already stored", map[string]any{
				"transaction_id": transaction.ID,
				"user_id":        transaction.UserID,
			})
			return fmt.Errorf("%w: %s", errs.ErrDuplicateReceipt, result.Error.Error())
		}

		r.logger.Error("Failed to create transaction", map[string]any{
			"transaction_id": transaction.ID,
			"user_id":        transaction.UserID,
			"error":          result.Error.Error(),
		})
		return r.errorClassifier.ToDomainError(result.Error, errs.ErrDuplicateReceipt)
	}

	return nil
}

// CreateItem saves one line of an already created transaction
func (r *TransactionRepository) CreateItem(ctx context.Context, item *entity.TransactionItem) error {
	itemModel := itemToModel(item)

	if err := r.db.WithContext(ctx).Create(&itemModel).Error; err != nil {
		r.logger.Error("Failed to create transaction item", map[string]any{
			"transaction_id": item.TransactionID,
			"line_number":    item.LineNumber,
			"error":          err.Error(),
		})
		return r.errorClassifier.ToDomainError(err, errs.ErrConstraintViolation)
	}

	return nil
}

// ExistsByReceiptKey checks if a transaction with the receipt key exists
func (r *TransactionRepository) ExistsByReceiptKey(ctx context.Context, receiptKey string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("receipt_key = ?", receiptKey).
		Count(&count)

	if result.Error != nil {
		r.logger.Error("Failed to check receipt key", map[string]any{
			"error": result.Error.Error(),
		})
		return false, r.errorClassifier.ToDomainError(result.Error, errs.ErrDuplicateReceipt)
	}

	return count > 0, nil
}

// GetByID retrieves a transaction with its items in line order and its store
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	var transactionModel model.Transaction
	result := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_number ASC")
		}).
		Preload("Store").
		Where("id = ?", id).
		First(&transactionModel)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTransactionNotFound
		}

		r.logger.Error("Failed to get transaction", map[string]any{
			"transaction_id": id,
			"error":          result.Error.Error(),
		})
		return nil, r.errorClassifier.ToDomainError(result.Error, errs.ErrDuplicateReceipt)
	}

	return r.modelToEntity(&transactionModel), nil
}

// ListByUser returns a page of the user's transactions, newest first
func (r *TransactionRepository) ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]*entity.Transaction, error) {
	var models []model.Transaction
	result := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_number ASC")
		}).
		Preload("Store").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&models)

	if result.Error != nil {
		r.logger.Error("Failed to list transactions", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return nil, r.errorClassifier.ToDomainError(result.Error, errs.ErrDuplicateReceipt)
	}

	transactions := make([]*entity.Transaction, len(models))
	for i := range models {
		transactions[i] = r.modelToEntity(&models[i])
	}

	r.logger.Debug("Transactions listed", map[string]any{
		"user_id": userID,
		"count":   len(transactions),
	})

	return transactions, nil
}
