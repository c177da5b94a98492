package migration

import (
	"context"

	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/receipt-points/internal/domain/port/core"
)

// indexStatements are the PostgreSQL indexes not expressible as gorm tags
var indexStatements = []struct {
	name string
	sql  string
}{
	{
		name: "idx_products_active_name",
		sql: `CREATE INDEX IF NOT EXISTS idx_products_active_name
			ON products (name, id) WHERE status = 'ACTIVE'`,
	},
	{
		name: "idx_transactions_user_created",
		sql: `CREATE INDEX IF NOT EXISTS idx_transactions_user_created
			ON transactions (user_id, created_at DESC, id DESC)`,
	},
	{
		name: "idx_transaction_items_transaction_line",
		sql: `CREATE UNIQUE INDEX IF NOT EXISTS idx_transaction_items_transaction_line
			ON transaction_items (transaction_id, line_number)`,
	},
	{
		name: "idx_transactions_created_at_brin",
		sql: `CREATE INDEX IF NOT EXISTS idx_transactions_created_at_brin
			ON transactions USING BRIN (created_at)
			WITH (pages_per_range = 32)`,
	},
}

// IndexManager manages PostgreSQL-specific indexes and storage settings
type IndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewIndexManager creates a new index manager
func NewIndexManager(db *gorm.DB, logger coreport.Logger) *IndexManager {
	return &IndexManager{
		db:     db,
		logger: logger,
	}
}

// CreateIndexes creates the composite, partial and BRIN indexes
func (m *IndexManager) CreateIndexes(ctx context.Context) error {
	m.logger.Info("Creating PostgreSQL indexes", nil)

	for _, index := range indexStatements {
		if err := m.db.WithContext(ctx).Exec(index.sql).Error; err != nil {
			m.logger.Error("Failed to create index", map[string]any{
				"index": index.name,
				"error": err.Error(),
			})
			return err
		}
	}

	m.logger.Info("PostgreSQL indexes created successfully", map[string]any{
		"count": len(indexStatements),
	})
	return nil
}

// ApplyPerformanceTweaks applies storage settings. Failures are logged and ignored.
func (m *IndexManager) ApplyPerformanceTweaks(ctx context.Context) {
	tweaks := []string{
		`ALTER TABLE users SET (fillfactor = 90)`,
		`ALTER TABLE transactions ALTER COLUMN user_id SET STATISTICS 1000`,
	}

	for _, sql := range tweaks {
		if err := m.db.WithContext(ctx).Exec(sql).Error; err != nil {
			m.logger.Warn("Failed to apply performance tweak", map[string]any{
				"sql":   sql,
				"error": err.Error(),
			})
		}
	}
}
