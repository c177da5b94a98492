package migration

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/receipt-points/internal/domain/entity"
	coremocks "github.com/amirhossein-jamali/receipt-points/mocks/port/core"
	persistencemocks "github.com/amirhossein-jamali/receipt-points/mocks/port/persistence"
)

func TestSeedDemoCatalog(t *testing.T) {
	newLogger := func(t *testing.T) *coremocks.MockLogger {
		logger := coremocks.NewMockLogger(t)
		logger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
		logger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()
		return logger
	}

	t.Run("should create only missing products", func(t *testing.T) {
		// Arrange
		repo := persistencemocks.NewMockProductRepository(t)
		repo.EXPECT().FindActive(mock.Anything).Return([]*entity.Product{
			{ID: "p-1", Name: "Test Product 1", PointsPerUnit: 10, Status: entity.ProductActive},
		}, nil).Once()

		var names []string
		repo.EXPECT().Create(mock.Anything, mock.AnythingOfType("*entity.Product")).
			RunAndReturn(func(_ context.Context, p *entity.Product) error {
				names = append(names, p.Name)
				return nil
			})

		// Act
		created, err := SeedDemoCatalog(context.Background(), repo, newLogger(t))

		// Assert
		require.NoError(t, err)
		assert.Equal(t, len(DemoCatalog)-1, created)
		assert.NotContains(t, names, "Test Product 1")
		assert.Contains(t, names, "Test Product 2")
	})

	t.Run("should stop at the first failed insert", func(t *testing.T) {
		// Arrange
		repo := persistencemocks.NewMockProductRepository(t)
		repo.EXPECT().FindActive(mock.Anything).Return(nil, nil).Once()
		repo.EXPECT().Create(mock.Anything, mock.Anything).Return(errors.New("boom")).Once()

		// Act
		created, err := SeedDemoCatalog(context.Background(), repo, newLogger(t))

		// Assert
		assert.Error(t, err)
		assert.Equal(t, 0, created)
	})
}
