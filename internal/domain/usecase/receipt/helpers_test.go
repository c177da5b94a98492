package receipt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/receipt-points/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/receipt-points/internal/domain/port/core"
	coremocks "github.com/amirhossein-jamali/receipt-points/mocks/port/core"
	persistencemocks "github.com/amirhossein-jamali/receipt-points/mocks/port/persistence"
)

var fixedTime = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func newPermissiveLogger(t *testing.T) *coremocks.MockLogger {
	logger := coremocks.NewMockLogger(t)
	logger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()
	return logger
}

func newFixedTime(t *testing.T) *coremocks.MockTimeProvider {
	timeProvider := coremocks.NewMockTimeProvider(t)
	timeProvider.EXPECT().Now().Return(fixedTime).Maybe()
	timeProvider.EXPECT().Since(mock.Anything).Return(coreport.Duration(0)).Maybe()
	return timeProvider
}

func activeProduct(id, name string, points int64) *entity.Product {
	return &entity.Product{ID: id, Name: name, PointsPerUnit: points, Status: entity.ProductActive}
}

type repositories struct {
	transactions *persistencemocks.MockTransactionRepository
	stores       *persistencemocks.MockStoreRepository
	products     *persistencemocks.MockProductRepository
	users        *persistencemocks.MockUserRepository
}

func newRepositories(t *testing.T) repositories {
	return repositories{
		transactions: persistencemocks.NewMockTransactionRepository(t),
		stores:       persistencemocks.NewMockStoreRepository(t),
		products:     persistencemocks.NewMockProductRepository(t),
		users:        persistencemocks.NewMockUserRepository(t),
	}
}

// newUnitOfWork returns a unit of work that runs its function once and returns the function's error
func newUnitOfWork(t *testing.T, repos repositories) *persistencemocks.MockUnitOfWork {
	uow := persistencemocks.NewMockUnitOfWork(t)
	uow.EXPECT().GetTransactionRepository(mock.Anything).Return(repos.transactions).Maybe()
	uow.EXPECT().GetStoreRepository(mock.Anything).Return(repos.stores).Maybe()
	uow.EXPECT().GetProductRepository(mock.Anything).Return(repos.products).Maybe()
	uow.EXPECT().GetUserRepository(mock.Anything).Return(repos.users).Maybe()
	uow.EXPECT().Do(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).Maybe()
	return uow
}

// newUnitOfWorkWithDoError returns a unit of work whose Do fails without running its function
func newUnitOfWorkWithDoError(t *testing.T, repos repositories, err error) *persistencemocks.MockUnitOfWork {
	uow := persistencemocks.NewMockUnitOfWork(t)
	uow.EXPECT().GetTransactionRepository(mock.Anything).Return(repos.transactions).Maybe()
	uow.EXPECT().GetProductRepository(mock.Anything).Return(repos.products).Maybe()
	uow.EXPECT().Do(mock.Anything, mock.Anything).Return(err).Once()
	return uow
}
