package usecase_test

import (
	"context"

	"github.com/orekiez/pudu-field/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockPuntoRepository is a mock of PuntoRepository
type MockPuntoRepository struct {
	mock.Mock
}

func (m *MockPuntoRepository) List(ctx context.Context) ([]domain.Punto, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Punto), args.Error(1)
}

func (m *MockPuntoRepository) Create(ctx context.Context, draft domain.Punto) (*domain.Punto, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Punto), args.Error(1)
}

func (m *MockPuntoRepository) Update(ctx context.Context, id int64, draft domain.Punto) (*domain.Punto, error) {
	args := m.Called(ctx, id, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Punto), args.Error(1)
}

func (m *MockPuntoRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
