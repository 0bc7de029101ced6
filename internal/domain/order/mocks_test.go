package order

import (
	"context"

	"github.com/mundipagg/gateway-core/internal/model"
	"github.com/stretchr/testify/mock"
)

// --- Mock implementations ---

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateOrder(ctx context.Context, order *model.PaymentOrder, idempotencyKey string) (*model.Order, error) {
	args := m.Called(ctx, order, idempotencyKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockGateway) GetOrder(ctx context.Context, mundipaggID string) (*model.Order, error) {
	args := m.Called(ctx, mundipaggID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockGateway) CancelCharge(ctx context.Context, chargeID string, amount int64) (*model.Charge, error) {
	args := m.Called(ctx, chargeID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Charge), args.Error(1)
}

func (m *MockGateway) GetSubscription(ctx context.Context, mundipaggID string) (*model.Subscription, error) {
	args := m.Called(ctx, mundipaggID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscription), args.Error(1)
}

type MockOrderDB struct {
	mock.Mock
}

func (m *MockOrderDB) FindByMundipaggID(ctx context.Context, mundipaggID string) (*model.Order, error) {
	args := m.Called(ctx, mundipaggID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderDB) FindByCode(ctx context.Context, code string) (*model.Order, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderDB) Save(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

type MockChargeDB struct {
	mock.Mock
}

func (m *MockChargeDB) FindByMundipaggID(ctx context.Context, mundipaggID string) (*model.Charge, error) {
	args := m.Called(ctx, mundipaggID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Charge), args.Error(1)
}

func (m *MockChargeDB) FindByOrderID(ctx context.Context, orderMundipaggID string) ([]*model.Charge, error) {
	args := m.Called(ctx, orderMundipaggID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Charge), args.Error(1)
}

func (m *MockChargeDB) Save(ctx context.Context, charge *model.Charge) error {
	args := m.Called(ctx, charge)
	return args.Error(0)
}

type MockPlatformOrderDB struct {
	mock.Mock
}

func (m *MockPlatformOrderDB) FindByCode(ctx context.Context, code string) (*model.PlatformOrder, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlatformOrder), args.Error(1)
}

func (m *MockPlatformOrderDB) Save(ctx context.Context, order *model.PlatformOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyCustomer(ctx context.Context, order *model.PlatformOrder, message string) (bool, error) {
	args := m.Called(ctx, order, message)
	return args.Bool(0), args.Error(1)
}
