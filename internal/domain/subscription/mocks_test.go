package subscription

import (
	"context"

	"github.com/mundipagg/gateway-core/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockSubscriptionDB struct {
	mock.Mock
}

func (m *MockSubscriptionDB) FindByMundipaggID(ctx context.Context, mundipaggID string) (*model.Subscription, error) {
	args := m.Called(ctx, mundipaggID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscription), args.Error(1)
}

func (m *MockSubscriptionDB) FindByCode(ctx context.Context, code string) (*model.Subscription, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscription), args.Error(1)
}

func (m *MockSubscriptionDB) FindByCustomerID(ctx context.Context, customerID string) ([]*model.Subscription, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Subscription), args.Error(1)
}

func (m *MockSubscriptionDB) List(ctx context.Context, limit int, listDisabled bool) ([]*model.Subscription, error) {
	args := m.Called(ctx, limit, listDisabled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Subscription), args.Error(1)
}

func (m *MockSubscriptionDB) Save(ctx context.Context, subscription *model.Subscription) error {
	args := m.Called(ctx, subscription)
	return args.Error(0)
}

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
