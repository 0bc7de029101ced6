package webhook

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

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyCustomer(ctx context.Context, order *model.PlatformOrder, message string) (bool, error) {
	args := m.Called(ctx, order, message)
	return args.Bool(0), args.Error(1)
}

type MockWebhookEventDB struct {
	mock.Mock
}

func (m *MockWebhookEventDB) Create(ctx context.Context, event *model.WebhookEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockWebhookEventDB) FindByHookID(ctx context.Context, hookID string) (*model.WebhookEvent, error) {
	args := m.Called(ctx, hookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WebhookEvent), args.Error(1)
}

func (m *MockWebhookEventDB) MarkProcessed(ctx context.Context, event *model.WebhookEvent, result string, processErr error) error {
	args := m.Called(ctx, event, result, processErr)
	return args.Error(0)
}

type MockChargeService struct {
	mock.Mock
}

func (m *MockChargeService) LoadOrder(ctx context.Context, hook *model.Webhook) (*model.Order, error) {
	args := m.Called(ctx, hook)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockChargeService) HandlePaid(ctx context.Context, hook *model.Webhook, order *model.Order) (*model.WebhookResult, error) {
	return m.result(m.Called(ctx, hook, order))
}

func (m *MockChargeService) HandlePartialCanceled(ctx context.Context, hook *model.Webhook, order *model.Order) (*model.WebhookResult, error) {
	return m.result(m.Called(ctx, hook, order))
}

func (m *MockChargeService) HandleRefunded(ctx context.Context, hook *model.Webhook, order *model.Order) (*model.WebhookResult, error) {
	return m.result(m.Called(ctx, hook, order))
}

func (m *MockChargeService) result(args mock.Arguments) (*model.WebhookResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WebhookResult), args.Error(1)
}

// fakeTransactor runs the unit of work inline.
type fakeTransactor struct {
	calls int
}

func (f *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}
