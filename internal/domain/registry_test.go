package domain

import (
	"testing"

	"github.com/mundipagg/gateway-core/internal/domain/order"
	"github.com/mundipagg/gateway-core/internal/shared/i18n"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewDomain(t *testing.T) {
	d := NewDomain(&OutboundPorts{}, &order.Config{}, i18n.New("en"), zap.NewNop())

	assert.NotNil(t, d.Order)
	assert.NotNil(t, d.Webhook)
	assert.NotNil(t, d.Subscription)
}
