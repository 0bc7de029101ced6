package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionStatus_IsDisabled(t *testing.T) {
	tests := []struct {
		status SubscriptionStatus
		want   bool
	}{
		{SubscriptionStatusActive, false},
		{SubscriptionStatusFuture, false},
		{SubscriptionStatusCanceled, true},
		{SubscriptionStatusFailed, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.IsDisabled())
		})
	}
}
