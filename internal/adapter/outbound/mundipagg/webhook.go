package mundipagg

import (
	"encoding/json"
	"fmt"

	"github.com/mundipagg/gateway-core/internal/model"
)

type webhookRequest struct {
	ID   string          `json:"id"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ParseWebhook decodes a gateway notification body. For charge webhooks the
// charge is hydrated without transactions and its last transaction is
// returned separately, so it can be merged into the stored charge.
func ParseWebhook(body []byte) (*model.Webhook, error) {
	var req webhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if req.ID == "" || req.Type == "" {
		return nil, fmt.Errorf("%w: missing id or type", ErrInvalidPayload)
	}

	entity, action := model.ParseWebhookType(req.Type)
	hook := &model.Webhook{
		HookID:  req.ID,
		Type:    req.Type,
		Entity:  entity,
		Action:  action,
		Payload: body,
	}

	if entity != model.WebhookEntityCharge || len(req.Data) == 0 {
		return hook, nil
	}

	var charge chargeResponse
	if err := json.Unmarshal(req.Data, &charge); err != nil {
		return nil, fmt.Errorf("%w: charge: %v", ErrInvalidPayload, err)
	}
	if charge.ID == "" {
		return nil, fmt.Errorf("%w: charge without id", ErrInvalidPayload)
	}
	hook.Charge = charge.toModel()
	hook.Transaction = charge.LastTransaction.toModel(charge.ID)
	return hook, nil
}
