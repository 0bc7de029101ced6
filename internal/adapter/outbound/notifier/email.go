package notifier

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"strconv"

	"github.com/mundipagg/gateway-core/internal/model"
	"github.com/mundipagg/gateway-core/internal/port/outbound"
	"github.com/mundipagg/gateway-core/internal/shared/config"
	"go.uber.org/zap"
)

// sendFunc matches smtp.SendMail.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// emailNotifier e-mails order status changes to the customer.
type emailNotifier struct {
	cfg    *config.NotifierConfig
	send   sendFunc
	tmpl   *template.Template
	logger *zap.Logger
}

// NewEmailNotifier creates an SMTP customer notifier.
func NewEmailNotifier(cfg *config.NotifierConfig, logger *zap.Logger) outbound.CustomerNotifierPort {
	return newEmailNotifier(cfg, smtp.SendMail, logger)
}

func newEmailNotifier(cfg *config.NotifierConfig, send sendFunc, logger *zap.Logger) *emailNotifier {
	return &emailNotifier{
		cfg:    cfg,
		send:   send,
		tmpl:   template.Must(template.New("order").Parse(orderEmailTemplate)),
		logger: logger.Named("notifier"),
	}
}

// NotifyCustomer sends message to the order customer. Orders without a
// customer e-mail are skipped and reported as not notified.
func (n *emailNotifier) NotifyCustomer(ctx context.Context, order *model.PlatformOrder, message string) (bool, error) {
	if order.Customer == nil || order.Customer.Email == "" {
		n.logger.Debug("no customer e-mail, skipping", zap.String("order_code", order.Code))
		return false, nil
	}

	var body bytes.Buffer
	if err := n.tmpl.Execute(&body, map[string]string{
		"Name":    order.Customer.Name,
		"Code":    order.Code,
		"Message": message,
	}); err != nil {
		return false, fmt.Errorf("render template: %w", err)
	}

	subject := fmt.Sprintf("Order #%s", order.Code)
	from := n.cfg.FromAddress
	if n.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", n.cfg.FromName, n.cfg.FromAddress)
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		from, order.Customer.Email, subject, body.String())

	var auth smtp.Auth
	if n.cfg.SMTPUser != "" && n.cfg.SMTPPass != "" {
		auth = smtp.PlainAuth("", n.cfg.SMTPUser, n.cfg.SMTPPass, n.cfg.SMTPHost)
	}
	addr := n.cfg.SMTPHost + ":" + strconv.Itoa(n.cfg.SMTPPort)

	if err := n.send(addr, auth, n.cfg.FromAddress, []string{order.Customer.Email}, []byte(msg)); err != nil {
		n.logger.Error("failed to send order e-mail",
			zap.String("order_code", order.Code), zap.Error(err))
		return false, fmt.Errorf("send email: %w", err)
	}

	n.logger.Info("order e-mail sent", zap.String("order_code", order.Code))
	return true, nil
}

const orderEmailTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333;">
    <p>Hi {{.Name}},</p>
    <p>Your order <strong>#{{.Code}}</strong> was updated.</p>
    <p>{{.Message}}</p>
</body>
</html>
`

// Compile-time check
var _ outbound.CustomerNotifierPort = (*emailNotifier)(nil)
