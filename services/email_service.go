package services

import (
	"context"
	"fmt"
	"html"
	"strings"
	"sync"

	"orcado_server/lib"
	"orcado_server/structs"
	"orcado_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
)

var (
	emailClient     *resend.Client
	emailClientOnce = sync.Once{}
)

// EmailService sends transactional email through Resend.
type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	return &EmailService{
		logger: logger,
		cfg:    cfg,
		client: getEmailClient(cfg.Email.ApiKey),
	}
}

func getEmailClient(apiKey string) *resend.Client {
	emailClientOnce.Do(func() {
		emailClient = resend.NewClient(apiKey)
	})
	return emailClient
}

func (es *EmailService) SendEmail(ctx context.Context, to []string, subject string, body string) error {
	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	_, err := es.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}

	return nil
}

// SendQuoteReceived confirms to the client that their quote request arrived
// and is awaiting review.
func (es *EmailService) SendQuoteReceived(ctx context.Context, quote *tables.Quote) error {
	subject, body := quoteReceivedBody(quote, es.cfg.Email.SupportEmail)
	return es.SendEmail(ctx, []string{quote.ClientEmail}, subject, body)
}

// Client-supplied fields end up inside HTML, so they get escaped.
func quoteReceivedBody(quote *tables.Quote, supportEmail string) (subject string, body string) {
	var rows strings.Builder
	for _, item := range quote.Items {
		rows.WriteString(fmt.Sprintf(
			"<tr><td>%s</td><td>%d</td><td>R$ %.2f</td></tr>",
			html.EscapeString(item.ProductName), item.Quantity, lib.FromCents(item.SubtotalCents)))
	}

	body = fmt.Sprintf(`
		<h2>Recebemos seu pedido de orcamento</h2>
		<p>Ola %s,</p>
		<p>Seu pedido <strong>%s</strong> foi recebido e esta em analise. Entraremos em contato em breve.</p>
		<table border="0" cellpadding="6">
			<tr><th align="left">Item</th><th align="left">Qtd</th><th align="left">Subtotal</th></tr>
			%s
		</table>
		<p><strong>Total: R$ %.2f</strong></p>
		<p>Duvidas? Escreva para %s.</p>
	`,
		html.EscapeString(quote.ClientName),
		html.EscapeString(quote.OrderNumber),
		rows.String(),
		lib.FromCents(quote.TotalCents),
		html.EscapeString(supportEmail))

	subject = fmt.Sprintf("Orcamento %s recebido", quote.OrderNumber)
	return subject, body
}
