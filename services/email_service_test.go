package services

import (
	"testing"

	"orcado_server/structs/tables"

	"github.com/stretchr/testify/assert"
)

func TestQuoteReceivedBody(t *testing.T) {
	quote := &tables.Quote{
		OrderNumber: "ORC-20260901-123",
		ClientName:  "ACME",
		TotalCents:  35000,
		Items: []*tables.QuoteItem{
			{ProductName: "Widget", Quantity: 2, SubtotalCents: 20000},
			{ProductName: "Gadget", Quantity: 1, SubtotalCents: 15000},
		},
	}

	subject, body := quoteReceivedBody(quote, "suporte@example.com")

	assert.Equal(t, "Orcamento ORC-20260901-123 recebido", subject)
	assert.Contains(t, body, "Ola ACME,")
	assert.Contains(t, body, "<strong>ORC-20260901-123</strong>")
	assert.Contains(t, body, "<tr><td>Widget</td><td>2</td><td>R$ 200.00</td></tr>")
	assert.Contains(t, body, "<tr><td>Gadget</td><td>1</td><td>R$ 150.00</td></tr>")
	assert.Contains(t, body, "Total: R$ 350.00")
	assert.Contains(t, body, "suporte@example.com")
}

func TestQuoteReceivedBodyEscapesClientInput(t *testing.T) {
	quote := &tables.Quote{
		OrderNumber: "ORC-20260901-123",
		ClientName:  `<script>alert("x")</script>`,
		TotalCents:  500,
		Items: []*tables.QuoteItem{
			{ProductName: "<img src=x onerror=alert(1)>", Quantity: 1, SubtotalCents: 500},
		},
	}

	_, body := quoteReceivedBody(quote, "suporte@example.com")

	assert.NotContains(t, body, "<script>")
	assert.NotContains(t, body, "<img src=x")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.Contains(t, body, "&lt;img src=x onerror=alert(1)&gt;")
}
