package services

import (
	"testing"
	"time"

	"orcado_server/lib"
	"orcado_server/structs"
	"orcado_server/structs/tables"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payloadConfig(paymentMethodID int64) *structs.Config {
	return &structs.Config{Bling: &structs.BlingConfig{PaymentMethodID: paymentMethodID}}
}

func payloadQuote() *tables.Quote {
	return &tables.Quote{
		OrderNumber:  "ORC-20260901-123",
		ClientName:   "ACME",
		Observations: "entregar pela manha",
		TotalCents:   35000,
		Items: []*tables.QuoteItem{
			{ProductId: "SKU-1", ProductName: "Widget", Quantity: 2, UnitCents: 10000, SubtotalCents: 20000},
			{ProductId: "SKU-2", ProductName: "Gadget", Quantity: 1, UnitCents: 15000, SubtotalCents: 15000},
		},
	}
}

func TestBuildBlingOrder(t *testing.T) {
	contact := &structs.BlingContact{Id: 42, Nome: "ACME"}

	order, err := BuildBlingOrder(payloadQuote(), contact, payloadConfig(0))
	require.NoError(t, err)

	today := time.Now().Format("2006-01-02")
	assert.Equal(t, "ORC-20260901-123", order.NumeroLoja)
	assert.Equal(t, today, order.Data)
	assert.Equal(t, today, order.DataSaida)
	assert.Equal(t, today, order.DataPrevista)
	assert.Equal(t, int64(42), order.Contato.Id)
	assert.Equal(t, "entregar pela manha", order.Observacoes)

	require.Len(t, order.Itens, 2)
	assert.Equal(t, "SKU-1", order.Itens[0].Codigo)
	assert.Equal(t, "Widget", order.Itens[0].Descricao)
	assert.Equal(t, 2, order.Itens[0].Quantidade)
	assert.InDelta(t, 100.0, order.Itens[0].Valor, 1e-9)
	assert.InDelta(t, 100.0, order.Itens[0].ValorLista, 1e-9)
}

func TestBuildBlingOrderItemFallbacks(t *testing.T) {
	quote := payloadQuote()
	quote.Items = []*tables.QuoteItem{
		{ProductName: "", ProductId: "", Quantity: 1, UnitCents: 500},
		{ProductName: "Named", ProductId: "", Quantity: 1, UnitCents: 500},
	}
	contact := &structs.BlingContact{Id: 1}

	order, err := BuildBlingOrder(quote, contact, payloadConfig(0))
	require.NoError(t, err)

	assert.Equal(t, "ITEM-1", order.Itens[0].Codigo)
	assert.Equal(t, "Item 1", order.Itens[0].Descricao)
	assert.Equal(t, "ITEM-2", order.Itens[1].Codigo)
	assert.Equal(t, "Named", order.Itens[1].Descricao)
}

func TestBuildBlingOrderInstallments(t *testing.T) {
	contact := &structs.BlingContact{Id: 1}

	t.Run("no payment method configured", func(t *testing.T) {
		order, err := BuildBlingOrder(payloadQuote(), contact, payloadConfig(0))
		require.NoError(t, err)
		assert.Empty(t, order.Parcelas)
	})

	t.Run("single installment when configured", func(t *testing.T) {
		order, err := BuildBlingOrder(payloadQuote(), contact, payloadConfig(77))
		require.NoError(t, err)

		require.Len(t, order.Parcelas, 1)
		parcela := order.Parcelas[0]
		assert.Equal(t, time.Now().Format("2006-01-02"), parcela.DataVencimento)
		assert.InDelta(t, 350.0, parcela.Valor, 1e-9)
		assert.Equal(t, int64(77), parcela.FormaPagamento.Id)
	})
}

func TestBuildBlingOrderValidation(t *testing.T) {
	contact := &structs.BlingContact{Id: 1}

	t.Run("nil quote", func(t *testing.T) {
		_, err := BuildBlingOrder(nil, contact, payloadConfig(0))
		assert.ErrorIs(t, err, lib.ErrInvalidQuote)
	})

	t.Run("empty items", func(t *testing.T) {
		quote := payloadQuote()
		quote.Items = nil
		_, err := BuildBlingOrder(quote, contact, payloadConfig(0))
		assert.ErrorIs(t, err, lib.ErrInvalidQuote)
	})

	t.Run("missing client name", func(t *testing.T) {
		quote := payloadQuote()
		quote.ClientName = ""
		_, err := BuildBlingOrder(quote, contact, payloadConfig(0))
		assert.ErrorIs(t, err, lib.ErrInvalidQuote)
	})

	t.Run("missing contact", func(t *testing.T) {
		_, err := BuildBlingOrder(payloadQuote(), nil, payloadConfig(0))
		assert.ErrorIs(t, err, lib.ErrInvalidQuote)
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		quote := payloadQuote()
		quote.Items[0].Quantity = 0
		_, err := BuildBlingOrder(quote, contact, payloadConfig(0))
		assert.ErrorIs(t, err, lib.ErrInvalidQuote)
	})
}
