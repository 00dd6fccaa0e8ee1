package services

import (
	"fmt"
	"time"

	"orcado_server/lib"
	"orcado_server/structs"
	"orcado_server/structs/tables"
)

// BuildBlingOrder maps an approved quote and its resolved contact onto the
// Bling sales order payload. The quote snapshot is the single source of
// truth: prices come from the stored cents, never recomputed from the
// catalog.
func BuildBlingOrder(quote *tables.Quote, contact *structs.BlingContact, cfg *structs.Config) (*structs.BlingOrder, error) {
	if quote == nil || len(quote.Items) == 0 {
		return nil, fmt.Errorf("%w: quote has no items", lib.ErrInvalidQuote)
	}
	if quote.ClientName == "" {
		return nil, fmt.Errorf("%w: quote has no client name", lib.ErrInvalidQuote)
	}
	if contact == nil || contact.Id == 0 {
		return nil, fmt.Errorf("%w: missing contact", lib.ErrInvalidQuote)
	}

	today := time.Now().Format("2006-01-02")

	items := make([]structs.BlingOrderItem, 0, len(quote.Items))
	for i, item := range quote.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item %d has non-positive quantity", lib.ErrInvalidQuote, i+1)
		}

		code := item.ProductId
		if code == "" {
			code = fmt.Sprintf("ITEM-%d", i+1)
		}
		description := item.ProductName
		if description == "" {
			description = fmt.Sprintf("Item %d", i+1)
		}

		unit := lib.FromCents(item.UnitCents)
		items = append(items, structs.BlingOrderItem{
			Codigo:     code,
			Descricao:  description,
			Quantidade: item.Quantity,
			Valor:      unit,
			ValorLista: unit,
		})
	}

	order := &structs.BlingOrder{
		NumeroLoja:   quote.OrderNumber,
		Data:         today,
		DataSaida:    today,
		DataPrevista: today,
		Contato:      structs.BlingOrderContact{Id: contact.Id},
		Itens:        items,
		Observacoes:  quote.Observations,
	}

	// A single cash installment, only when a payment method is configured.
	if cfg.Bling.PaymentMethodID != 0 {
		order.Parcelas = []structs.BlingInstallment{{
			DataVencimento: today,
			Valor:          lib.FromCents(quote.TotalCents),
			FormaPagamento: structs.BlingPaymentMethod{Id: cfg.Bling.PaymentMethodID},
		}}
	}

	return order, nil
}
