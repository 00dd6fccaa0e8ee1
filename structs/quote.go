package structs

// QuoteItemRequest carries one cart line. UnitPrice arrives as decimal
// currency from the storefront and is converted to integer cents at the
// boundary, before anything is persisted.
type QuoteItemRequest struct {
	ProductId   string  `json:"product_id" validate:"omitempty,max=64"`
	ProductName string  `json:"product_name" validate:"required,min=2,max=200"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice   float64 `json:"unit_price" validate:"required,gt=0"`
}

type QuoteRequest struct {
	ClientName     string             `json:"client_name" validate:"required,min=3,max=100"`
	ClientEmail    string             `json:"client_email" validate:"required,email"`
	ClientCompany  string             `json:"client_company" validate:"required,min=2,max=100"`
	ClientPhone    string             `json:"client_phone" validate:"required,min=8,max=20"`
	ClientDocument string             `json:"client_document" validate:"omitempty,max=20"`
	Observations   string             `json:"observations" validate:"omitempty,max=1000"`
	Items          []QuoteItemRequest `json:"items" validate:"required,min=1,dive"`
}

// QuoteSummary is the admin-facing listing shape: status plus the
// client-facing order payload.
type QuoteSummary struct {
	Id      string       `json:"id"`
	Status  string       `json:"status"`
	Payload QuotePayload `json:"payload"`
}

type QuotePayload struct {
	CustomerName string             `json:"customer_name"`
	OrderNumber  string             `json:"order_number"`
	Total        float64            `json:"total"`
	Items        []QuoteItemSummary `json:"items"`
}

type QuoteItemSummary struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}
