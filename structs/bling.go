package structs

import "encoding/json"

// Wire shapes of the Bling v3 API, limited to what this service consumes.

type BlingTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
}

type BlingContact struct {
	Id   int64  `json:"id"`
	Nome string `json:"nome"`
}

// BlingContactSearchResponse wraps GET /contatos. The list sits one level
// deeper than on entity endpoints: { "data": { "data": [ ... ] } }.
type BlingContactSearchResponse struct {
	Data struct {
		Data []BlingContact `json:"data"`
	} `json:"data"`
}

type BlingContactCreateResponse struct {
	Data BlingContact `json:"data"`
}

type BlingContactCreate struct {
	Nome            string `json:"nome"`
	TipoPessoa      string `json:"tipoPessoa"` // "F" individual, "J" legal entity
	NumeroDocumento string `json:"numeroDocumento,omitempty"`
	Email           string `json:"email,omitempty"`
	Telefone        string `json:"telefone,omitempty"`
}

type BlingOrderItem struct {
	Codigo     string  `json:"codigo"`
	Descricao  string  `json:"descricao"`
	Quantidade int     `json:"quantidade"`
	Valor      float64 `json:"valor"`
	ValorLista float64 `json:"valorLista"`
}

type BlingPaymentMethod struct {
	Id int64 `json:"id"`
}

type BlingInstallment struct {
	DataVencimento string             `json:"dataVencimento"`
	Valor          float64            `json:"valor"`
	FormaPagamento BlingPaymentMethod `json:"formaPagamento"`
}

// BlingOrderContact references the resolved contact by id only.
type BlingOrderContact struct {
	Id int64 `json:"id"`
}

type BlingOrder struct {
	NumeroLoja   string             `json:"numeroLoja"`
	Data         string             `json:"data"`
	DataSaida    string             `json:"dataSaida"`
	DataPrevista string             `json:"dataPrevista"`
	Contato      BlingOrderContact  `json:"contato"`
	Itens        []BlingOrderItem   `json:"itens"`
	Parcelas     []BlingInstallment `json:"parcelas,omitempty"`
	Observacoes  string             `json:"observacoes"`
}

type BlingOrderResponse struct {
	Data struct {
		Id json.Number `json:"id"`
	} `json:"data"`
}
