package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"orcado_server/lib"
	"orcado_server/structs"
	"orcado_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

// blingAPI is the slice of the Bling client the resolver needs.
type blingAPI interface {
	Get(ctx context.Context, endpoint string, params map[string]string) (json.RawMessage, error)
	Post(ctx context.Context, endpoint string, payload any) (json.RawMessage, error)
}

// ContactService resolves the external contact a sales order will be billed
// to: search first to avoid duplicating contacts on repeated approvals, fall
// back to creating one.
type ContactService struct {
	logger *gecho.Logger
	bling  blingAPI
}

func NewContactService(logger *gecho.Logger, bling blingAPI) *ContactService {
	return &ContactService{
		logger: logger,
		bling:  bling,
	}
}

// Resolve finds or creates the external contact for a quote's client
// snapshot. Search priority: tax document digits, then email, then name; only
// the first match is considered. A search failure that is not an auth problem
// is treated as "not found" so a transient lookup error cannot block the
// creation fallback; a creation failure is fatal since there is nothing left
// to fall back to.
func (cs *ContactService) Resolve(ctx context.Context, quote *tables.Quote) (*structs.BlingContact, error) {
	doc := lib.NormalizeDocument(quote.ClientDocument)
	name := quote.ClientName
	if name == "" {
		name = "Cliente"
	}

	params := map[string]string{"pagina": "1", "limite": "1"}
	switch {
	case doc != "":
		params["numeroDocumento"] = doc
	case quote.ClientEmail != "":
		params["email"] = quote.ClientEmail
	default:
		params["nome"] = name
	}

	found, err := cs.search(ctx, params)
	if err != nil {
		var integ *lib.IntegrationError
		if errors.As(err, &integ) && (integ.Status == http.StatusUnauthorized || integ.Status == http.StatusForbidden) {
			// An auth failure would also doom the create call; surface it
			// instead of masking it as "not found".
			return nil, err
		}
		cs.logger.Warn("Contact search failed, falling through to create",
			gecho.Field("error", err))
	}
	if found != nil && found.Id != 0 {
		if found.Nome == "" {
			found.Nome = name
		}
		return found, nil
	}

	payload := structs.BlingContactCreate{
		Nome:            name,
		TipoPessoa:      personType(doc),
		NumeroDocumento: doc,
		Email:           quote.ClientEmail,
		Telefone:        quote.ClientPhone,
	}

	created, err := cs.create(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", lib.ErrContactResolution, err)
	}
	if created.Id == 0 {
		return nil, fmt.Errorf("%w: contact was neither found nor created", lib.ErrContactResolution)
	}
	if created.Nome == "" {
		created.Nome = name
	}

	return created, nil
}

func (cs *ContactService) search(ctx context.Context, params map[string]string) (*structs.BlingContact, error) {
	raw, err := cs.bling.Get(ctx, "/contatos", params)
	if err != nil {
		return nil, err
	}

	var response structs.BlingContactSearchResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, &lib.IntegrationError{Message: "invalid contact search response", Err: err}
	}
	if len(response.Data.Data) == 0 {
		return nil, nil
	}

	return &response.Data.Data[0], nil
}

func (cs *ContactService) create(ctx context.Context, payload structs.BlingContactCreate) (*structs.BlingContact, error) {
	raw, err := cs.bling.Post(ctx, "/contatos", payload)
	if err != nil {
		return nil, err
	}

	var response structs.BlingContactCreateResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, &lib.IntegrationError{Message: "invalid contact create response", Err: err}
	}

	return &response.Data, nil
}

// personType infers the fiscal person type from the document: a 14-digit
// CNPJ marks a legal entity, anything else an individual.
func personType(doc string) string {
	if len(doc) == 14 {
		return "J"
	}
	return "F"
}
