package upstream

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	platformstrings "ixcbridge/pkg/platform/strings"
)

const lookupPageSize = 50

// Customer is an upstream "cliente" record.
type Customer struct {
	ID           Text `json:"id"`
	LegalName    Text `json:"razao"`
	TradeName    Text `json:"fantasia"`
	PersonType   Text `json:"tipo_pessoa"`
	TaxID        Text `json:"cnpj_cpf"`
	MobilePhone  Text `json:"telefone_celular"`
	Landline     Text `json:"telefone_comercial"`
	Email        Text `json:"email"`
	ActiveFlag   Text `json:"ativo"`
	City         Text `json:"cidade"`
	Neighborhood Text `json:"bairro"`
	Street       Text `json:"endereco"`
	StreetNumber Text `json:"numero"`
	MonthlyFee   Text `json:"valor_mensalidade"`
}

// FiberTerminal is an optical network unit bound to a customer.
type FiberTerminal struct {
	ID           Text `json:"id"`
	CustomerID   Text `json:"id_cliente"`
	SerialNumber Text `json:"numero_serie"`
	MAC          Text `json:"mac"`
	Description  Text `json:"descricao"`
	Status       Text `json:"status"`
}

// RadioLink is a radio CPE bound to a customer.
type RadioLink struct {
	ID          Text `json:"id"`
	CustomerID  Text `json:"id_cliente"`
	MAC         Text `json:"mac"`
	Model       Text `json:"modelo"`
	Description Text `json:"descricao"`
	IP          Text `json:"ip"`
	Status      Text `json:"status"`
}

// ServiceContract is a customer's subscribed service. The upstream reports its
// lifecycle under either Status or ContractStatus depending on the installation.
type ServiceContract struct {
	ID             Text `json:"id"`
	CustomerID     Text `json:"id_cliente"`
	Description    Text `json:"descricao"`
	Contract       Text `json:"contrato"`
	Status         Text `json:"status"`
	ContractStatus Text `json:"status_contrato"`
	Value          Text `json:"valor_contrato"`
	ActivatedOn    Text `json:"data_ativacao"`
}

// RawStatus is the first non-empty status field, used for display.
func (s ServiceContract) RawStatus() string {
	if s.Status != "" {
		return string(s.Status)
	}
	return string(s.ContractStatus)
}

// Receivable is an invoice ("fn_areceber").
type Receivable struct {
	ID         Text `json:"id"`
	CustomerID Text `json:"id_cliente"`
	Status     Text `json:"status"`
	Value      Text `json:"valor"`
	DueDate    Text `json:"data_vencimento"`
}

// SearchField selects how SearchCustomers matches.
type SearchField string

const (
	SearchByName   SearchField = "razao"
	SearchByTaxID  SearchField = "cnpj_cpf"
	SearchByMobile SearchField = "telefone_celular"
)

// TaxIDVariants lists the forms under which the upstream may have stored a
// CPF/CNPJ: digits only, the input as typed, and the punctuated form when the
// digit count matches CPF (11) or CNPJ (14). Duplicates and blanks are dropped.
func TaxIDVariants(raw string) []string {
	d := platformstrings.DigitsOnly(raw)
	variants := []string{d, raw}
	switch len(d) {
	case 11:
		variants = append(variants, fmt.Sprintf("%s.%s.%s-%s", d[0:3], d[3:6], d[6:9], d[9:]))
	case 14:
		variants = append(variants, fmt.Sprintf("%s.%s.%s/%s-%s", d[0:2], d[2:5], d[5:8], d[8:12], d[12:]))
	}
	return platformstrings.DedupeAndTrim(variants)
}

// SearchCustomers looks customers up by name, tax id or mobile phone.
// Tax-id lookups try every stored form in order and return the first non-empty result.
func (c *Client) SearchCustomers(ctx context.Context, tenant TenantContext, field SearchField, value string) ([]Customer, error) {
	if field == SearchByTaxID {
		for _, variant := range TaxIDVariants(value) {
			found, err := c.customers(ctx, tenant, Filter{
				Field:    string(SearchByTaxID),
				Value:    variant,
				Operator: OpEquals,
				PageSize: lookupPageSize,
			})
			if err != nil {
				return nil, err
			}
			if len(found) > 0 {
				return found, nil
			}
		}
		return []Customer{}, nil
	}

	if field != SearchByName && field != SearchByMobile {
		return nil, fmt.Errorf("unsupported search field %q", field)
	}
	return c.customers(ctx, tenant, Filter{
		Field:    string(field),
		Value:    value,
		Operator: OpContains,
		PageSize: lookupPageSize,
	})
}

// CustomerByID returns nil without error when the id is unknown upstream.
func (c *Client) CustomerByID(ctx context.Context, tenant TenantContext, customerID string) (*Customer, error) {
	found, err := c.customers(ctx, tenant, Filter{Field: "id", Value: customerID, Operator: OpEquals, PageSize: 1})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

// CustomerPage is one page of the active-customer listing.
type CustomerPage struct {
	// Total is the upstream's reported grand total; 0 means unknown.
	Total     int
	Customers []Customer
}

// ActiveCustomersPage fetches one page of active customers ordered by legal
// name, the listing a bulk sync walks.
func (c *Client) ActiveCustomersPage(ctx context.Context, tenant TenantContext, page, pageSize int) (*CustomerPage, error) {
	p, err := c.Query(ctx, tenant, ResourceCustomer, Filter{
		Field:     "ativo",
		Value:     "S",
		Operator:  OpEquals,
		Page:      page,
		PageSize:  pageSize,
		SortField: "razao",
		SortOrder: SortAsc,
	})
	if err != nil {
		return nil, err
	}
	customers, err := decodeRecords[Customer](ResourceCustomer, p.Records)
	if err != nil {
		return nil, err
	}
	return &CustomerPage{Total: p.Total, Customers: customers}, nil
}

func (c *Client) customers(ctx context.Context, tenant TenantContext, f Filter) ([]Customer, error) {
	page, err := c.Query(ctx, tenant, ResourceCustomer, f)
	if err != nil {
		return nil, err
	}
	return decodeRecords[Customer](ResourceCustomer, page.Records)
}

// FiberTerminalsByCustomer lists ONUs bound to a customer.
func (c *Client) FiberTerminalsByCustomer(ctx context.Context, tenant TenantContext, customerID string) ([]FiberTerminal, error) {
	page, err := c.Query(ctx, tenant, ResourceFiberTerminal, byCustomer(customerID))
	if err != nil {
		return nil, err
	}
	return decodeRecords[FiberTerminal](ResourceFiberTerminal, page.Records)
}

// RadioLinksByCustomer lists radio CPEs bound to a customer.
func (c *Client) RadioLinksByCustomer(ctx context.Context, tenant TenantContext, customerID string) ([]RadioLink, error) {
	page, err := c.Query(ctx, tenant, ResourceRadioLink, byCustomer(customerID))
	if err != nil {
		return nil, err
	}
	return decodeRecords[RadioLink](ResourceRadioLink, page.Records)
}

// ServicesByCustomer lists a customer's service contracts.
func (c *Client) ServicesByCustomer(ctx context.Context, tenant TenantContext, customerID string) ([]ServiceContract, error) {
	page, err := c.Query(ctx, tenant, ResourceContract, byCustomer(customerID))
	if err != nil {
		return nil, err
	}
	return decodeRecords[ServiceContract](ResourceContract, page.Records)
}

// OpenReceivablesByCustomer lists invoices still open (status "A").
func (c *Client) OpenReceivablesByCustomer(ctx context.Context, tenant TenantContext, customerID string) ([]Receivable, error) {
	page, err := c.Query(ctx, tenant, ResourceReceivable, byCustomer(customerID))
	if err != nil {
		return nil, err
	}
	all, err := decodeRecords[Receivable](ResourceReceivable, page.Records)
	if err != nil {
		return nil, err
	}
	open := make([]Receivable, 0, len(all))
	for _, r := range all {
		if r.Status == "A" {
			open = append(open, r)
		}
	}
	return open, nil
}

// CustomerEquipment bundles everything bound to one customer upstream.
type CustomerEquipment struct {
	FiberTerminals []FiberTerminal
	RadioLinks     []RadioLink
	Services       []ServiceContract
	Receivables    []Receivable
}

// EquipmentByCustomer fetches the four per-customer listings concurrently.
// Service and receivable failures degrade to empty lists; terminal and radio
// failures fail the call.
func (c *Client) EquipmentByCustomer(ctx context.Context, tenant TenantContext, customerID string) (*CustomerEquipment, error) {
	var out CustomerEquipment
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		out.FiberTerminals, err = c.FiberTerminalsByCustomer(gctx, tenant, customerID)
		return err
	})
	g.Go(func() error {
		var err error
		out.RadioLinks, err = c.RadioLinksByCustomer(gctx, tenant, customerID)
		return err
	})
	g.Go(func() error {
		services, err := c.ServicesByCustomer(gctx, tenant, customerID)
		if err != nil {
			c.logger.WarnContext(gctx, "failed to fetch services", "customer_id", customerID, "error", err)
			services = []ServiceContract{}
		}
		out.Services = services
		return nil
	})
	g.Go(func() error {
		receivables, err := c.OpenReceivablesByCustomer(gctx, tenant, customerID)
		if err != nil {
			c.logger.WarnContext(gctx, "failed to fetch receivables", "customer_id", customerID, "error", err)
			receivables = []Receivable{}
		}
		out.Receivables = receivables
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// ConnectionResult is the outcome of TestConnection.
type ConnectionResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// TestConnection issues a one-row customer query and reports whether the
// upstream answered with its JSON envelope.
func (c *Client) TestConnection(ctx context.Context, tenant TenantContext) ConnectionResult {
	_, err := c.Query(ctx, tenant, ResourceCustomer, Filter{Field: "id", Value: "1", Operator: OpEquals, PageSize: 1})
	if err == nil {
		return ConnectionResult{OK: true}
	}
	var ue *Error
	if errors.As(err, &ue) {
		switch ue.Category {
		case CategoryProtocol:
			return ConnectionResult{Message: "upstream returned HTML instead of JSON; check the base URL"}
		case CategoryHTTP:
			return ConnectionResult{Message: fmt.Sprintf("HTTP %d: %s", ue.Status, ue.Body)}
		}
	}
	return ConnectionResult{Message: err.Error()}
}

func byCustomer(customerID string) Filter {
	return Filter{Field: "id_cliente", Value: customerID, Operator: OpEquals, PageSize: lookupPageSize}
}
