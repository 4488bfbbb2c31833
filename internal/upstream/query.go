package upstream

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	id "ixcbridge/pkg/domain"
)

// TenantContext is the explicit connection profile threaded through every
// upstream call. Nothing in this package reads an ambient "active tenant".
type TenantContext struct {
	TenantID   id.TenantID
	BaseURL    string
	Credential string
}

// Target is the upstream base URL without a trailing slash.
func (t TenantContext) Target() string {
	return strings.TrimRight(strings.TrimSpace(t.BaseURL), "/")
}

// Resource is an upstream listing endpoint under /webservice/v1/.
type Resource string

const (
	ResourceCustomer      Resource = "cliente"
	ResourceFiberTerminal Resource = "fibra_onu_cliente"
	ResourceRadioLink     Resource = "raio_cliente"
	ResourceContract      Resource = "cliente_contrato"
	ResourceReceivable    Resource = "fn_areceber"
)

// Operator is the upstream comparison operator ("oper").
type Operator string

const (
	OpEquals   Operator = "="
	OpContains Operator = "like"
)

// SortOrder is the upstream "sortorder" value.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Filter describes one upstream listing query. Field may be given bare
// ("ativo") or qualified ("cliente.ativo"); bare fields are qualified with the
// resource name. Sort fields follow the same rule.
type Filter struct {
	Field     string
	Value     string
	Operator  Operator
	Page      int
	PageSize  int
	SortField string
	SortOrder SortOrder
}

// Page is one decoded listing response.
type Page struct {
	// Total is the upstream's reported grand total; 0 means unknown.
	Total   int
	Records []json.RawMessage
}

type queryBody struct {
	QType     string `json:"qtype"`
	Query     string `json:"query"`
	Oper      string `json:"oper"`
	Page      int    `json:"page"`
	RP        int    `json:"rp"`
	SortName  string `json:"sortname,omitempty"`
	SortOrder string `json:"sortorder,omitempty"`
}

func newQueryBody(resource Resource, f Filter) queryBody {
	op := f.Operator
	if op == "" {
		op = OpEquals
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	rp := f.PageSize
	if rp < 1 {
		rp = 1
	}
	body := queryBody{
		QType: qualify(resource, f.Field),
		Query: f.Value,
		Oper:  string(op),
		Page:  page,
		RP:    rp,
	}
	if f.SortField != "" {
		body.SortName = qualify(resource, f.SortField)
		body.SortOrder = string(f.SortOrder)
		if body.SortOrder == "" {
			body.SortOrder = string(SortAsc)
		}
	}
	return body
}

func qualify(resource Resource, field string) string {
	if field == "" || strings.Contains(field, ".") {
		return field
	}
	return string(resource) + "." + field
}

type envelope struct {
	Type      string            `json:"type"`
	Message   string            `json:"message"`
	Total     json.RawMessage   `json:"total"`
	Registros []json.RawMessage `json:"registros"`
}

// parseTotal accepts the stringified integer the upstream sends, a bare number,
// or nothing at all.
func parseTotal(raw json.RawMessage) int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		s = string(raw)
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Text decodes upstream scalar fields that arrive as strings, numbers or null.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	*t = Text(data)
	return nil
}

func (t Text) String() string { return string(t) }
