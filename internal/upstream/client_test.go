package upstream

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	id "ixcbridge/pkg/domain"
)

type capturedRequest struct {
	Method  string
	Path    string
	Headers http.Header
	Body    queryBody
}

type ClientSuite struct {
	suite.Suite
	server   *httptest.Server
	client   *Client
	tenant   TenantContext
	mu       sync.Mutex
	requests []capturedRequest
	respond  func(w http.ResponseWriter, body queryBody)
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.requests = nil
	s.respond = func(w http.ResponseWriter, _ queryBody) {
		writeEnvelope(w, "0", nil)
	}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body queryBody
		_ = json.Unmarshal(raw, &body)
		s.mu.Lock()
		s.requests = append(s.requests, capturedRequest{Method: r.Method, Path: r.URL.Path, Headers: r.Header.Clone(), Body: body})
		respond := s.respond
		s.mu.Unlock()
		respond(w, body)
	}))
	s.T().Cleanup(s.server.Close)

	var err error
	s.client, err = New(s.server.URL+"/api/ixc/", WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	s.Require().NoError(err)
	s.tenant = TenantContext{
		TenantID:   id.TenantID(uuid.New()),
		BaseURL:    "https://erp.example.com/",
		Credential: "secret",
	}
}

func writeEnvelope(w http.ResponseWriter, total string, records []map[string]any) {
	if records == nil {
		records = []map[string]any{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"type": "success", "total": total, "registros": records})
}

func (s *ClientSuite) TestQueryConvention() {
	s.respond = func(w http.ResponseWriter, _ queryBody) {
		writeEnvelope(w, "250", []map[string]any{{"id": "7", "razao": "ACME"}})
	}

	page, err := s.client.Query(context.Background(), s.tenant, ResourceCustomer, Filter{
		Field:     "ativo",
		Value:     "S",
		Page:      3,
		PageSize:  100,
		SortField: "razao",
		SortOrder: SortAsc,
	})
	s.Require().NoError(err)
	s.Equal(250, page.Total)
	s.Len(page.Records, 1)

	s.Require().Len(s.requests, 1)
	req := s.requests[0]
	s.Equal(http.MethodPost, req.Method)
	s.Equal("/api/ixc/"+s.tenant.TenantID.String()+"/webservice/v1/cliente", req.Path)
	s.Equal("listar", req.Headers.Get("ixcsoft"))
	s.Equal("application/json", req.Headers.Get("Content-Type"))
	s.Equal(AuthorizationHeader("secret"), req.Headers.Get("Authorization"))
	s.Equal("https://erp.example.com", req.Headers.Get("x-ixc-target"))
	s.Equal(queryBody{
		QType:     "cliente.ativo",
		Query:     "S",
		Oper:      "=",
		Page:      3,
		RP:        100,
		SortName:  "cliente.razao",
		SortOrder: "asc",
	}, req.Body)
}

func (s *ClientSuite) TestActiveCustomersPage() {
	s.respond = func(w http.ResponseWriter, _ queryBody) {
		writeEnvelope(w, "2", []map[string]any{
			{"id": 7, "razao": "ACME", "cnpj_cpf": "123.456.789-00", "telefone_celular": "11999", "valor_mensalidade": 89.9},
			{"id": "8", "razao": "Beta", "ativo": "S"},
		})
	}

	page, err := s.client.ActiveCustomersPage(context.Background(), s.tenant, 2, 100)
	s.Require().NoError(err)
	s.Equal(2, page.Total)
	s.Require().Len(page.Customers, 2)
	s.Equal(Text("7"), page.Customers[0].ID)
	s.Equal(Text("123.456.789-00"), page.Customers[0].TaxID)
	s.Equal(Text("89.9"), page.Customers[0].MonthlyFee)

	s.Require().Len(s.requests, 1)
	s.Equal(queryBody{
		QType:     "cliente.ativo",
		Query:     "S",
		Oper:      "=",
		Page:      2,
		RP:        100,
		SortName:  "cliente.razao",
		SortOrder: "asc",
	}, s.requests[0].Body)
}

func (s *ClientSuite) TestTotalParsing() {
	s.Run("numeric total", func() {
		s.respond = func(w http.ResponseWriter, _ queryBody) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"type":"success","total":12,"registros":[]}`))
		}
		page, err := s.client.Query(context.Background(), s.tenant, ResourceCustomer, Filter{Field: "id", Value: "1"})
		s.Require().NoError(err)
		s.Equal(12, page.Total)
	})

	s.Run("missing total and records", func() {
		s.respond = func(w http.ResponseWriter, _ queryBody) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"type":"success"}`))
		}
		page, err := s.client.Query(context.Background(), s.tenant, ResourceCustomer, Filter{Field: "id", Value: "1"})
		s.Require().NoError(err)
		s.Equal(0, page.Total)
		s.Empty(page.Records)
	})
}

func (s *ClientSuite) TestErrorTaxonomy() {
	s.Run("non-2xx is an HTTP error with a body excerpt", func() {
		s.respond = func(w http.ResponseWriter, _ queryBody) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("invalid token"))
		}
		_, err := s.client.Query(context.Background(), s.tenant, ResourceContract, Filter{Field: "id", Value: "1"})
		s.Require().Error(err)
		s.Equal(CategoryHTTP, GetCategory(err))
		var ue *Error
		s.Require().ErrorAs(err, &ue)
		s.Equal(http.StatusUnauthorized, ue.Status)
		s.Equal("invalid token", ue.Body)
		s.False(IsRetryable(err))
	})

	s.Run("HTML body is a protocol error", func() {
		s.respond = func(w http.ResponseWriter, _ queryBody) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><body>login</body></html>"))
		}
		_, err := s.client.Query(context.Background(), s.tenant, ResourceCustomer, Filter{Field: "id", Value: "1"})
		s.Require().Error(err)
		s.True(IsProtocolError(err))
		s.False(IsUnreachable(err))
	})

	s.Run("relay 502 is unreachable and retryable", func() {
		s.respond = func(w http.ResponseWriter, _ queryBody) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"error":"connect: connection refused"}`))
		}
		_, err := s.client.Query(context.Background(), s.tenant, ResourceCustomer, Filter{Field: "id", Value: "1"})
		s.Require().Error(err)
		s.True(IsUnreachable(err))
		s.True(IsRetryable(err))
	})

	s.Run("error envelope is rejected", func() {
		s.respond = func(w http.ResponseWriter, _ queryBody) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"type":"error","message":"Acesso negado"}`))
		}
		_, err := s.client.Query(context.Background(), s.tenant, ResourceCustomer, Filter{Field: "id", Value: "1"})
		s.Require().Error(err)
		s.Equal(CategoryRejected, GetCategory(err))
		s.Contains(err.Error(), "Acesso negado")
	})
}

func (s *ClientSuite) TestTransportFailureIsUnreachable() {
	s.server.Close()
	_, err := s.client.Query(context.Background(), s.tenant, ResourceCustomer, Filter{Field: "id", Value: "1"})
	s.Require().Error(err)
	s.True(IsUnreachable(err))
}

func (s *ClientSuite) TestSearchCustomersByTaxID() {
	s.Run("stops at the first variant with results", func() {
		s.requests = nil
		s.respond = func(w http.ResponseWriter, body queryBody) {
			if body.Query == "123.456.789-00" {
				writeEnvelope(w, "1", []map[string]any{{"id": "9", "razao": "MARIA", "cnpj_cpf": "123.456.789-00"}})
				return
			}
			writeEnvelope(w, "0", nil)
		}

		fromBare, err := s.client.SearchCustomers(context.Background(), s.tenant, SearchByTaxID, "12345678900")
		s.Require().NoError(err)
		fromFormatted, err := s.client.SearchCustomers(context.Background(), s.tenant, SearchByTaxID, "123.456.789-00")
		s.Require().NoError(err)

		s.Require().Len(fromBare, 1)
		s.Equal(fromBare, fromFormatted)
		s.Equal(Text("9"), fromBare[0].ID)

		s.Require().Len(s.requests, 4)
		s.Equal("cliente.cnpj_cpf", s.requests[0].Body.QType)
		s.Equal("=", s.requests[0].Body.Oper)
		s.Equal(50, s.requests[0].Body.RP)
	})

	s.Run("returns empty when no variant matches", func() {
		s.respond = func(w http.ResponseWriter, _ queryBody) { writeEnvelope(w, "0", nil) }
		found, err := s.client.SearchCustomers(context.Background(), s.tenant, SearchByTaxID, "12345678000190")
		s.Require().NoError(err)
		s.Empty(found)
	})
}

func (s *ClientSuite) TestSearchCustomersByName() {
	s.respond = func(w http.ResponseWriter, _ queryBody) {
		writeEnvelope(w, "1", []map[string]any{{"id": 5, "razao": "JOAO DA SILVA", "ativo": "S"}})
	}
	found, err := s.client.SearchCustomers(context.Background(), s.tenant, SearchByName, "JOAO")
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal(Text("5"), found[0].ID, "numeric ids decode as text")

	last := s.requests[len(s.requests)-1]
	s.Equal("cliente.razao", last.Body.QType)
	s.Equal("like", last.Body.Oper)
}

func (s *ClientSuite) TestOpenReceivablesFiltersStatus() {
	s.respond = func(w http.ResponseWriter, _ queryBody) {
		writeEnvelope(w, "3", []map[string]any{
			{"id": "1", "status": "A", "valor": "99.90"},
			{"id": "2", "status": "R", "valor": "99.90"},
			{"id": "3", "status": "A", "valor": "89.90"},
		})
	}
	open, err := s.client.OpenReceivablesByCustomer(context.Background(), s.tenant, "9")
	s.Require().NoError(err)
	s.Len(open, 2)
	s.Equal("fn_areceber.id_cliente", s.requests[0].Body.QType)
}

func (s *ClientSuite) TestEquipmentByCustomer() {
	s.respond = func(w http.ResponseWriter, body queryBody) {
		switch body.QType {
		case "fibra_onu_cliente.id_cliente":
			writeEnvelope(w, "1", []map[string]any{{"id": "1", "mac": "AA:BB"}})
		case "raio_cliente.id_cliente":
			writeEnvelope(w, "0", nil)
		case "cliente_contrato.id_cliente":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			writeEnvelope(w, "1", []map[string]any{{"id": "1", "status": "A"}})
		}
	}

	eq, err := s.client.EquipmentByCustomer(context.Background(), s.tenant, "9")
	s.Require().NoError(err)
	s.Len(eq.FiberTerminals, 1)
	s.Empty(eq.RadioLinks)
	s.Empty(eq.Services, "service failures degrade to an empty list")
	s.Len(eq.Receivables, 1)
}

func (s *ClientSuite) TestTestConnection() {
	s.Run("ok on JSON envelope", func() {
		s.respond = func(w http.ResponseWriter, _ queryBody) { writeEnvelope(w, "1", nil) }
		s.True(s.client.TestConnection(context.Background(), s.tenant).OK)
	})

	s.Run("HTML page explains the misconfiguration", func() {
		s.respond = func(w http.ResponseWriter, _ queryBody) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<!doctype html>"))
		}
		res := s.client.TestConnection(context.Background(), s.tenant)
		s.False(res.OK)
		s.Contains(res.Message, "HTML")
	})
}

func TestNewRequiresRelayBase(t *testing.T) {
	_, err := New("  ")
	if err == nil {
		t.Fatal("expected error for empty relay base")
	}
}
