package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hipotecalia/crm-backend/internal/platform/apierr"
	"github.com/hipotecalia/crm-backend/internal/services"
	"github.com/hipotecalia/crm-backend/internal/types"
)

type fakeClienteService struct {
	lastCreated *types.Cliente
	getErr      error
}

func (f *fakeClienteService) Create(ctx context.Context, cliente *types.Cliente) (*types.Cliente, error) {
	cliente.ID = uuid.New()
	f.lastCreated = cliente
	return cliente, nil
}

func (f *fakeClienteService) Get(ctx context.Context, id uuid.UUID) (*types.Cliente, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &types.Cliente{ID: id, Nombre: "Ana", Apellidos: "Ruiz"}, nil
}

func (f *fakeClienteService) List(ctx context.Context) ([]*types.Cliente, error) {
	return []*types.Cliente{}, nil
}

func (f *fakeClienteService) FindByNombre(ctx context.Context, nombre string) (*types.Cliente, error) {
	return nil, apierr.NotFound("cliente_not_found", nil)
}

func (f *fakeClienteService) Update(ctx context.Context, id uuid.UUID, input services.ClienteUpdate) (*types.Cliente, error) {
	return &types.Cliente{ID: id}, nil
}

func (f *fakeClienteService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func newClienteRouter(svc *fakeClienteService) *gin.Engine {
	router := gin.New()
	handler := NewClienteHandler(svc)
	router.POST("/clientes", handler.Create)
	router.GET("/clientes/:id", handler.Get)
	router.DELETE("/clientes/:id", handler.Delete)
	return router
}

// Clientes post inside a {data: {...}} envelope, unlike the flat bodies of
// the other entities.
func TestClienteCreate_ReadsDataEnvelope(t *testing.T) {
	svc := &fakeClienteService{}
	router := newClienteRouter(svc)

	body := `{"data":{"nombre":"Ana","apellidos":"Ruiz","dni":"12345678Z"}}`
	req := httptest.NewRequest(http.MethodPost, "/clientes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastCreated == nil || svc.lastCreated.Nombre != "Ana" || svc.lastCreated.DNI != "12345678Z" {
		t.Fatalf("envelope fields not forwarded: %+v", svc.lastCreated)
	}

	var resp types.Cliente
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.ID == uuid.Nil {
		t.Fatalf("expected id in response")
	}
}

func TestClienteGet_InvalidIDIsRejected(t *testing.T) {
	router := newClienteRouter(&fakeClienteService{})

	req := httptest.NewRequest(http.MethodGet, "/clientes/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestClienteGet_ServiceNotFoundMapsTo404(t *testing.T) {
	svc := &fakeClienteService{getErr: apierr.NotFound("cliente_not_found", nil)}
	router := newClienteRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/clientes/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var envelope ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to parse error body: %v", err)
	}
	if envelope.Error.Code != "cliente_not_found" {
		t.Fatalf("expected code cliente_not_found, got %q", envelope.Error.Code)
	}
}

func TestClienteDelete_AnswersDeletedTrue(t *testing.T) {
	router := newClienteRouter(&fakeClienteService{})

	req := httptest.NewRequest(http.MethodDelete, "/clientes/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if !resp["deleted"] {
		t.Fatalf("expected deleted=true, got %v", resp)
	}
}
