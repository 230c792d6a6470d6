package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hipotecalia/crm-backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeDocumentoService struct {
	uploadCalls  int
	expedienteID uuid.UUID
	originalName string
	mimeType     string
	body         []byte
}

func (f *fakeDocumentoService) Create(ctx context.Context, documento *types.Documento) (*types.Documento, error) {
	documento.ID = uuid.New()
	return documento, nil
}

func (f *fakeDocumentoService) Upload(ctx context.Context, expedienteID uuid.UUID, originalName, mimeType string, src io.Reader) (*types.Documento, error) {
	f.uploadCalls++
	f.expedienteID = expedienteID
	f.originalName = originalName
	f.mimeType = mimeType
	f.body, _ = io.ReadAll(src)
	return &types.Documento{
		ID:           uuid.New(),
		Nombre:       originalName,
		TipoMime:     mimeType,
		URL:          "/uploads/deadbeef.pdf",
		ExpedienteID: expedienteID,
	}, nil
}

func (f *fakeDocumentoService) Get(ctx context.Context, id uuid.UUID) (*types.Documento, error) {
	return &types.Documento{ID: id}, nil
}

func (f *fakeDocumentoService) List(ctx context.Context) ([]*types.Documento, error) {
	return nil, nil
}

func (f *fakeDocumentoService) ListByExpediente(ctx context.Context, expedienteID uuid.UUID) ([]*types.Documento, error) {
	return nil, nil
}

func newDocumentoRouter(svc *fakeDocumentoService) *gin.Engine {
	router := gin.New()
	handler := NewDocumentoHandler(svc)
	router.POST("/documentos/upload", handler.Upload)
	return router
}

func TestDocumentoUpload_MissingFilePartIsRejected(t *testing.T) {
	svc := &fakeDocumentoService{}
	router := newDocumentoRouter(svc)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("expedienteId", uuid.NewString()); err != nil {
		t.Fatalf("failed to build form: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/documentos/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	var envelope ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to parse error body: %v", err)
	}
	if envelope.Error.Code != "missing_file" {
		t.Fatalf("expected code missing_file, got %q", envelope.Error.Code)
	}
	if svc.uploadCalls != 0 {
		t.Fatalf("service must not be called without a file part")
	}
}

func TestDocumentoUpload_InvalidExpedienteIDIsRejected(t *testing.T) {
	svc := &fakeDocumentoService{}
	router := newDocumentoRouter(svc)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "dni.jpg")
	if err != nil {
		t.Fatalf("failed to build form: %v", err)
	}
	part.Write([]byte("bytes"))
	writer.WriteField("expedienteId", "not-a-uuid")
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/documentos/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if svc.uploadCalls != 0 {
		t.Fatalf("service must not be called with a bad expediente id")
	}
}

func TestDocumentoUpload_PassesFileToService(t *testing.T) {
	svc := &fakeDocumentoService{}
	router := newDocumentoRouter(svc)
	expedienteID := uuid.New()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="file"; filename="nomina.pdf"`}
	header["Content-Type"] = []string{"application/pdf"}
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("failed to build form: %v", err)
	}
	part.Write([]byte("%PDF-1.7 fake"))
	writer.WriteField("expedienteId", expedienteID.String())
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/documentos/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.uploadCalls != 1 {
		t.Fatalf("expected one upload call, got %d", svc.uploadCalls)
	}
	if svc.expedienteID != expedienteID {
		t.Fatalf("expediente id not forwarded")
	}
	if svc.originalName != "nomina.pdf" || svc.mimeType != "application/pdf" {
		t.Fatalf("file metadata not forwarded: %q %q", svc.originalName, svc.mimeType)
	}
	if string(svc.body) != "%PDF-1.7 fake" {
		t.Fatalf("file bytes not forwarded")
	}
}
