package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hipotecalia/crm-backend/internal/services"
	"github.com/hipotecalia/crm-backend/internal/types"
)

type DocumentoHandler struct {
	documentoService services.DocumentoService
}

func NewDocumentoHandler(documentoService services.DocumentoService) *DocumentoHandler {
	return &DocumentoHandler{documentoService: documentoService}
}

// POST /documentos
func (dh *DocumentoHandler) Create(c *gin.Context) {
	var req types.Documento
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}
	created, err := dh.documentoService.Create(c.Request.Context(), &req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, created)
}

// POST /documentos/upload, multipart with a "file" part and an
// "expedienteId" form field.
func (dh *DocumentoHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "missing_file", errors.New("no file provided"))
		return
	}
	expedienteID, err := uuid.Parse(c.PostForm("expedienteId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_expediente_id", errors.New("invalid expediente id"))
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "unreadable_file", errors.New("could not read uploaded file"))
		return
	}
	defer src.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	created, err := dh.documentoService.Upload(c.Request.Context(), expedienteID, fileHeader.Filename, mimeType, src)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, created)
}

// GET /documentos
func (dh *DocumentoHandler) List(c *gin.Context) {
	documentos, err := dh.documentoService.List(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, documentos)
}

// GET /documentos/:id
func (dh *DocumentoHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid documento id"))
		return
	}
	documento, err := dh.documentoService.Get(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, documento)
}

// GET /documentos/expediente/:expedienteId
func (dh *DocumentoHandler) ListByExpediente(c *gin.Context) {
	expedienteID, err := uuid.Parse(c.Param("expedienteId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid expediente id"))
		return
	}
	documentos, err := dh.documentoService.ListByExpediente(c.Request.Context(), expedienteID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, documentos)
}
