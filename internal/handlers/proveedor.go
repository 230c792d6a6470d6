package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hipotecalia/crm-backend/internal/services"
	"github.com/hipotecalia/crm-backend/internal/types"
)

type ProveedorHandler struct {
	proveedorService services.ProveedorService
}

func NewProveedorHandler(proveedorService services.ProveedorService) *ProveedorHandler {
	return &ProveedorHandler{proveedorService: proveedorService}
}

// POST /proveedores
// Same {data: {...}} envelope as clientes.
func (ph *ProveedorHandler) Create(c *gin.Context) {
	var req struct {
		Data types.Proveedor `json:"data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}
	created, err := ph.proveedorService.Create(c.Request.Context(), &req.Data)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, created)
}

// GET /proveedores/:id
func (ph *ProveedorHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid proveedor id"))
		return
	}
	proveedor, err := ph.proveedorService.Get(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, proveedor)
}

// GET /proveedores
func (ph *ProveedorHandler) List(c *gin.Context) {
	proveedores, err := ph.proveedorService.List(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, proveedores)
}

// PATCH /proveedores/:id
func (ph *ProveedorHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid proveedor id"))
		return
	}
	var req struct {
		Data services.ProveedorUpdate `json:"data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}
	updated, err := ph.proveedorService.Update(c.Request.Context(), id, req.Data)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, updated)
}

// DELETE /proveedores/:id
func (ph *ProveedorHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid proveedor id"))
		return
	}
	if err := ph.proveedorService.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
