package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hipotecalia/crm-backend/internal/services"
	"github.com/hipotecalia/crm-backend/internal/types"
)

type ClienteHandler struct {
	clienteService services.ClienteService
}

func NewClienteHandler(clienteService services.ClienteService) *ClienteHandler {
	return &ClienteHandler{clienteService: clienteService}
}

// POST /clientes
// The dashboard wraps the cliente in a {data: {...}} envelope; other
// entities post flat bodies. The asymmetry is part of the wire contract.
func (ch *ClienteHandler) Create(c *gin.Context) {
	var req struct {
		Data types.Cliente `json:"data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}
	created, err := ch.clienteService.Create(c.Request.Context(), &req.Data)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, created)
}

// GET /clientes/:id
func (ch *ClienteHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid cliente id"))
		return
	}
	cliente, err := ch.clienteService.Get(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, cliente)
}

// GET /clientes
func (ch *ClienteHandler) List(c *gin.Context) {
	clientes, err := ch.clienteService.List(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, clientes)
}

// PATCH /clientes/:id
func (ch *ClienteHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid cliente id"))
		return
	}
	var req struct {
		Data services.ClienteUpdate `json:"data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}
	updated, err := ch.clienteService.Update(c.Request.Context(), id, req.Data)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, updated)
}

// DELETE /clientes/:id
func (ch *ClienteHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid cliente id"))
		return
	}
	if err := ch.clienteService.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
