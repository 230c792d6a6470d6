package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hipotecalia/crm-backend/internal/services"
)

type ExpedienteHandler struct {
	expedienteService services.ExpedienteService
}

func NewExpedienteHandler(expedienteService services.ExpedienteService) *ExpedienteHandler {
	return &ExpedienteHandler{expedienteService: expedienteService}
}

// POST /expedientes
func (eh *ExpedienteHandler) Create(c *gin.Context) {
	var req services.ExpedienteCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}
	created, err := eh.expedienteService.Create(c.Request.Context(), req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, created)
}

// GET /expedientes
func (eh *ExpedienteHandler) List(c *gin.Context) {
	expedientes, err := eh.expedienteService.List(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, expedientes)
}

// GET /expedientes/:id
func (eh *ExpedienteHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid expediente id"))
		return
	}
	expediente, err := eh.expedienteService.Get(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, expediente)
}

// PATCH /expedientes/:id
func (eh *ExpedienteHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid expediente id"))
		return
	}
	var req services.ExpedienteUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}
	updated, err := eh.expedienteService.Update(c.Request.Context(), id, req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, updated)
}
