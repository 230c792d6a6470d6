package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hipotecalia/crm-backend/internal/services"
)

type TareaHandler struct {
	tareaService services.TareaService
}

func NewTareaHandler(tareaService services.TareaService) *TareaHandler {
	return &TareaHandler{tareaService: tareaService}
}

// POST /tareas
func (th *TareaHandler) Create(c *gin.Context) {
	var req services.TareaCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}
	created, err := th.tareaService.Create(c.Request.Context(), req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, created)
}

// GET /tareas
func (th *TareaHandler) List(c *gin.Context) {
	tareas, err := th.tareaService.List(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, tareas)
}

// GET /tareas/:id
func (th *TareaHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid tarea id"))
		return
	}
	tarea, err := th.tareaService.Get(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, tarea)
}

// GET /tareas/expediente/:expedienteId
func (th *TareaHandler) ListByExpediente(c *gin.Context) {
	expedienteID, err := uuid.Parse(c.Param("expedienteId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid expediente id"))
		return
	}
	tareas, err := th.tareaService.ListByExpediente(c.Request.Context(), expedienteID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, tareas)
}

// PATCH /tareas/:id
func (th *TareaHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid tarea id"))
		return
	}
	var req services.TareaUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}
	updated, err := th.tareaService.Update(c.Request.Context(), id, req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, updated)
}

// DELETE /tareas/:id
func (th *TareaHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid tarea id"))
		return
	}
	if err := th.tareaService.Remove(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
