package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hipotecalia/crm-backend/internal/services"
)

type NotificacionHandler struct {
	notificacionService services.NotificacionService
}

func NewNotificacionHandler(notificacionService services.NotificacionService) *NotificacionHandler {
	return &NotificacionHandler{notificacionService: notificacionService}
}

// POST /notificaciones
func (nh *NotificacionHandler) Create(c *gin.Context) {
	var req services.NotificacionCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}
	created, err := nh.notificacionService.Create(c.Request.Context(), req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, created)
}

// GET /notificaciones
func (nh *NotificacionHandler) List(c *gin.Context) {
	notificaciones, err := nh.notificacionService.List(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, notificaciones)
}

// GET /notificaciones/:id
func (nh *NotificacionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid notificacion id"))
		return
	}
	notificacion, err := nh.notificacionService.Get(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, notificacion)
}

// GET /notificaciones/expediente/:expedienteId
func (nh *NotificacionHandler) ListByExpediente(c *gin.Context) {
	expedienteID, err := uuid.Parse(c.Param("expedienteId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid expediente id"))
		return
	}
	notificaciones, err := nh.notificacionService.ListByExpediente(c.Request.Context(), expedienteID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, notificaciones)
}

// PATCH /notificaciones/:id
func (nh *NotificacionHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid notificacion id"))
		return
	}
	var req services.NotificacionUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}
	updated, err := nh.notificacionService.Update(c.Request.Context(), id, req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, updated)
}

// DELETE /notificaciones/:id
func (nh *NotificacionHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid notificacion id"))
		return
	}
	if err := nh.notificacionService.Remove(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
