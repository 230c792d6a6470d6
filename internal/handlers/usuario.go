package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hipotecalia/crm-backend/internal/services"
	"github.com/hipotecalia/crm-backend/internal/types"
)

type UsuarioHandler struct {
	usuarioService services.UsuarioService
}

func NewUsuarioHandler(usuarioService services.UsuarioService) *UsuarioHandler {
	return &UsuarioHandler{usuarioService: usuarioService}
}

// POST /user/create
func (uh *UsuarioHandler) CreateUser(c *gin.Context) {
	var req struct {
		Email     string    `json:"email"`
		Nombre    string    `json:"nombre"`
		Apellidos string    `json:"apellidos"`
		Password  string    `json:"password"`
		Rol       types.Rol `json:"rol"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}
	usuario := types.Usuario{
		Email:     req.Email,
		Nombre:    req.Nombre,
		Apellidos: req.Apellidos,
		Password:  req.Password,
		Rol:       req.Rol,
	}
	created, err := uh.usuarioService.CreateUser(c.Request.Context(), &usuario)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, created)
}
