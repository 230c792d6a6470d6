package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hipotecalia/crm-backend/internal/handlers"
	"github.com/hipotecalia/crm-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler         *handlers.AuthHandler
	AuthMiddleware      *middleware.AuthMiddleware
	UsuarioHandler      *handlers.UsuarioHandler
	ClienteHandler      *handlers.ClienteHandler
	ProveedorHandler    *handlers.ProveedorHandler
	ExpedienteHandler   *handlers.ExpedienteHandler
	TareaHandler        *handlers.TareaHandler
	DocumentoHandler    *handlers.DocumentoHandler
	NotificacionHandler *handlers.NotificacionHandler
	CORSOrigins         []string
	UploadDir           string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/auth/login", cfg.AuthHandler.Login)
	router.Static("/uploads", cfg.UploadDir)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Usuario
	protected.POST("/user/create", cfg.UsuarioHandler.CreateUser)
	// Cliente
	protected.POST("/clientes", cfg.ClienteHandler.Create)
	protected.GET("/clientes", cfg.ClienteHandler.List)
	protected.GET("/clientes/:id", cfg.ClienteHandler.Get)
	protected.PATCH("/clientes/:id", cfg.ClienteHandler.Update)
	protected.DELETE("/clientes/:id", cfg.ClienteHandler.Delete)
	// Proveedor
	protected.POST("/proveedores", cfg.ProveedorHandler.Create)
	protected.GET("/proveedores", cfg.ProveedorHandler.List)
	protected.GET("/proveedores/:id", cfg.ProveedorHandler.Get)
	protected.PATCH("/proveedores/:id", cfg.ProveedorHandler.Update)
	protected.DELETE("/proveedores/:id", cfg.ProveedorHandler.Delete)
	// Expediente
	protected.POST("/expedientes", cfg.ExpedienteHandler.Create)
	protected.GET("/expedientes", cfg.ExpedienteHandler.List)
	protected.GET("/expedientes/:id", cfg.ExpedienteHandler.Get)
	protected.PATCH("/expedientes/:id", cfg.ExpedienteHandler.Update)
	// Tarea
	protected.POST("/tareas", cfg.TareaHandler.Create)
	protected.GET("/tareas", cfg.TareaHandler.List)
	protected.GET("/tareas/expediente/:expedienteId", cfg.TareaHandler.ListByExpediente)
	protected.GET("/tareas/:id", cfg.TareaHandler.Get)
	protected.PATCH("/tareas/:id", cfg.TareaHandler.Update)
	protected.DELETE("/tareas/:id", cfg.TareaHandler.Delete)
	// Documento
	protected.POST("/documentos", cfg.DocumentoHandler.Create)
	protected.POST("/documentos/upload", cfg.DocumentoHandler.Upload)
	protected.GET("/documentos", cfg.DocumentoHandler.List)
	protected.GET("/documentos/expediente/:expedienteId", cfg.DocumentoHandler.ListByExpediente)
	protected.GET("/documentos/:id", cfg.DocumentoHandler.Get)
	// Notificacion
	protected.POST("/notificaciones", cfg.NotificacionHandler.Create)
	protected.GET("/notificaciones", cfg.NotificacionHandler.List)
	protected.GET("/notificaciones/expediente/:expedienteId", cfg.NotificacionHandler.ListByExpediente)
	protected.GET("/notificaciones/:id", cfg.NotificacionHandler.Get)
	protected.PATCH("/notificaciones/:id", cfg.NotificacionHandler.Update)
	protected.DELETE("/notificaciones/:id", cfg.NotificacionHandler.Delete)

	return router
}
