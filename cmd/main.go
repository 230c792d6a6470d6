package main

import (
	"fmt"
	"os"

	"github.com/hipotecalia/crm-backend/internal/config"
	"github.com/hipotecalia/crm-backend/internal/db"
	"github.com/hipotecalia/crm-backend/internal/handlers"
	"github.com/hipotecalia/crm-backend/internal/middleware"
	"github.com/hipotecalia/crm-backend/internal/platform/logger"
	"github.com/hipotecalia/crm-backend/internal/repos"
	"github.com/hipotecalia/crm-backend/internal/server"
	"github.com/hipotecalia/crm-backend/internal/services"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	cfg := config.Load(log)

	// Postgres
	postgresService, err := db.NewPostgresService(cfg, log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	usuarioRepo := repos.NewUsuarioRepo(thePG, log)
	clienteRepo := repos.NewClienteRepo(thePG, log)
	proveedorRepo := repos.NewProveedorRepo(thePG, log)
	expedienteRepo := repos.NewExpedienteRepo(thePG, log)
	tareaRepo := repos.NewTareaRepo(thePG, log)
	documentoRepo := repos.NewDocumentoRepo(thePG, log)
	notificacionRepo := repos.NewNotificacionRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	storageService, err := services.NewLocalStorageService(cfg.UploadDir, log)
	if err != nil {
		log.Error("Could not init StorageService", "error", err)
		os.Exit(1)
	}
	authService := services.NewAuthService(thePG, log, usuarioRepo, cfg.JWTSecret, cfg.TokenTTL)
	usuarioService := services.NewUsuarioService(thePG, log, usuarioRepo)
	clienteService := services.NewClienteService(thePG, log, clienteRepo)
	proveedorService := services.NewProveedorService(thePG, log, proveedorRepo)
	expedienteService := services.NewExpedienteService(thePG, log, expedienteRepo, clienteRepo, usuarioRepo)
	tareaService := services.NewTareaService(thePG, log, tareaRepo, expedienteRepo)
	documentoService := services.NewDocumentoService(thePG, log, documentoRepo, expedienteRepo, storageService)
	notificacionService := services.NewNotificacionService(thePG, log, notificacionRepo, expedienteRepo, tareaRepo)

	// Handlers
	log.Info("Setting up Handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	usuarioHandler := handlers.NewUsuarioHandler(usuarioService)
	clienteHandler := handlers.NewClienteHandler(clienteService)
	proveedorHandler := handlers.NewProveedorHandler(proveedorService)
	expedienteHandler := handlers.NewExpedienteHandler(expedienteService)
	tareaHandler := handlers.NewTareaHandler(tareaService)
	documentoHandler := handlers.NewDocumentoHandler(documentoService)
	notificacionHandler := handlers.NewNotificacionHandler(notificacionService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up Router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:         authHandler,
		AuthMiddleware:      authMiddleware,
		UsuarioHandler:      usuarioHandler,
		ClienteHandler:      clienteHandler,
		ProveedorHandler:    proveedorHandler,
		ExpedienteHandler:   expedienteHandler,
		TareaHandler:        tareaHandler,
		DocumentoHandler:    documentoHandler,
		NotificacionHandler: notificacionHandler,
		CORSOrigins:         cfg.CORSOrigins,
		UploadDir:           cfg.UploadDir,
	})

	log.Info("Starting server...", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Error("Server exited", "error", err)
		os.Exit(1)
	}
}
