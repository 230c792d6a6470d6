package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hipotecalia/crm-backend/internal/normalization"
	"github.com/hipotecalia/crm-backend/internal/platform/apierr"
	"github.com/hipotecalia/crm-backend/internal/platform/logger"
	"github.com/hipotecalia/crm-backend/internal/repos"
	"github.com/hipotecalia/crm-backend/internal/types"
)

type DocumentoService interface {
	Create(ctx context.Context, documento *types.Documento) (*types.Documento, error)
	Upload(ctx context.Context, expedienteID uuid.UUID, originalName, mimeType string, src io.Reader) (*types.Documento, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Documento, error)
	List(ctx context.Context) ([]*types.Documento, error)
	ListByExpediente(ctx context.Context, expedienteID uuid.UUID) ([]*types.Documento, error)
}

type documentoService struct {
	db             *gorm.DB
	log            *logger.Logger
	documentoRepo  repos.DocumentoRepo
	expedienteRepo repos.ExpedienteRepo
	storage        StorageService
}

func NewDocumentoService(
	db *gorm.DB,
	baseLog *logger.Logger,
	documentoRepo repos.DocumentoRepo,
	expedienteRepo repos.ExpedienteRepo,
	storage StorageService,
) DocumentoService {
	serviceLog := baseLog.With("service", "DocumentoService")
	return &documentoService{
		db:             db,
		log:            serviceLog,
		documentoRepo:  documentoRepo,
		expedienteRepo: expedienteRepo,
		storage:        storage,
	}
}

// Create records a document whose bytes already live somewhere the URL
// points at. The JSON create path, as opposed to Upload.
func (ds *documentoService) Create(ctx context.Context, documento *types.Documento) (*types.Documento, error) {
	documento.Nombre = normalization.TrimInputString(documento.Nombre)
	if documento.Nombre == "" {
		return nil, apierr.BadRequest("missing_nombre", errors.New("a nombre is required"))
	}
	if documento.URL == "" {
		return nil, apierr.BadRequest("missing_url", errors.New("a url is required"))
	}
	if documento.ExpedienteID == uuid.Nil {
		return nil, apierr.BadRequest("missing_expediente_id", errors.New("an expedienteId is required"))
	}

	var created *types.Documento
	err := ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, eErr := ds.expedienteRepo.Exists(ctx, tx, documento.ExpedienteID)
		if eErr != nil {
			return fmt.Errorf("Failed to check expediente: %w", eErr)
		}
		if !exists {
			return apierr.NotFound("expediente_not_found", fmt.Errorf("expediente %s not found", documento.ExpedienteID))
		}
		row, cErr := ds.documentoRepo.Create(ctx, tx, documento)
		if cErr != nil {
			return fmt.Errorf("Failed to create documento: %w", cErr)
		}
		joined, jErr := ds.documentoRepo.GetByIDWithExpediente(ctx, tx, row.ID)
		if jErr != nil {
			return fmt.Errorf("Failed to reload documento with expediente: %w", jErr)
		}
		created = joined
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Upload stores the raw bytes under a randomized name (original extension
// kept) and records a Documento pointing at /uploads/<name>. The file is
// written before the insert; if the insert fails the stored file is removed
// again so neither side survives alone.
func (ds *documentoService) Upload(ctx context.Context, expedienteID uuid.UUID, originalName, mimeType string, src io.Reader) (*types.Documento, error) {
	if expedienteID == uuid.Nil {
		return nil, apierr.BadRequest("missing_expediente_id", errors.New("an expedienteId is required"))
	}
	originalName = normalization.TrimInputString(originalName)
	if originalName == "" {
		return nil, apierr.BadRequest("missing_file", errors.New("no file provided"))
	}

	exists, eErr := ds.expedienteRepo.Exists(ctx, nil, expedienteID)
	if eErr != nil {
		return nil, fmt.Errorf("Failed to check expediente: %w", eErr)
	}
	if !exists {
		return nil, apierr.NotFound("expediente_not_found", fmt.Errorf("expediente %s not found", expedienteID))
	}

	storedName := randomFileName(originalName)
	if sErr := ds.storage.Save(storedName, src); sErr != nil {
		return nil, fmt.Errorf("Failed to store uploaded file: %w", sErr)
	}

	documento := &types.Documento{
		Nombre:       originalName,
		TipoMime:     mimeType,
		URL:          "/uploads/" + storedName,
		ExpedienteID: expedienteID,
	}
	var created *types.Documento
	err := ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, cErr := ds.documentoRepo.Create(ctx, tx, documento)
		if cErr != nil {
			return fmt.Errorf("Failed to create documento: %w", cErr)
		}
		joined, jErr := ds.documentoRepo.GetByIDWithExpediente(ctx, tx, row.ID)
		if jErr != nil {
			return fmt.Errorf("Failed to reload documento with expediente: %w", jErr)
		}
		created = joined
		return nil
	})
	if err != nil {
		if rErr := ds.storage.Remove(storedName); rErr != nil {
			ds.log.Warn("Failed to remove stored file after insert failure", "name", storedName, "error", rErr)
		}
		return nil, err
	}
	ds.log.Info("Stored documento upload", "documento_id", created.ID, "stored_name", storedName)
	return created, nil
}

func (ds *documentoService) Get(ctx context.Context, id uuid.UUID) (*types.Documento, error) {
	documento, err := ds.documentoRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("documento_not_found", err)
		}
		return nil, err
	}
	return documento, nil
}

func (ds *documentoService) List(ctx context.Context) ([]*types.Documento, error) {
	return ds.documentoRepo.List(ctx, nil)
}

func (ds *documentoService) ListByExpediente(ctx context.Context, expedienteID uuid.UUID) ([]*types.Documento, error) {
	return ds.documentoRepo.ListByExpediente(ctx, nil, expedienteID)
}

// randomFileName is 32 hex chars plus the original extension.
func randomFileName(originalName string) string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is effectively fatal elsewhere; fall back to a
		// uuid rather than panic.
		return uuid.NewString() + filepath.Ext(originalName)
	}
	return hex.EncodeToString(buf) + filepath.Ext(originalName)
}
