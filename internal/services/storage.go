package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hipotecalia/crm-backend/internal/platform/logger"
)

// StorageService is the local-disk file store behind document uploads.
// Files are keyed by a randomized name; the directory is served statically
// by the router under /uploads.
type StorageService interface {
	Save(name string, src io.Reader) error
	Remove(name string) error
	Dir() string
}

type localStorageService struct {
	dir string
	log *logger.Logger
}

func NewLocalStorageService(dir string, baseLog *logger.Logger) (StorageService, error) {
	serviceLog := baseLog.With("service", "StorageService")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("Failed to create upload directory %s: %w", dir, err)
	}
	return &localStorageService{dir: dir, log: serviceLog}, nil
}

func (ls *localStorageService) Save(name string, src io.Reader) error {
	if err := validateName(name); err != nil {
		return err
	}
	path := filepath.Join(ls.dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("Failed to create file %s: %w", name, err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("Failed to write file %s: %w", name, err)
	}
	ls.log.Debug("Stored file", "name", name)
	return nil
}

func (ls *localStorageService) Remove(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	return os.Remove(filepath.Join(ls.dir, name))
}

func (ls *localStorageService) Dir() string {
	return ls.dir
}

// Names are generated server-side, but a stray separator must never escape
// the upload directory.
func validateName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return fmt.Errorf("invalid storage name %q", name)
	}
	return nil
}
