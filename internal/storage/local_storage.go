package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/LICASKJS/backend-engeman/pkg/logger"
)

// LocalStorage guarda documentos no disco. Usado em desenvolvimento e
// quando o bucket S3 não está configurado.
type LocalStorage struct {
	baseDir string
}

func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir}
}

func (s *LocalStorage) Save(ctx context.Context, fornecedorID uint, filename string, r io.Reader, size int64) (string, error) {
	key := NovaChave(fornecedorID, filename)
	caminho := filepath.Join(s.baseDir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(caminho), 0o755); err != nil {
		return "", fmt.Errorf("falha ao criar diretório de upload: %w", err)
	}

	f, err := os.Create(caminho)
	if err != nil {
		return "", fmt.Errorf("falha ao criar arquivo de documento: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(caminho)
		return "", fmt.Errorf("falha ao gravar documento: %w", err)
	}

	logger.Debug("Documento gravado em disco", map[string]interface{}{
		"key":  key,
		"size": size,
	})
	return key, nil
}

func (s *LocalStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.baseDir, filepath.FromSlash(key)))
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir documento: %w", err)
	}
	return f, nil
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	if err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(key))); err != nil {
		return fmt.Errorf("falha ao excluir documento: %w", err)
	}
	return nil
}
