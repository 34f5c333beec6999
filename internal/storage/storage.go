package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DocumentoStorage guarda os arquivos enviados pelos fornecedores. O
// caminho retornado por Save é a chave persistida em model.Documento.
type DocumentoStorage interface {
	Save(ctx context.Context, fornecedorID uint, filename string, r io.Reader, size int64) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// NovaChave gera a chave única do documento preservando a extensão
func NovaChave(fornecedorID uint, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("documentos/%d/%s%s", fornecedorID, uuid.New().String(), ext)
}

// ValidateFileSize valida o tamanho do arquivo
func ValidateFileSize(size int64, maxSize int64) error {
	if size > maxSize {
		return fmt.Errorf("arquivo excede o tamanho máximo de %d bytes", maxSize)
	}
	return nil
}

// ValidateExtension valida a extensão contra a lista permitida
func ValidateExtension(filename string, allowed []string) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	for _, a := range allowed {
		if ext == strings.ToLower(a) {
			return nil
		}
	}
	return fmt.Errorf("extensão %q não é permitida", ext)
}
