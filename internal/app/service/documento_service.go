package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"gorm.io/gorm"

	"github.com/LICASKJS/backend-engeman/config"
	"github.com/LICASKJS/backend-engeman/internal/app/model"
	"github.com/LICASKJS/backend-engeman/internal/app/repository"
	"github.com/LICASKJS/backend-engeman/internal/storage"
	"github.com/LICASKJS/backend-engeman/internal/websocket"
	"github.com/LICASKJS/backend-engeman/pkg/logger"
	"github.com/LICASKJS/backend-engeman/pkg/mailer"
)

var (
	ErrDocumentoNaoEncontrado = errors.New("documento não encontrado")
	ErrArquivoInvalido        = errors.New("arquivo inválido")
)

type DocumentoService interface {
	Upload(ctx context.Context, fornecedorID uint, filename, categoria string, r io.Reader, size int64) (*model.Documento, error)
	Listar(fornecedorID uint) ([]model.Documento, error)
	Abrir(ctx context.Context, fornecedorID, documentoID uint) (io.ReadCloser, *model.Documento, error)
}

type documentoService struct {
	documentoRepo  repository.DocumentoRepository
	fornecedorRepo repository.FornecedorRepository
	storage        storage.DocumentoStorage
	mailer         mailer.Mailer
	hub            *websocket.Hub
	uploadCfg      *config.UploadConfig
	contatoInbox   string
}

func NewDocumentoService(
	documentoRepo repository.DocumentoRepository,
	fornecedorRepo repository.FornecedorRepository,
	st storage.DocumentoStorage,
	m mailer.Mailer,
	hub *websocket.Hub,
	uploadCfg *config.UploadConfig,
	contatoInbox string,
) DocumentoService {
	return &documentoService{
		documentoRepo:  documentoRepo,
		fornecedorRepo: fornecedorRepo,
		storage:        st,
		mailer:         m,
		hub:            hub,
		uploadCfg:      uploadCfg,
		contatoInbox:   contatoInbox,
	}
}

// Upload valida, grava o arquivo e registra o documento. O aviso por
// e-mail à equipe de suprimentos é best-effort: falha de SMTP não
// desfaz o upload.
func (s *documentoService) Upload(ctx context.Context, fornecedorID uint, filename, categoria string, r io.Reader, size int64) (*model.Documento, error) {
	fornecedor, err := s.fornecedorRepo.FindByID(fornecedorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFornecedorNaoEncontrado
		}
		return nil, err
	}

	if err := storage.ValidateExtension(filename, s.uploadCfg.AllowedExtensions); err != nil {
		logger.Warn("Upload recusado: extensão não permitida", map[string]interface{}{
			"fornecedor_id": fornecedorID,
			"filename":      filename,
		})
		return nil, fmt.Errorf("%w: %v", ErrArquivoInvalido, err)
	}
	if err := storage.ValidateFileSize(size, s.uploadCfg.MaxSizeBytes); err != nil {
		logger.Warn("Upload recusado: arquivo muito grande", map[string]interface{}{
			"fornecedor_id": fornecedorID,
			"size":          size,
		})
		return nil, fmt.Errorf("%w: %v", ErrArquivoInvalido, err)
	}

	key, err := s.storage.Save(ctx, fornecedorID, filename, r, size)
	if err != nil {
		return nil, err
	}

	documento := &model.Documento{
		NomeDocumento: filename,
		Categoria:     categoria,
		Caminho:       key,
		DataUpload:    time.Now(),
		FornecedorID:  fornecedorID,
	}
	if err := s.documentoRepo.Create(documento); err != nil {
		// Sem registro no banco o arquivo órfão é removido
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			logger.Error("Falha ao remover arquivo órfão", delErr, map[string]interface{}{
				"key": key,
			})
		}
		return nil, err
	}

	s.notificarEquipe(fornecedor, documento)
	if s.hub != nil {
		s.hub.BroadcastEvento("documento_enviado", map[string]interface{}{
			"fornecedor_id": fornecedorID,
			"fornecedor":    fornecedor.Nome,
			"documento":     documento.NomeDocumento,
		})
	}

	logger.Info("Documento enviado", map[string]interface{}{
		"documento_id":  documento.ID,
		"fornecedor_id": fornecedorID,
	})
	return documento, nil
}

func (s *documentoService) Listar(fornecedorID uint) ([]model.Documento, error) {
	return s.documentoRepo.FindByFornecedor(fornecedorID)
}

// Abrir entrega o conteúdo de um documento, garantindo que ele pertence
// ao fornecedor informado
func (s *documentoService) Abrir(ctx context.Context, fornecedorID, documentoID uint) (io.ReadCloser, *model.Documento, error) {
	documento, err := s.documentoRepo.FindByID(documentoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrDocumentoNaoEncontrado
		}
		return nil, nil, err
	}
	if fornecedorID != 0 && documento.FornecedorID != fornecedorID {
		return nil, nil, ErrDocumentoNaoEncontrado
	}

	rc, err := s.storage.Open(ctx, documento.Caminho)
	if err != nil {
		return nil, nil, err
	}
	return rc, documento, nil
}

func (s *documentoService) notificarEquipe(fornecedor *model.Fornecedor, documento *model.Documento) {
	if s.mailer == nil || s.contatoInbox == "" {
		return
	}

	corpo := fmt.Sprintf(
		"<p>O fornecedor <strong>%s</strong> (CNPJ %s) enviou o documento <strong>%s</strong>.</p>",
		fornecedor.Nome, fornecedor.CNPJ, documento.NomeDocumento,
	)
	if err := s.mailer.Send([]string{s.contatoInbox}, "Nova documentação recebida - Portal de Fornecedores", corpo); err != nil {
		logger.Warn("Aviso de documentação não enviado", map[string]interface{}{
			"fornecedor_id": fornecedor.ID,
			"error":         err.Error(),
		})
	}
}
