package repository

import (
	"gorm.io/gorm"

	"github.com/LICASKJS/backend-engeman/internal/app/model"
	"github.com/LICASKJS/backend-engeman/pkg/logger"
)

type DocumentoRepository interface {
	Create(documento *model.Documento) error
	FindByID(id uint) (*model.Documento, error)
	FindByFornecedor(fornecedorID uint) ([]model.Documento, error)
	FindRecentes(limit int) ([]model.Documento, error)
	Delete(id uint) error
	Count() (int64, error)
}

type documentoRepository struct {
	db *gorm.DB
}

func NewDocumentoRepository(db *gorm.DB) DocumentoRepository {
	return &documentoRepository{db: db}
}

func (r *documentoRepository) Create(documento *model.Documento) error {
	if err := r.db.Create(documento).Error; err != nil {
		logger.Error("Falha ao registrar documento no banco", err, map[string]interface{}{
			"fornecedor_id": documento.FornecedorID,
			"nome":          documento.NomeDocumento,
		})
		return err
	}

	logger.Debug("Documento registrado no banco", map[string]interface{}{
		"documento_id":  documento.ID,
		"fornecedor_id": documento.FornecedorID,
	})
	return nil
}

func (r *documentoRepository) FindByID(id uint) (*model.Documento, error) {
	var documento model.Documento
	if err := r.db.First(&documento, id).Error; err != nil {
		return nil, err
	}
	return &documento, nil
}

func (r *documentoRepository) FindByFornecedor(fornecedorID uint) ([]model.Documento, error) {
	var documentos []model.Documento
	err := r.db.
		Where("fornecedor_id = ?", fornecedorID).
		Order("data_upload DESC").
		Find(&documentos).Error
	if err != nil {
		logger.Error("Falha ao listar documentos do fornecedor", err, map[string]interface{}{
			"fornecedor_id": fornecedorID,
		})
		return nil, err
	}
	return documentos, nil
}

// FindRecentes retorna os últimos envios para o feed de notificações
func (r *documentoRepository) FindRecentes(limit int) ([]model.Documento, error) {
	var documentos []model.Documento
	err := r.db.
		Order("data_upload DESC").
		Limit(limit).
		Find(&documentos).Error
	if err != nil {
		logger.Error("Falha ao listar documentos recentes", err)
		return nil, err
	}
	return documentos, nil
}

func (r *documentoRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Documento{}, id).Error; err != nil {
		logger.Error("Falha ao excluir documento", err, map[string]interface{}{
			"documento_id": id,
		})
		return err
	}
	return nil
}

func (r *documentoRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Documento{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
