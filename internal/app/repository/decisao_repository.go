package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/LICASKJS/backend-engeman/internal/app/model"
	"github.com/LICASKJS/backend-engeman/pkg/logger"
)

type DecisaoRepository interface {
	FindByFornecedor(fornecedorID uint) (*model.DecisaoFornecedor, error)
	FindRecentes(limit int) ([]model.DecisaoFornecedor, error)
	Upsert(decisao *model.DecisaoFornecedor) error
	MarcarEmailEnviado(id uint) error
	CountPorStatus(status model.StatusDecisao) (int64, error)
}

type decisaoRepository struct {
	db *gorm.DB
}

func NewDecisaoRepository(db *gorm.DB) DecisaoRepository {
	return &decisaoRepository{db: db}
}

func (r *decisaoRepository) FindByFornecedor(fornecedorID uint) (*model.DecisaoFornecedor, error) {
	var decisao model.DecisaoFornecedor
	err := r.db.Where("fornecedor_id = ?", fornecedorID).First(&decisao).Error
	if err != nil {
		return nil, err
	}
	return &decisao, nil
}

// FindRecentes retorna as últimas decisões para o feed de notificações
func (r *decisaoRepository) FindRecentes(limit int) ([]model.DecisaoFornecedor, error) {
	var decisoes []model.DecisaoFornecedor
	err := r.db.
		Order("atualizado_em DESC").
		Limit(limit).
		Find(&decisoes).Error
	if err != nil {
		logger.Error("Falha ao listar decisões recentes", err)
		return nil, err
	}
	return decisoes, nil
}

// Upsert grava a decisão única do fornecedor, substituindo a anterior
func (r *decisaoRepository) Upsert(decisao *model.DecisaoFornecedor) error {
	existente, err := r.FindByFornecedor(decisao.FornecedorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := r.db.Create(decisao).Error; err != nil {
				logger.Error("Falha ao criar decisão do fornecedor", err, map[string]interface{}{
					"fornecedor_id": decisao.FornecedorID,
				})
				return err
			}
			return nil
		}
		return err
	}

	existente.Status = decisao.Status
	existente.NotaReferencia = decisao.NotaReferencia
	existente.Observacao = decisao.Observacao
	existente.AvaliadorEmail = decisao.AvaliadorEmail
	existente.EmailEnviadoEm = nil
	if err := r.db.Save(existente).Error; err != nil {
		logger.Error("Falha ao atualizar decisão do fornecedor", err, map[string]interface{}{
			"fornecedor_id": decisao.FornecedorID,
		})
		return err
	}
	*decisao = *existente
	return nil
}

func (r *decisaoRepository) MarcarEmailEnviado(id uint) error {
	now := time.Now()
	err := r.db.Model(&model.DecisaoFornecedor{}).
		Where("id = ?", id).
		Update("email_enviado_em", now).Error
	if err != nil {
		logger.Error("Falha ao marcar envio de e-mail da decisão", err, map[string]interface{}{
			"decisao_id": id,
		})
	}
	return err
}

func (r *decisaoRepository) CountPorStatus(status model.StatusDecisao) (int64, error) {
	var count int64
	err := r.db.Model(&model.DecisaoFornecedor{}).
		Where("status = ?", status).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
