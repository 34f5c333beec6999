package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/LICASKJS/backend-engeman/internal/app/model"
	"github.com/LICASKJS/backend-engeman/pkg/logger"
)

type HomologacaoRepository interface {
	Create(homologacao *model.Homologacao) error
	FindByFornecedor(fornecedorID uint) ([]model.Homologacao, error)
	FindMaisRecente(fornecedorID uint) (*model.Homologacao, error)
	Upsert(homologacao *model.Homologacao) error
}

type homologacaoRepository struct {
	db *gorm.DB
}

func NewHomologacaoRepository(db *gorm.DB) HomologacaoRepository {
	return &homologacaoRepository{db: db}
}

func (r *homologacaoRepository) Create(homologacao *model.Homologacao) error {
	if err := r.db.Create(homologacao).Error; err != nil {
		logger.Error("Falha ao criar registro de homologação", err, map[string]interface{}{
			"fornecedor_id": homologacao.FornecedorID,
		})
		return err
	}
	return nil
}

func (r *homologacaoRepository) FindByFornecedor(fornecedorID uint) ([]model.Homologacao, error) {
	var homologacoes []model.Homologacao
	err := r.db.
		Where("fornecedor_id = ?", fornecedorID).
		Order("id DESC").
		Find(&homologacoes).Error
	if err != nil {
		logger.Error("Falha ao listar homologações do fornecedor", err, map[string]interface{}{
			"fornecedor_id": fornecedorID,
		})
		return nil, err
	}
	return homologacoes, nil
}

// FindMaisRecente retorna o registro de maior id do fornecedor, usado
// como fonte interna quando as planilhas não têm linha correspondente
func (r *homologacaoRepository) FindMaisRecente(fornecedorID uint) (*model.Homologacao, error) {
	var homologacao model.Homologacao
	err := r.db.
		Where("fornecedor_id = ?", fornecedorID).
		Order("id DESC").
		First(&homologacao).Error
	if err != nil {
		return nil, err
	}
	return &homologacao, nil
}

// Upsert atualiza o registro mais recente do fornecedor ou cria um novo
// quando não existe nenhum
func (r *homologacaoRepository) Upsert(homologacao *model.Homologacao) error {
	existente, err := r.FindMaisRecente(homologacao.FornecedorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.Create(homologacao)
		}
		return err
	}

	existente.IQF = homologacao.IQF
	existente.Homologacao = homologacao.Homologacao
	existente.Observacoes = homologacao.Observacoes
	if err := r.db.Save(existente).Error; err != nil {
		logger.Error("Falha ao atualizar registro de homologação", err, map[string]interface{}{
			"fornecedor_id": homologacao.FornecedorID,
		})
		return err
	}
	homologacao.ID = existente.ID
	return nil
}
