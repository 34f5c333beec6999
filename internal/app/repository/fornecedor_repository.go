package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/LICASKJS/backend-engeman/internal/app/model"
	"github.com/LICASKJS/backend-engeman/pkg/logger"
)

type FornecedorRepository interface {
	Create(fornecedor *model.Fornecedor) error
	FindByID(id uint) (*model.Fornecedor, error)
	FindByIDCompleto(id uint) (*model.Fornecedor, error)
	FindByEmail(email string) (*model.Fornecedor, error)
	FindByTokenRecuperacao(token string) (*model.Fornecedor, error)
	FindAll() ([]model.Fornecedor, error)
	FindRecentes(limit int) ([]model.Fornecedor, error)
	Update(fornecedor *model.Fornecedor) error
	Count() (int64, error)
	LimparTokensExpirados() error
}

type fornecedorRepository struct {
	db *gorm.DB
}

func NewFornecedorRepository(db *gorm.DB) FornecedorRepository {
	return &fornecedorRepository{db: db}
}

func (r *fornecedorRepository) Create(fornecedor *model.Fornecedor) error {
	logger.Debug("Criando fornecedor no banco", map[string]interface{}{
		"email": fornecedor.Email,
	})

	if err := r.db.Create(fornecedor).Error; err != nil {
		logger.Error("Falha ao criar fornecedor no banco", err, map[string]interface{}{
			"email": fornecedor.Email,
		})
		return err
	}

	logger.Debug("Fornecedor criado no banco", map[string]interface{}{
		"fornecedor_id": fornecedor.ID,
		"email":         fornecedor.Email,
	})
	return nil
}

func (r *fornecedorRepository) FindByID(id uint) (*model.Fornecedor, error) {
	var fornecedor model.Fornecedor
	if err := r.db.First(&fornecedor, id).Error; err != nil {
		logger.Error("Falha ao buscar fornecedor por ID", err, map[string]interface{}{
			"fornecedor_id": id,
		})
		return nil, err
	}
	return &fornecedor, nil
}

// FindByIDCompleto carrega o fornecedor com documentos, homologações e
// decisão administrativa em uma única consulta
func (r *fornecedorRepository) FindByIDCompleto(id uint) (*model.Fornecedor, error) {
	var fornecedor model.Fornecedor
	err := r.db.
		Preload("Documentos").
		Preload("Homologacoes").
		Preload("DecisaoAdmin").
		First(&fornecedor, id).Error
	if err != nil {
		logger.Error("Falha ao buscar fornecedor completo", err, map[string]interface{}{
			"fornecedor_id": id,
		})
		return nil, err
	}
	return &fornecedor, nil
}

func (r *fornecedorRepository) FindByEmail(email string) (*model.Fornecedor, error) {
	var fornecedor model.Fornecedor
	if err := r.db.Where("email = ?", email).First(&fornecedor).Error; err != nil {
		return nil, err
	}
	return &fornecedor, nil
}

func (r *fornecedorRepository) FindByTokenRecuperacao(token string) (*model.Fornecedor, error) {
	var fornecedor model.Fornecedor
	if err := r.db.Where("token_recuperacao = ?", token).First(&fornecedor).Error; err != nil {
		return nil, err
	}
	return &fornecedor, nil
}

func (r *fornecedorRepository) FindAll() ([]model.Fornecedor, error) {
	var fornecedores []model.Fornecedor
	err := r.db.
		Preload("DecisaoAdmin").
		Preload("Homologacoes").
		Order("data_cadastro DESC").
		Find(&fornecedores).Error
	if err != nil {
		logger.Error("Falha ao listar fornecedores", err)
		return nil, err
	}
	return fornecedores, nil
}

// FindRecentes retorna os últimos cadastros para o feed de notificações
func (r *fornecedorRepository) FindRecentes(limit int) ([]model.Fornecedor, error) {
	var fornecedores []model.Fornecedor
	err := r.db.
		Order("data_cadastro DESC").
		Limit(limit).
		Find(&fornecedores).Error
	if err != nil {
		logger.Error("Falha ao listar cadastros recentes", err)
		return nil, err
	}
	return fornecedores, nil
}

func (r *fornecedorRepository) Update(fornecedor *model.Fornecedor) error {
	if err := r.db.Save(fornecedor).Error; err != nil {
		logger.Error("Falha ao atualizar fornecedor", err, map[string]interface{}{
			"fornecedor_id": fornecedor.ID,
		})
		return err
	}
	return nil
}

func (r *fornecedorRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Fornecedor{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// LimparTokensExpirados zera tokens de recuperação vencidos
func (r *fornecedorRepository) LimparTokensExpirados() error {
	result := r.db.Model(&model.Fornecedor{}).
		Where("token_expira < ?", time.Now()).
		Updates(map[string]interface{}{
			"token_recuperacao": nil,
			"token_expira":      nil,
		})
	if result.Error != nil {
		logger.Error("Falha ao limpar tokens expirados", result.Error)
		return result.Error
	}
	if result.RowsAffected > 0 {
		logger.Debug("Tokens de recuperação expirados removidos", map[string]interface{}{
			"count": result.RowsAffected,
		})
	}
	return nil
}
