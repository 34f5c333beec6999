package db

import (
	"github.com/LICASKJS/backend-engeman/internal/app/model"
	"github.com/LICASKJS/backend-engeman/pkg/logger"
)

// Migrate executa as migrações automáticas do esquema
func Migrate() error {
	logger.Info("Executando migrações do banco...")

	models := []interface{}{
		&model.Fornecedor{},
		&model.Documento{},
		&model.Homologacao{},
		&model.DecisaoFornecedor{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Falha ao executar migrações", err)
		return err
	}

	logger.Info("Migrações concluídas", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}
