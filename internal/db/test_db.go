package db

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/LICASKJS/backend-engeman/internal/app/model"
)

// SetupTestDB cria um SQLite em memória com o esquema completo
func SetupTestDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir banco de teste: %w", err)
	}

	err = db.AutoMigrate(
		&model.Fornecedor{},
		&model.Documento{},
		&model.Homologacao{},
		&model.DecisaoFornecedor{},
	)
	if err != nil {
		return nil, fmt.Errorf("falha ao migrar banco de teste: %w", err)
	}

	return db, nil
}

// CleanupTestDB encerra o banco de teste
func CleanupTestDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Falha ao obter conexão do banco de teste: %v", err)
		return
	}
	sqlDB.Close()
}

// TruncateAllTables limpa os dados entre testes
func TruncateAllTables(db *gorm.DB) error {
	tables := []string{"decisoes_fornecedor", "homologacoes", "documentos", "fornecedores"}
	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return err
		}
	}
	return nil
}
