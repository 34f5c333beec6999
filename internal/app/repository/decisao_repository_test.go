package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/LICASKJS/backend-engeman/internal/app/model"
	"github.com/LICASKJS/backend-engeman/internal/db"
)

func setupDecisaoTest(t *testing.T) (*gorm.DB, DecisaoRepository, uint) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	fornecedor := novoFornecedor("contato@acosbrasil.com.br", "12345678000190")
	require.NoError(t, testDB.Create(fornecedor).Error)

	return testDB, NewDecisaoRepository(testDB), fornecedor.ID
}

func TestDecisaoRepository_Upsert(t *testing.T) {
	testDB, repo, fornecedorID := setupDecisaoTest(t)
	defer db.CleanupTestDB(testDB)

	nota := 55.0
	primeira := &model.DecisaoFornecedor{
		FornecedorID:   fornecedorID,
		Status:         model.DecisaoReprovado,
		NotaReferencia: &nota,
		Observacao:     "IQF abaixo do mínimo",
		AvaliadorEmail: "qualidade@engeman.com.br",
	}
	require.NoError(t, repo.Upsert(primeira))
	require.NotZero(t, primeira.ID)

	// Segundo upsert substitui a decisão em vez de criar outra
	segunda := &model.DecisaoFornecedor{
		FornecedorID:   fornecedorID,
		Status:         model.DecisaoAprovado,
		Observacao:     "Plano de ação concluído",
		AvaliadorEmail: "qualidade@engeman.com.br",
	}
	require.NoError(t, repo.Upsert(segunda))
	assert.Equal(t, primeira.ID, segunda.ID)

	var count int64
	require.NoError(t, testDB.Model(&model.DecisaoFornecedor{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	atual, err := repo.FindByFornecedor(fornecedorID)
	require.NoError(t, err)
	assert.Equal(t, model.DecisaoAprovado, atual.Status)
	assert.Nil(t, atual.NotaReferencia)
	assert.Nil(t, atual.EmailEnviadoEm)
}

func TestDecisaoRepository_MarcarEmailEnviado(t *testing.T) {
	testDB, repo, fornecedorID := setupDecisaoTest(t)
	defer db.CleanupTestDB(testDB)

	decisao := &model.DecisaoFornecedor{
		FornecedorID:   fornecedorID,
		Status:         model.DecisaoAprovado,
		AvaliadorEmail: "qualidade@engeman.com.br",
	}
	require.NoError(t, repo.Upsert(decisao))
	require.NoError(t, repo.MarcarEmailEnviado(decisao.ID))

	atual, err := repo.FindByFornecedor(fornecedorID)
	require.NoError(t, err)
	assert.NotNil(t, atual.EmailEnviadoEm)
}

func TestDecisaoRepository_CountPorStatus(t *testing.T) {
	testDB, repo, fornecedorID := setupDecisaoTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Upsert(&model.DecisaoFornecedor{
		FornecedorID:   fornecedorID,
		Status:         model.DecisaoAprovado,
		AvaliadorEmail: "qualidade@engeman.com.br",
	}))

	aprovados, err := repo.CountPorStatus(model.DecisaoAprovado)
	require.NoError(t, err)
	assert.Equal(t, int64(1), aprovados)

	reprovados, err := repo.CountPorStatus(model.DecisaoReprovado)
	require.NoError(t, err)
	assert.Zero(t, reprovados)
}
