package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/LICASKJS/backend-engeman/internal/app/model"
	"github.com/LICASKJS/backend-engeman/internal/db"
)

func setupFornecedorTest(t *testing.T) (*gorm.DB, FornecedorRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewFornecedorRepository(testDB)
	return testDB, repo
}

func novoFornecedor(email, cnpj string) *model.Fornecedor {
	return &model.Fornecedor{
		Nome:      "Aços Brasil Ltda",
		Email:     email,
		CNPJ:      cnpj,
		SenhaHash: "hash",
		Categoria: "Matéria-prima",
	}
}

func TestFornecedorRepository_Create(t *testing.T) {
	testDB, repo := setupFornecedorTest(t)
	defer db.CleanupTestDB(testDB)

	tests := []struct {
		name       string
		fornecedor *model.Fornecedor
		wantErr    bool
	}{
		{
			name:       "fornecedor válido",
			fornecedor: novoFornecedor("contato@acosbrasil.com.br", "12345678000190"),
			wantErr:    false,
		},
		{
			name:       "email duplicado",
			fornecedor: novoFornecedor("contato@acosbrasil.com.br", "98765432000110"),
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(tt.fornecedor)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotZero(t, tt.fornecedor.ID)
			}
		})
	}
}

func TestFornecedorRepository_FindByEmail(t *testing.T) {
	testDB, repo := setupFornecedorTest(t)
	defer db.CleanupTestDB(testDB)

	fornecedor := novoFornecedor("contato@acosbrasil.com.br", "12345678000190")
	require.NoError(t, repo.Create(fornecedor))

	found, err := repo.FindByEmail("contato@acosbrasil.com.br")
	require.NoError(t, err)
	assert.Equal(t, fornecedor.ID, found.ID)
	assert.Equal(t, "12345678000190", found.CNPJ)

	_, err = repo.FindByEmail("ninguem@exemplo.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFornecedorRepository_FindByIDCompleto(t *testing.T) {
	testDB, repo := setupFornecedorTest(t)
	defer db.CleanupTestDB(testDB)

	fornecedor := novoFornecedor("contato@acosbrasil.com.br", "12345678000190")
	require.NoError(t, repo.Create(fornecedor))

	require.NoError(t, testDB.Create(&model.Documento{
		NomeDocumento: "certidao_negativa.pdf",
		Categoria:     "Fiscal",
		Caminho:       "documentos/1/certidao_negativa.pdf",
		FornecedorID:  fornecedor.ID,
	}).Error)
	require.NoError(t, testDB.Create(&model.Homologacao{
		IQF:          88.5,
		Homologacao:  "S",
		FornecedorID: fornecedor.ID,
	}).Error)
	require.NoError(t, testDB.Create(&model.DecisaoFornecedor{
		FornecedorID:   fornecedor.ID,
		Status:         model.DecisaoAprovado,
		AvaliadorEmail: "qualidade@engeman.com.br",
	}).Error)

	completo, err := repo.FindByIDCompleto(fornecedor.ID)
	require.NoError(t, err)
	assert.Len(t, completo.Documentos, 1)
	assert.Len(t, completo.Homologacoes, 1)
	require.NotNil(t, completo.DecisaoAdmin)
	assert.Equal(t, model.DecisaoAprovado, completo.DecisaoAdmin.Status)
}

func TestFornecedorRepository_FindByTokenRecuperacao(t *testing.T) {
	testDB, repo := setupFornecedorTest(t)
	defer db.CleanupTestDB(testDB)

	fornecedor := novoFornecedor("contato@acosbrasil.com.br", "12345678000190")
	require.NoError(t, repo.Create(fornecedor))

	token := "482915"
	expira := time.Now().Add(30 * time.Minute)
	fornecedor.TokenRecuperacao = &token
	fornecedor.TokenExpira = &expira
	require.NoError(t, repo.Update(fornecedor))

	found, err := repo.FindByTokenRecuperacao("482915")
	require.NoError(t, err)
	assert.Equal(t, fornecedor.ID, found.ID)

	_, err = repo.FindByTokenRecuperacao("000000")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFornecedorRepository_LimparTokensExpirados(t *testing.T) {
	testDB, repo := setupFornecedorTest(t)
	defer db.CleanupTestDB(testDB)

	fornecedor := novoFornecedor("contato@acosbrasil.com.br", "12345678000190")
	require.NoError(t, repo.Create(fornecedor))

	token := "482915"
	expira := time.Now().Add(-time.Hour)
	fornecedor.TokenRecuperacao = &token
	fornecedor.TokenExpira = &expira
	require.NoError(t, repo.Update(fornecedor))

	require.NoError(t, repo.LimparTokensExpirados())

	found, err := repo.FindByID(fornecedor.ID)
	require.NoError(t, err)
	assert.Nil(t, found.TokenRecuperacao)
	assert.Nil(t, found.TokenExpira)
}
