package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/LICASKJS/backend-engeman/internal/app/model"
	"github.com/LICASKJS/backend-engeman/internal/app/repository"
	"github.com/LICASKJS/backend-engeman/internal/db"
	"github.com/LICASKJS/backend-engeman/internal/planilha"
	"github.com/LICASKJS/backend-engeman/internal/qualificacao"
)

func escreverPlanilha(t *testing.T, caminho string, linhas [][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, linha := range linhas {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &linha))
	}
	require.NoError(t, f.SaveAs(caminho))
}

type qualificacaoFixture struct {
	db         *gorm.DB
	service    QualificacaoService
	fornecedor *model.Fornecedor
	dir        string
}

func setupQualificacaoTest(t *testing.T) *qualificacaoFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	fornecedor := &model.Fornecedor{
		Nome:      "Aços Brasil Ltda",
		Email:     "contato@acosbrasil.com.br",
		CNPJ:      "12345678000190",
		SenhaHash: "hash",
		Categoria: "Matéria-prima",
	}
	require.NoError(t, testDB.Create(fornecedor).Error)

	dir := t.TempDir()
	locator := planilha.NewDirLocator([]string{dir}, map[string]string{
		PlanilhaHomologados:       "homologados.xlsx",
		PlanilhaControleQualidade: "controle.xlsx",
		PlanilhaRequisitosLegais:  "claf.xlsx",
	})

	service := NewQualificacaoService(
		repository.NewFornecedorRepository(testDB),
		repository.NewHomologacaoRepository(testDB),
		repository.NewDocumentoRepository(testDB),
		repository.NewDecisaoRepository(testDB),
		planilha.NewCarregador(locator),
	)

	return &qualificacaoFixture{
		db:         testDB,
		service:    service,
		fornecedor: fornecedor,
		dir:        dir,
	}
}

func TestQualificacaoService_MontarRegistro(t *testing.T) {
	t.Run("aprovado pela planilha de homologados", func(t *testing.T) {
		fx := setupQualificacaoTest(t)

		escreverPlanilha(t, filepath.Join(fx.dir, "homologados.xlsx"), [][]interface{}{
			{"Agente", "CNPJ", "IQF", "Aprovado", "Data Vencimento"},
			{"AÇOS BRASIL LTDA", "12.345.678/0001-90", 92.5, "S", "10/03/2027"},
		})

		registro, err := fx.service.MontarRegistro(fx.fornecedor.ID)
		require.NoError(t, err)

		assert.Equal(t, qualificacao.StatusAprovado, registro.Status)
		assert.Equal(t, "S", registro.FlagAprovado)
		require.NotNil(t, registro.IQFPlanilha)
		assert.InDelta(t, 92.5, *registro.IQFPlanilha, 0.001)
		assert.Equal(t, "10/03/2027", registro.DataVencimento)
		assert.Contains(t, registro.Fontes, PlanilhaHomologados)

		// sem controle de qualidade a nota final vem da própria planilha
		assert.Zero(t, registro.TotalNotasIQF)
		require.NotNil(t, registro.NotaIQF)
		assert.InDelta(t, 92.5, *registro.NotaIQF, 0.001)
	})

	t.Run("reprovado pela média do controle de qualidade", func(t *testing.T) {
		fx := setupQualificacaoTest(t)

		escreverPlanilha(t, filepath.Join(fx.dir, "controle.xlsx"), [][]interface{}{
			{"Agente", "Nota", "Observação"},
			{"Aços Brasil Ltda", 60, "atraso recorrente"},
			{"Aços Brasil Ltda", 50, "Sem Comentários"},
		})

		registro, err := fx.service.MontarRegistro(fx.fornecedor.ID)
		require.NoError(t, err)

		assert.Equal(t, qualificacao.StatusReprovado, registro.Status)
		require.NotNil(t, registro.IQFAgregada)
		assert.InDelta(t, 55, *registro.IQFAgregada, 0.001)
		assert.Equal(t, 2, registro.TotalNotasIQF)
		require.NotNil(t, registro.NotaIQF)
		assert.InDelta(t, 55, *registro.NotaIQF, 0.001)
		assert.Equal(t, []string{"atraso recorrente"}, registro.Observacoes)
		assert.Contains(t, registro.Fontes, PlanilhaControleQualidade)
	})

	t.Run("controle de qualidade casado pela grafia da planilha de homologados", func(t *testing.T) {
		fx := setupQualificacaoTest(t)

		escreverPlanilha(t, filepath.Join(fx.dir, "homologados.xlsx"), [][]interface{}{
			{"Agente", "CNPJ", "IQF", "Aprovado"},
			{"ABL COMERCIO DE ACOS", "12.345.678/0001-90", 90, "S"},
		})
		escreverPlanilha(t, filepath.Join(fx.dir, "controle.xlsx"), [][]interface{}{
			{"Nome Agente", "Nota", "Observação"},
			{"ABL COMERCIO DE ACOS", 70, ""},
			{"ABL COMERCIO DE ACOS", 80, "entrega pontual"},
		})

		registro, err := fx.service.MontarRegistro(fx.fornecedor.ID)
		require.NoError(t, err)

		assert.Contains(t, registro.Fontes, PlanilhaHomologados)
		assert.Contains(t, registro.Fontes, PlanilhaControleQualidade)
		require.NotNil(t, registro.IQFAgregada)
		assert.InDelta(t, 75, *registro.IQFAgregada, 0.001)
		assert.Equal(t, 2, registro.TotalNotasIQF)

		// a média do controle prevalece sobre o IQF pontual da planilha
		require.NotNil(t, registro.NotaIQF)
		assert.InDelta(t, 75, *registro.NotaIQF, 0.001)
		assert.Equal(t, qualificacao.StatusAprovado, registro.Status)
	})

	t.Run("flag S da planilha não segura nota baixa do controle", func(t *testing.T) {
		fx := setupQualificacaoTest(t)

		escreverPlanilha(t, filepath.Join(fx.dir, "homologados.xlsx"), [][]interface{}{
			{"Agente", "IQF", "Aprovado"},
			{"Aços Brasil Ltda", 90, "S"},
		})
		escreverPlanilha(t, filepath.Join(fx.dir, "controle.xlsx"), [][]interface{}{
			{"Agente", "Nota"},
			{"Aços Brasil Ltda", 40},
		})

		registro, err := fx.service.MontarRegistro(fx.fornecedor.ID)
		require.NoError(t, err)
		assert.Equal(t, qualificacao.StatusReprovado, registro.Status)
	})

	t.Run("sem nenhuma fonte fica a cadastrar", func(t *testing.T) {
		fx := setupQualificacaoTest(t)

		registro, err := fx.service.MontarRegistro(fx.fornecedor.ID)
		require.NoError(t, err)

		assert.Equal(t, qualificacao.StatusACadastrar, registro.Status)
		assert.Empty(t, registro.Fontes)
	})

	t.Run("registro interno entra só sem planilha", func(t *testing.T) {
		fx := setupQualificacaoTest(t)

		require.NoError(t, fx.db.Create(&model.Homologacao{
			IQF:          85,
			Homologacao:  "S",
			Observacoes:  "homologado na visita técnica",
			FornecedorID: fx.fornecedor.ID,
		}).Error)

		registro, err := fx.service.MontarRegistro(fx.fornecedor.ID)
		require.NoError(t, err)

		assert.Equal(t, qualificacao.StatusAprovado, registro.Status)
		assert.Contains(t, registro.Fontes, "registro_interno")
		assert.Contains(t, registro.Observacoes, "homologado na visita técnica")
	})

	t.Run("decisão administrativa prevalece sobre as planilhas", func(t *testing.T) {
		fx := setupQualificacaoTest(t)

		escreverPlanilha(t, filepath.Join(fx.dir, "homologados.xlsx"), [][]interface{}{
			{"Agente", "IQF", "Aprovado"},
			{"Aços Brasil Ltda", 95, "S"},
		})
		require.NoError(t, fx.db.Create(&model.DecisaoFornecedor{
			FornecedorID:   fx.fornecedor.ID,
			Status:         model.DecisaoReprovado,
			Observacao:     "pendência jurídica",
			AvaliadorEmail: "qualidade@engeman.com.br",
		}).Error)

		registro, err := fx.service.MontarRegistro(fx.fornecedor.ID)
		require.NoError(t, err)

		assert.Equal(t, qualificacao.StatusReprovado, registro.Status)
		require.NotNil(t, registro.Decisao)
		assert.Equal(t, "pendência jurídica", registro.Decisao.Observacao)
		assert.False(t, registro.Decisao.AtualizadoEm.IsZero())
	})

	t.Run("fornecedor inexistente", func(t *testing.T) {
		fx := setupQualificacaoTest(t)

		_, err := fx.service.MontarRegistro(9999)
		assert.ErrorIs(t, err, ErrFornecedorNaoEncontrado)
	})
}

func TestQualificacaoService_DocumentosNecessarios(t *testing.T) {
	fx := setupQualificacaoTest(t)

	escreverPlanilha(t, filepath.Join(fx.dir, "claf.xlsx"), [][]interface{}{
		{"Categoria", "Documento"},
		{"Matéria-prima", "Licença de operação"},
		{"Matéria-prima", "Certidão negativa de débitos"},
		{"Matéria-prima", "Licença de operação"},
		{"Serviços", "ART do responsável técnico"},
	})

	documentos, err := fx.service.DocumentosNecessarios("Matéria-Prima")
	require.NoError(t, err)
	assert.Equal(t, []string{"Licença de operação", "Certidão negativa de débitos"}, documentos)
}

func TestQualificacaoService_ConsultarHomologacao(t *testing.T) {
	t.Run("fornecedor presente na planilha", func(t *testing.T) {
		fx := setupQualificacaoTest(t)

		escreverPlanilha(t, filepath.Join(fx.dir, "homologados.xlsx"), [][]interface{}{
			{"Agente", "CNPJ", "IQF", "Aprovado", "Data Vencimento"},
			{"Aços Brasil Ltda", "12.345.678/0001-90", 88, "S", "01/06/2027"},
		})

		consulta, err := fx.service.ConsultarHomologacao("acos brasil", "")
		require.NoError(t, err)

		assert.True(t, consulta.Encontrado)
		assert.Equal(t, qualificacao.StatusAprovado, consulta.Status)
		require.NotNil(t, consulta.IQF)
		assert.InDelta(t, 88, *consulta.IQF, 0.001)
		assert.Equal(t, "01/06/2027", consulta.DataVencimento)
	})

	t.Run("fornecedor ausente", func(t *testing.T) {
		fx := setupQualificacaoTest(t)

		escreverPlanilha(t, filepath.Join(fx.dir, "homologados.xlsx"), [][]interface{}{
			{"Agente", "Aprovado"},
			{"Outra Empresa", "S"},
		})

		consulta, err := fx.service.ConsultarHomologacao("Desconhecida SA", "")
		require.NoError(t, err)

		assert.False(t, consulta.Encontrado)
		assert.Equal(t, qualificacao.StatusACadastrar, consulta.Status)
	})

	t.Run("planilha indisponível propaga erro", func(t *testing.T) {
		fx := setupQualificacaoTest(t)

		_, err := fx.service.ConsultarHomologacao("Aços Brasil Ltda", "")
		assert.Error(t, err)
	})
}

func TestQualificacaoService_NotificacoesRecentes(t *testing.T) {
	fx := setupQualificacaoTest(t)

	require.NoError(t, fx.db.Create(&model.Documento{
		NomeDocumento: "alvara.pdf",
		Categoria:     "Licenças",
		Caminho:       "documentos/1/alvara.pdf",
		FornecedorID:  fx.fornecedor.ID,
	}).Error)
	require.NoError(t, fx.db.Create(&model.DecisaoFornecedor{
		FornecedorID:   fx.fornecedor.ID,
		Status:         model.DecisaoAprovado,
		AvaliadorEmail: "qualidade@engeman.com.br",
	}).Error)

	eventos, err := fx.service.NotificacoesRecentes(10)
	require.NoError(t, err)
	require.Len(t, eventos, 3)

	tipos := make(map[string]int)
	for _, evento := range eventos {
		tipos[evento.Tipo]++
		assert.Equal(t, fx.fornecedor.ID, evento.FornecedorID)
		assert.Equal(t, fx.fornecedor.Nome, evento.Fornecedor)
		assert.False(t, evento.Quando.IsZero())
	}
	assert.Equal(t, map[string]int{"cadastro": 1, "documento": 1, "decisao": 1}, tipos)

	t.Run("limite aplicado", func(t *testing.T) {
		eventos, err := fx.service.NotificacoesRecentes(2)
		require.NoError(t, err)
		assert.Len(t, eventos, 2)
	})
}

func TestQualificacaoService_MontarDashboard(t *testing.T) {
	fx := setupQualificacaoTest(t)

	require.NoError(t, fx.db.Create(&model.Documento{
		NomeDocumento: "certidao.pdf",
		Caminho:       "documentos/1/certidao.pdf",
		FornecedorID:  fx.fornecedor.ID,
	}).Error)
	require.NoError(t, fx.db.Create(&model.DecisaoFornecedor{
		FornecedorID:   fx.fornecedor.ID,
		Status:         model.DecisaoAprovado,
		AvaliadorEmail: "qualidade@engeman.com.br",
	}).Error)

	dashboard, err := fx.service.MontarDashboard()
	require.NoError(t, err)

	assert.Equal(t, int64(1), dashboard.TotalFornecedores)
	assert.Equal(t, int64(1), dashboard.TotalDocumentos)
	assert.Equal(t, int64(1), dashboard.Aprovados)
	assert.Zero(t, dashboard.Reprovados)
	assert.Zero(t, dashboard.SemDecisao)
}
