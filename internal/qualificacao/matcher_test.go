package qualificacao

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LICASKJS/backend-engeman/internal/planilha"
)

func tabelaHomologados() *planilha.Tabela {
	return planilha.NovaTabela(
		[]string{"Agente", "Nome Fantasia", "CNPJ", "IQF", "Aprovado", "Data Vencimento"},
		[][]string{
			{"AÇOS BRASIL LTDA", "Aços Brasil", "12.345.678/0001-90", "92", "S", "10/03/2026"},
			{"FERRAGENS SUL S.A.", "FerraSul", "98.765.432/0001-10", "65", "N", "01/01/2025"},
			{"AÇOS BRASIL LTDA", "Aços Brasil", "12.345.678/0001-90", "88", "S", "15/07/2027"},
			{"TRANSPORTES RÁPIDOS ME", "", "11.222.333/0001-44", "", "", ""},
		},
	)
}

func TestEncontrarLinhas(t *testing.T) {
	tab := tabelaHomologados()

	t.Run("igualdade exata ignora acentos e caixa", func(t *testing.T) {
		linhas := EncontrarLinhas(tab, "acos brasil ltda", "")
		require.Len(t, linhas, 2)
	})

	t.Run("empate resolvido pelo vencimento mais recente", func(t *testing.T) {
		linha, ok := MelhorLinha(tab, "Aços Brasil Ltda", "")
		require.True(t, ok)
		assert.Equal(t, "88", linha.Valor("iqf"))
		assert.Equal(t, "15/07/2027", linha.Valor("data_vencimento"))
	})

	t.Run("continência quando o nome da planilha é mais longo", func(t *testing.T) {
		linhas := EncontrarLinhas(tab, "Ferragens Sul", "")
		require.Len(t, linhas, 1)
		assert.Equal(t, "N", linhas[0].Valor("aprovado"))
	})

	t.Run("continência pelo nome fantasia", func(t *testing.T) {
		linhas := EncontrarLinhas(tab, "FerraSul Distribuidora", "")
		require.Len(t, linhas, 1)
		assert.Equal(t, "65", linhas[0].Valor("iqf"))
	})

	t.Run("fallback por cnpj quando o nome não casa", func(t *testing.T) {
		linhas := EncontrarLinhas(tab, "Razão Social Divergente", "11222333000144")
		require.Len(t, linhas, 1)
		assert.Equal(t, "TRANSPORTES RÁPIDOS ME", linhas[0].Valor("agente"))
	})

	t.Run("cnpj com máscara casa com cnpj sem máscara", func(t *testing.T) {
		linhas := EncontrarLinhas(tab, "outra empresa", "11.222.333/0001-44")
		require.Len(t, linhas, 1)
	})

	t.Run("sem correspondência retorna vazio", func(t *testing.T) {
		assert.Empty(t, EncontrarLinhas(tab, "Empresa Inexistente", "00.000.000/0000-00"))
	})

	t.Run("tabela vazia", func(t *testing.T) {
		vazia := planilha.NovaTabela([]string{"Agente"}, nil)
		assert.Empty(t, EncontrarLinhas(vazia, "Aços Brasil", ""))
	})

	t.Run("nome vazio só casa por cnpj", func(t *testing.T) {
		linhas := EncontrarLinhas(tab, "", "98765432000110")
		require.Len(t, linhas, 1)
		assert.Equal(t, "FERRAGENS SUL S.A.", linhas[0].Valor("agente"))
	})

	t.Run("coluna nome agente do controle de qualidade", func(t *testing.T) {
		controle := planilha.NovaTabela(
			[]string{"Nome Agente", "Nota", "Observação"},
			[][]string{
				{"AÇOS BRASIL LTDA", "87", "entrega pontual"},
				{"FERRAGENS SUL S.A.", "62", ""},
			},
		)

		linhas := EncontrarLinhas(controle, "Aços Brasil Ltda", "12345678000190")
		require.Len(t, linhas, 1)
		assert.Equal(t, "87", linhas[0].Valor("nota"))
	})
}
