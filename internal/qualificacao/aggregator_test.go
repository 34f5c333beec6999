package qualificacao

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LICASKJS/backend-engeman/internal/planilha"
)

func tabelaControle(linhas [][]string) []planilha.Linha {
	t := planilha.NovaTabela([]string{"Agente", "Nota", "Observação"}, linhas)
	return t.Linhas()
}

func TestAgregarNotas(t *testing.T) {
	t.Run("média das notas coercíveis", func(t *testing.T) {
		agregado := AgregarNotas(tabelaControle([][]string{
			{"ACME", "80", "entrega pontual"},
			{"ACME", "90,5", ""},
			{"ACME", "não avaliado", "pendência de certificado"},
		}))

		require.NotNil(t, agregado.Media)
		assert.InDelta(t, 85.25, *agregado.Media, 0.001)
		assert.Equal(t, 2, agregado.TotalNotas)
		assert.Equal(t, []string{"entrega pontual", "pendência de certificado"}, agregado.Observacoes)
	})

	t.Run("sem nota coercível a média é nil", func(t *testing.T) {
		agregado := AgregarNotas(tabelaControle([][]string{
			{"ACME", "", "aguardando auditoria"},
			{"ACME", "n/a", ""},
		}))

		assert.Nil(t, agregado.Media)
		assert.Equal(t, 0, agregado.TotalNotas)
		assert.Equal(t, []string{"aguardando auditoria"}, agregado.Observacoes)
	})

	t.Run("sem comentários é descartado em qualquer grafia", func(t *testing.T) {
		agregado := AgregarNotas(tabelaControle([][]string{
			{"ACME", "75", "Sem Comentários"},
			{"ACME", "85", "  SEM COMENTARIOS  "},
			{"ACME", "95", "prazo renegociado"},
		}))

		require.NotNil(t, agregado.Media)
		assert.InDelta(t, 85, *agregado.Media, 0.001)
		assert.Equal(t, []string{"prazo renegociado"}, agregado.Observacoes)
	})

	t.Run("lista vazia", func(t *testing.T) {
		agregado := AgregarNotas(nil)
		assert.Nil(t, agregado.Media)
		assert.Zero(t, agregado.TotalNotas)
		assert.Empty(t, agregado.Observacoes)
	})
}
