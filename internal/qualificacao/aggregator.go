package qualificacao

import (
	"github.com/LICASKJS/backend-engeman/internal/planilha"
	"github.com/LICASKJS/backend-engeman/pkg/util"
)

// Observações com este conteúdo normalizado são descartadas da agregação
const observacaoVazia = "sem comentarios"

// AgregadoControle resume as linhas de controle de qualidade de um
// fornecedor: média das notas coercíveis e observações relevantes
type AgregadoControle struct {
	Media       *float64
	TotalNotas  int
	Observacoes []string
}

// AgregarNotas calcula a média aritmética das notas coercíveis para
// número e coleta as observações não vazias. Linhas sem nota numérica
// entram só pelas observações; "sem comentários" em qualquer grafia é
// ignorado. Sem nenhuma nota coercível, Media fica nil.
func AgregarNotas(linhas []planilha.Linha) AgregadoControle {
	var soma float64
	var total int
	var observacoes []string

	for _, linha := range linhas {
		if nota, ok := util.ToFloat(linha.Valor("nota")); ok {
			soma += nota
			total++
		}

		obs := linha.Valor("observacao", "observacoes")
		if obs != "" && util.Normalize(obs) != observacaoVazia {
			observacoes = append(observacoes, obs)
		}
	}

	agregado := AgregadoControle{TotalNotas: total, Observacoes: observacoes}
	if total > 0 {
		media := soma / float64(total)
		agregado.Media = &media
	}
	return agregado
}
