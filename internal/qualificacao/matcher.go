package qualificacao

import (
	"sort"
	"strings"
	"time"

	"github.com/LICASKJS/backend-engeman/internal/planilha"
	"github.com/LICASKJS/backend-engeman/pkg/util"
)

// Colunas de nome testadas em ordem. A planilha de homologados usa
// "agente"; a de controle de qualidade, "nome_agente".
var colunasNome = []string{"agente", "nome_agente", "nome_fantasia"}

var layoutsData = []string{
	"02/01/2006",
	"2006-01-02",
	"02-01-2006",
	"01-02-06",
	"2006-01-02 15:04:05",
}

// EncontrarLinhas localiza as linhas de uma tabela que correspondem ao
// fornecedor. Estratégias em ordem, a primeira com resultado vence:
//
//  1. igualdade exata do nome normalizado, coluna a coluna;
//  2. continência nos dois sentidos (nome truncado na planilha ou no
//     cadastro);
//  3. igualdade de CNPJ normalizado, quando disponível dos dois lados.
//
// Empates são desfeitos preferindo a linha com data_vencimento mais
// recente; sem a coluna, vale a ordem do arquivo. Resultado vazio não é
// erro: o chamador trata como "sem evidência".
func EncontrarLinhas(t *planilha.Tabela, nome, cnpj string) []planilha.Linha {
	if t.Vazia() {
		return nil
	}

	alvo := util.Normalize(nome)
	if alvo != "" {
		if exatas := filtrar(t, func(l planilha.Linha) bool {
			for _, col := range colunasNome {
				if util.Normalize(l.Valor(col)) == alvo {
					return true
				}
			}
			return false
		}); len(exatas) > 0 {
			return ordenarPorVencimento(exatas)
		}

		if contidas := filtrar(t, func(l planilha.Linha) bool {
			for _, col := range colunasNome {
				candidato := util.Normalize(l.Valor(col))
				if candidato == "" {
					continue
				}
				if strings.Contains(candidato, alvo) || strings.Contains(alvo, candidato) {
					return true
				}
			}
			return false
		}); len(contidas) > 0 {
			return ordenarPorVencimento(contidas)
		}
	}

	alvoCNPJ := util.NormalizeCNPJ(cnpj)
	if alvoCNPJ != "" && t.TemColuna("cnpj") {
		if porCNPJ := filtrar(t, func(l planilha.Linha) bool {
			return util.NormalizeCNPJ(l.Valor("cnpj")) == alvoCNPJ
		}); len(porCNPJ) > 0 {
			return ordenarPorVencimento(porCNPJ)
		}
	}

	return nil
}

// MelhorLinha retorna a linha preferida entre as correspondências
func MelhorLinha(t *planilha.Tabela, nome, cnpj string) (planilha.Linha, bool) {
	linhas := EncontrarLinhas(t, nome, cnpj)
	if len(linhas) == 0 {
		return planilha.Linha{}, false
	}
	return linhas[0], true
}

func filtrar(t *planilha.Tabela, pred func(planilha.Linha) bool) []planilha.Linha {
	var out []planilha.Linha
	for _, l := range t.Linhas() {
		if pred(l) {
			out = append(out, l)
		}
	}
	return out
}

func ordenarPorVencimento(linhas []planilha.Linha) []planilha.Linha {
	if len(linhas) < 2 {
		return linhas
	}
	sort.SliceStable(linhas, func(i, j int) bool {
		di, oki := ParseData(linhas[i].Valor("data_vencimento"))
		dj, okj := ParseData(linhas[j].Valor("data_vencimento"))
		if oki && okj {
			return di.After(dj)
		}
		return oki && !okj
	})
	return linhas
}

// ParseData interpreta as datas usuais das planilhas (dd/mm/aaaa e
// variantes ISO)
func ParseData(valor string) (time.Time, bool) {
	valor = strings.TrimSpace(valor)
	if valor == "" {
		return time.Time{}, false
	}
	for _, layout := range layoutsData {
		if d, err := time.Parse(layout, valor); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}
