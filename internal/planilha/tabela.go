package planilha

import (
	"strings"

	"github.com/LICASKJS/backend-engeman/pkg/util"
)

// Tabela é uma planilha carregada como sequência de linhas com campos
// nomeados. As colunas são canonicalizadas no carregamento (trim,
// minúsculas, espaços viram underscore), de modo que variações de
// cabeçalho como "Nota Homologação" e "nota_homologacao" convergem.
type Tabela struct {
	colunas []string
	linhas  []Linha
}

// Linha é uma linha da tabela indexada por coluna canônica
type Linha struct {
	valores map[string]string
	ordem   []string
}

// NovaTabela monta uma tabela a partir do cabeçalho cru e das linhas de
// células na ordem física do arquivo
func NovaTabela(cabecalho []string, celulas [][]string) *Tabela {
	colunas := make([]string, len(cabecalho))
	for i, h := range cabecalho {
		colunas[i] = util.NormalizeColuna(h)
	}

	linhas := make([]Linha, 0, len(celulas))
	for _, cels := range celulas {
		valores := make(map[string]string, len(colunas))
		ordem := make([]string, len(colunas))
		for i, col := range colunas {
			v := ""
			if i < len(cels) {
				v = strings.TrimSpace(cels[i])
			}
			if col != "" {
				valores[col] = v
			}
			ordem[i] = v
		}
		linhas = append(linhas, Linha{valores: valores, ordem: ordem})
	}

	return &Tabela{colunas: colunas, linhas: linhas}
}

// Colunas retorna os nomes canônicos das colunas
func (t *Tabela) Colunas() []string {
	return t.colunas
}

// Linhas retorna as linhas na ordem do arquivo
func (t *Tabela) Linhas() []Linha {
	return t.linhas
}

// Vazia informa se a tabela não tem linhas de dados
func (t *Tabela) Vazia() bool {
	return t == nil || len(t.linhas) == 0
}

// TemColuna verifica a existência de alguma das colunas informadas
func (t *Tabela) TemColuna(aliases ...string) bool {
	if t == nil {
		return false
	}
	for _, alias := range aliases {
		canon := util.NormalizeColuna(alias)
		for _, col := range t.colunas {
			if col == canon {
				return true
			}
		}
	}
	return false
}

// ResolverColuna tenta cada alias em ordem de prioridade e, se nenhum
// existir, recorre ao índice posicional — mas só quando a coluna
// candidata carrega conteúdo textual não vazio em alguma linha.
// Retorna o nome canônico resolvido (vazio para fallback posicional).
func (t *Tabela) ResolverColuna(posFallback int, aliases ...string) (string, int, bool) {
	if t == nil {
		return "", -1, false
	}
	for _, alias := range aliases {
		canon := util.NormalizeColuna(alias)
		for _, col := range t.colunas {
			if col == canon {
				return col, -1, true
			}
		}
	}
	if posFallback >= 0 && posFallback < len(t.colunas) {
		for _, linha := range t.linhas {
			if posFallback < len(linha.ordem) && linha.ordem[posFallback] != "" {
				return "", posFallback, true
			}
		}
	}
	return "", -1, false
}

// Valor retorna o conteúdo da primeira coluna existente entre os
// aliases informados, na ordem de prioridade
func (l Linha) Valor(aliases ...string) string {
	for _, alias := range aliases {
		if v, ok := l.valores[util.NormalizeColuna(alias)]; ok && v != "" {
			return v
		}
	}
	return ""
}

// PorIndice retorna o conteúdo pela posição física da coluna
func (l Linha) PorIndice(i int) string {
	if i < 0 || i >= len(l.ordem) {
		return ""
	}
	return l.ordem[i]
}
