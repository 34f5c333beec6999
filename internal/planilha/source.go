package planilha

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/LICASKJS/backend-engeman/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// NaoEncontradaError indica que nenhum arquivo físico corresponde ao
// nome lógico em nenhum dos diretórios configurados. O erro carrega os
// diretórios pesquisados para o diagnóstico chegar ao chamador.
type NaoEncontradaError struct {
	NomeLogico string
	Procurados []string
}

func (e *NaoEncontradaError) Error() string {
	return fmt.Sprintf("planilha %q não encontrada (diretórios pesquisados: %s)",
		e.NomeLogico, strings.Join(e.Procurados, ", "))
}

// Locator resolve um nome lógico de planilha para um caminho físico
type Locator interface {
	Resolve(nomeLogico string) (string, error)
}

// DirLocator procura o arquivo associado a cada nome lógico em uma
// lista ordenada de diretórios; o primeiro existente vence
type DirLocator struct {
	dirs     []string
	arquivos map[string]string // nome lógico -> nome do arquivo
}

func NewDirLocator(dirs []string, arquivos map[string]string) *DirLocator {
	return &DirLocator{dirs: dirs, arquivos: arquivos}
}

func (l *DirLocator) Resolve(nomeLogico string) (string, error) {
	arquivo, ok := l.arquivos[nomeLogico]
	if !ok {
		return "", &NaoEncontradaError{NomeLogico: nomeLogico, Procurados: l.dirs}
	}
	for _, dir := range l.dirs {
		caminho := filepath.Join(dir, arquivo)
		if _, err := os.Stat(caminho); err == nil {
			return caminho, nil
		}
	}
	return "", &NaoEncontradaError{NomeLogico: nomeLogico, Procurados: l.dirs}
}

// Carregador abre planilhas xlsx e as entrega como Tabela. Cada chamada
// lê o arquivo do zero: a requisição trabalha sobre um snapshot local,
// sem cache compartilhado entre requisições.
type Carregador struct {
	locator Locator
}

func NewCarregador(locator Locator) *Carregador {
	return &Carregador{locator: locator}
}

// Carregar resolve o nome lógico e lê a primeira aba do arquivo
func (c *Carregador) Carregar(nomeLogico string) (*Tabela, error) {
	caminho, err := c.locator.Resolve(nomeLogico)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(caminho)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir planilha %s: %w", caminho, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("planilha %s não possui abas", caminho)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("falha ao ler linhas de %s: %w", caminho, err)
	}
	if len(rows) == 0 {
		return NovaTabela(nil, nil), nil
	}

	tabela := NovaTabela(rows[0], rows[1:])
	logger.Debug("Planilha carregada", map[string]interface{}{
		"nome_logico": nomeLogico,
		"caminho":     caminho,
		"linhas":      len(tabela.Linhas()),
	})
	return tabela, nil
}
