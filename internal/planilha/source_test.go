package planilha

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func escreverArquivo(t *testing.T, caminho string, linhas [][]interface{}) {
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

func TestDirLocatorResolve(t *testing.T) {
	primario := t.TempDir()
	secundario := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(secundario, "controle.xlsx"), []byte("x"), 0o644))

	locator := NewDirLocator(
		[]string{primario, secundario},
		map[string]string{"controle_qualidade": "controle.xlsx"},
	)

	t.Run("Found in later directory", func(t *testing.T) {
		caminho, err := locator.Resolve("controle_qualidade")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(secundario, "controle.xlsx"), caminho)
	})

	t.Run("First directory wins", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(primario, "controle.xlsx"), []byte("x"), 0o644))

		caminho, err := locator.Resolve("controle_qualidade")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(primario, "controle.xlsx"), caminho)
	})

	t.Run("Unknown logical name", func(t *testing.T) {
		_, err := locator.Resolve("homologados")

		var naoEncontrada *NaoEncontradaError
		require.ErrorAs(t, err, &naoEncontrada)
		assert.Equal(t, "homologados", naoEncontrada.NomeLogico)
		assert.Equal(t, []string{primario, secundario}, naoEncontrada.Procurados)
	})

	t.Run("File missing in all directories", func(t *testing.T) {
		locator := NewDirLocator(
			[]string{primario},
			map[string]string{"homologados": "nao-existe.xlsx"},
		)

		_, err := locator.Resolve("homologados")

		var naoEncontrada *NaoEncontradaError
		require.ErrorAs(t, err, &naoEncontrada)
		assert.Contains(t, naoEncontrada.Error(), "homologados")
		assert.Contains(t, naoEncontrada.Error(), primario)
	})
}

func TestCarregadorCarregar(t *testing.T) {
	dir := t.TempDir()
	escreverArquivo(t, filepath.Join(dir, "homologados.xlsx"), [][]interface{}{
		{"Agente", "CNPJ", "IQF"},
		{"Aços Fortes Ltda", "12.345.678/0001-99", 87.5},
		{"Metalúrgica Sul", "98.765.432/0001-11", "92,1"},
	})

	carregador := NewCarregador(NewDirLocator(
		[]string{dir},
		map[string]string{"homologados": "homologados.xlsx"},
	))

	tab, err := carregador.Carregar("homologados")
	require.NoError(t, err)
	require.NotNil(t, tab)

	assert.Equal(t, []string{"agente", "cnpj", "iqf"}, tab.Colunas())
	require.Len(t, tab.Linhas(), 2)
	assert.Equal(t, "Aços Fortes Ltda", tab.Linhas()[0].Valor("agente"))
	assert.Equal(t, "87.5", tab.Linhas()[0].Valor("iqf"))
	assert.Equal(t, "92,1", tab.Linhas()[1].Valor("iqf"))
}

func TestCarregadorArquivoAusente(t *testing.T) {
	carregador := NewCarregador(NewDirLocator(
		[]string{t.TempDir()},
		map[string]string{"homologados": "homologados.xlsx"},
	))

	tab, err := carregador.Carregar("homologados")
	assert.Nil(t, tab)

	var naoEncontrada *NaoEncontradaError
	assert.ErrorAs(t, err, &naoEncontrada)
}

func TestCarregadorArquivoInvalido(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "corrompida.xlsx"), []byte("isto não é um xlsx"), 0o644))

	carregador := NewCarregador(NewDirLocator(
		[]string{dir},
		map[string]string{"controle_qualidade": "corrompida.xlsx"},
	))

	tab, err := carregador.Carregar("controle_qualidade")
	assert.Nil(t, tab)
	assert.Error(t, err)
}

func TestCarregadorPlanilhaVazia(t *testing.T) {
	dir := t.TempDir()

	f := excelize.NewFile()
	require.NoError(t, f.SaveAs(filepath.Join(dir, "vazia.xlsx")))
	require.NoError(t, f.Close())

	carregador := NewCarregador(NewDirLocator(
		[]string{dir},
		map[string]string{"homologados": "vazia.xlsx"},
	))

	tab, err := carregador.Carregar("homologados")
	require.NoError(t, err)
	assert.True(t, tab.Vazia())
}
