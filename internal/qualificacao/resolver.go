package qualificacao

import (
	"strings"

	"github.com/LICASKJS/backend-engeman/pkg/util"
)

// Evidencia reúne tudo o que as fontes souberam dizer sobre um
// fornecedor antes da resolução de status
type Evidencia struct {
	// Decisao é a decisão administrativa manual, quando existe
	Decisao *Status

	// FlagAprovado é a coluna "aprovado" da planilha de homologados
	// ("S", "N" ou vazio/ausente)
	FlagAprovado string

	// Notas das fontes, nil quando a fonte não produziu valor
	NotaHomologacao *float64
	IQFAgregada     *float64
	IQFPlanilha     *float64

	// TemRegistro indica que alguma fonte tinha linha ou registro para
	// o fornecedor, mesmo sem nota nem flag
	TemRegistro bool
}

// ResolverStatus aplica a precedência de qualificação:
//
//  1. decisão administrativa manual vence tudo;
//  2. qualquer nota conhecida abaixo de NotaMinima reprova;
//  3. flag "N" reprova, flag "S" aprova;
//  4. com registro mas sem veredito, EM_ANALISE;
//  5. sem registro em nenhuma fonte, A_CADASTRAR.
func ResolverStatus(e Evidencia) Status {
	if e.Decisao != nil {
		return *e.Decisao
	}

	for _, nota := range []*float64{e.IQFAgregada, e.IQFPlanilha, e.NotaHomologacao} {
		if nota != nil && *nota < NotaMinima {
			return StatusReprovado
		}
	}

	switch flag := util.Normalize(e.FlagAprovado); flag {
	case "n", "nao":
		return StatusReprovado
	case "s", "sim":
		return StatusAprovado
	}

	if e.TemRegistro || temNota(e) || strings.TrimSpace(e.FlagAprovado) != "" {
		return StatusEmAnalise
	}
	return StatusACadastrar
}

func temNota(e Evidencia) bool {
	return e.NotaHomologacao != nil || e.IQFAgregada != nil || e.IQFPlanilha != nil
}
