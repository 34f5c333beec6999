package qualificacao

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }

func st(s Status) *Status { return &s }

func TestResolverStatus(t *testing.T) {
	tests := []struct {
		name      string
		evidencia Evidencia
		want      Status
	}{
		{
			name:      "sem nenhuma evidência retorna a cadastrar",
			evidencia: Evidencia{},
			want:      StatusACadastrar,
		},
		{
			name:      "registro sem veredito retorna em análise",
			evidencia: Evidencia{TemRegistro: true},
			want:      StatusEmAnalise,
		},
		{
			name:      "flag S aprova",
			evidencia: Evidencia{FlagAprovado: "S", TemRegistro: true},
			want:      StatusAprovado,
		},
		{
			name:      "flag N reprova",
			evidencia: Evidencia{FlagAprovado: "N", TemRegistro: true},
			want:      StatusReprovado,
		},
		{
			name:      "flag com acento e caixa é normalizada",
			evidencia: Evidencia{FlagAprovado: "NÃO", TemRegistro: true},
			want:      StatusReprovado,
		},
		{
			name:      "flag desconhecida fica em análise",
			evidencia: Evidencia{FlagAprovado: "pendente", TemRegistro: true},
			want:      StatusEmAnalise,
		},
		{
			name:      "iqf agregada abaixo do piso reprova mesmo com flag S",
			evidencia: Evidencia{FlagAprovado: "S", IQFAgregada: f(69.9), TemRegistro: true},
			want:      StatusReprovado,
		},
		{
			name:      "iqf da planilha abaixo do piso reprova",
			evidencia: Evidencia{IQFPlanilha: f(40), TemRegistro: true},
			want:      StatusReprovado,
		},
		{
			name:      "nota de homologação abaixo do piso reprova",
			evidencia: Evidencia{NotaHomologacao: f(55), FlagAprovado: "S", TemRegistro: true},
			want:      StatusReprovado,
		},
		{
			name:      "nota exatamente no piso não reprova",
			evidencia: Evidencia{NotaHomologacao: f(70), FlagAprovado: "S", TemRegistro: true},
			want:      StatusAprovado,
		},
		{
			name:      "notas boas sem flag ficam em análise",
			evidencia: Evidencia{IQFAgregada: f(95), NotaHomologacao: f(88)},
			want:      StatusEmAnalise,
		},
		{
			name:      "decisão manual de aprovação vence nota baixa",
			evidencia: Evidencia{Decisao: st(StatusAprovado), IQFAgregada: f(10), FlagAprovado: "N", TemRegistro: true},
			want:      StatusAprovado,
		},
		{
			name:      "decisão manual de reprovação vence flag S",
			evidencia: Evidencia{Decisao: st(StatusReprovado), FlagAprovado: "S", IQFAgregada: f(99), TemRegistro: true},
			want:      StatusReprovado,
		},
		{
			name:      "decisão manual vale mesmo sem outra evidência",
			evidencia: Evidencia{Decisao: st(StatusReprovado)},
			want:      StatusReprovado,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolverStatus(tt.evidencia))
		})
	}
}
