package util

import (
	"strconv"
	"strings"
)

// ToFloat converte representações numéricas heterogêneas das planilhas
// em float64. Aceita números, strings com vírgula ou ponto como separador
// decimal (o separador mais à direita é tratado como decimal; os
// anteriores como separadores de milhar) e sentinelas de ausência
// ("", "nan", nil), que retornam ok=false. Entrada não interpretável
// também retorna ok=false, nunca erro.
//
// Heurística conhecida: com um único separador e três dígitos na parte
// final ("1.234"), o valor é lido como 1.234 e não como 1234 — o
// comportamento é herdado da origem dos dados e mantido de propósito.
func ToFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		if v != v { // NaN
			return 0, false
		}
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		return parseNumero(v)
	default:
		return 0, false
	}
}

func parseNumero(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "nan") {
		return 0, false
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		// o separador mais à direita é o decimal; o outro é de milhar
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		// vírgulas anteriores à última são separadores de milhar
		head := strings.ReplaceAll(s[:lastComma], ",", "")
		s = head + "." + s[lastComma+1:]
	case lastDot >= 0:
		if strings.Count(s, ".") > 1 {
			// múltiplos pontos: só o último é decimal
			head := strings.ReplaceAll(s[:lastDot], ".", "")
			s = head + s[lastDot:]
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// FirstNumeric retorna o primeiro candidato que converte com sucesso,
// preservando a ordem de prioridade dos argumentos.
func FirstNumeric(candidates ...interface{}) (float64, bool) {
	for _, c := range candidates {
		if f, ok := ToFloat(c); ok {
			return f, true
		}
	}
	return 0, false
}
