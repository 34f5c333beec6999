package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// removeAcentos decompõe em NFD e descarta as marcas de combinação (Mn)
var removeAcentos = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
)

// Normalize canonicaliza texto livre para comparação entre fontes:
// remove acentos, converte para minúsculas, descarta pontuação e
// colapsa espaços consecutivos. Nunca retorna erro; entrada vazia ou
// irreconhecível vira "". A operação é idempotente.
func Normalize(value string) string {
	if value == "" {
		return ""
	}

	lowered := strings.ToLower(value)
	stripped, _, err := transform.String(removeAcentos, lowered)
	if err != nil {
		// transformação falhou (sequência inválida), segue com o texto original
		stripped = lowered
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// NormalizeColuna canonicaliza um cabeçalho de planilha: trim, minúsculas
// e espaços viram underscore. Underscores da entrada são preservados como
// separadores, para que "Nota Homologação" e "nota_homologacao" convirjam
// para a mesma chave.
func NormalizeColuna(header string) string {
	normalized := Normalize(strings.ReplaceAll(header, "_", " "))
	return strings.ReplaceAll(normalized, " ", "_")
}

// NormalizeCNPJ reduz um CNPJ à sua forma comparável, mantendo apenas
// os dígitos (descarta pontuação, quebras de linha e espaços).
func NormalizeCNPJ(cnpj string) string {
	var b strings.Builder
	for _, r := range cnpj {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
