// Package sanitize normaliza entradas antes de enviá-las à API do Inter:
// remove pontuação de documentos (CPF/CNPJ/CEP) e translitera texto livre
// para ASCII, já que a API trata mal bytes fora da tabela.
package sanitize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SomenteDigitos remove tudo que não for dígito decimal.
// É idempotente: aplicar duas vezes devolve o mesmo resultado.
func SomenteDigitos(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// asciiTransformer decompõe (NFD), descarta as marcas de combinação
// (acentos) e depois qualquer rune restante fora do ASCII.
var asciiTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
)

// ParaASCII translitera o texto para o equivalente ASCII mais próximo.
// "São Paulo" vira "Sao Paulo"; runes sem equivalente são descartados.
func ParaASCII(s string) string {
	out, _, err := transform.String(asciiTransformer, s)
	if err != nil {
		// transform só falha com destino curto, o que não ocorre com String.
		return s
	}
	return out
}
