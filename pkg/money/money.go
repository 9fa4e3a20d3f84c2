// Package money concentra as comparações monetárias do título (duas casas
// decimais, como a API do Inter). Nunca compare valores monetários com
// float64 direto; use estes predicados.
package money

import "github.com/shopspring/decimal"

// Escala monetária da API de cobrança (centavos).
const Casas = 2

// Arredonda normaliza o valor para a escala monetária.
func Arredonda(v decimal.Decimal) decimal.Decimal {
	return v.Round(Casas)
}

// EhZero informa se o valor, arredondado a duas casas, é exatamente zero.
func EhZero(v decimal.Decimal) bool {
	return Arredonda(v).IsZero()
}

// EhPositivo informa se o valor, arredondado a duas casas, é >= 0.
func EhPositivo(v decimal.Decimal) bool {
	return Arredonda(v).Sign() >= 0
}

// EhPositivoNaoNulo informa se o valor, arredondado a duas casas, é
// estritamente maior que zero. É o teste usado para taxa/valor de encargos
// e para o valor nominal do boleto.
func EhPositivoNaoNulo(v decimal.Decimal) bool {
	return Arredonda(v).Sign() > 0
}
