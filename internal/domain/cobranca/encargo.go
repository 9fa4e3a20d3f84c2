// Package cobranca contém o núcleo de domínio da emissão de boletos:
// encargos (desconto, mora e multa), pagador/beneficiário e a montagem
// validada da emissão. Tudo aqui é computação pura sobre valores imutáveis;
// nenhuma chamada de rede acontece neste pacote.
package cobranca

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/boletohub/interboleto/internal/domain"
	"github.com/boletohub/interboleto/pkg/money"
)

func init() {
	// A API espera números JSON (10.01), não strings ("10.01").
	decimal.MarshalJSONWithoutQuotes = true
}

// ── Códigos de encargo ────────────────────────────────────────────────────────
//
// Cada família tem seu próprio conjunto fechado de códigos; os tokens são os
// exigidos pela API e nunca se repetem entre famílias.

// CodigoDesconto código de desconto do título.
type CodigoDesconto string

const (
	// DescontoNaoTem não há desconto.
	DescontoNaoTem CodigoDesconto = "NAOTEMDESCONTO"
	// DescontoValorFixo valor fixo até a data informada.
	DescontoValorFixo CodigoDesconto = "VALORFIXODATAINFORMADA"
	// DescontoPercentual percentual até a data informada.
	DescontoPercentual CodigoDesconto = "PERCENTUALDATAINFORMADA"
)

// CodigoMora código de mora (juros por atraso) do título.
type CodigoMora string

const (
	// MoraIsento não há mora.
	MoraIsento CodigoMora = "ISENTO"
	// MoraValorDia valor fixo ao dia.
	MoraValorDia CodigoMora = "VALORDIA"
	// MoraTaxaMensal taxa percentual mensal.
	MoraTaxaMensal CodigoMora = "TAXAMENSAL"
)

// CodigoMulta código de multa do título.
type CodigoMulta string

const (
	// MultaNaoTem não há multa.
	MultaNaoTem CodigoMulta = "NAOTEMMULTA"
	// MultaValorFixo valor fixo.
	MultaValorFixo CodigoMulta = "VALORFIXO"
	// MultaPercentual percentual sobre o valor nominal.
	MultaPercentual CodigoMulta = "PERCENTUAL"
)

// ── Tabelas de regras ─────────────────────────────────────────────────────────
//
// As três famílias compartilham a mesma mecânica de validação; só muda a
// tabela código -> campos exigidos. O código "isento" de cada família é o
// que não exige nada.

type regraEncargo struct {
	exigeData  bool
	exigeTaxa  bool
	exigeValor bool
}

var regrasDesconto = map[CodigoDesconto]regraEncargo{
	DescontoNaoTem:     {},
	DescontoValorFixo:  {exigeData: true, exigeValor: true},
	DescontoPercentual: {exigeData: true, exigeTaxa: true},
}

var regrasMora = map[CodigoMora]regraEncargo{
	MoraIsento:     {},
	MoraValorDia:   {exigeData: true, exigeValor: true},
	MoraTaxaMensal: {exigeData: true, exigeTaxa: true},
}

var regrasMulta = map[CodigoMulta]regraEncargo{
	MultaNaoTem:     {},
	MultaValorFixo:  {exigeData: true, exigeValor: true},
	MultaPercentual: {exigeData: true, exigeTaxa: true},
}

// validaEncargo aplica as regras da família ao trio (taxa, valor, data).
// Invariantes:
//   - código isento: taxa e valor zerados (em 2 casas) e data vazia;
//   - código ativo: data presente sse a regra exige; o campo exigido
//     (taxa ou valor) estritamente positivo e o outro zerado.
func validaEncargo[C ~string](familia string, codigo C, regras map[C]regraEncargo, taxa, valor decimal.Decimal, data Data) error {
	regra, ok := regras[codigo]
	if !ok {
		return fmt.Errorf("%w: %s: código desconhecido %q", domain.ErrEncargoInvalido, familia, string(codigo))
	}

	if !regra.exigeData && !regra.exigeTaxa && !regra.exigeValor {
		if !data.Vazia() {
			return fmt.Errorf("%w: %s: data não deve ser informada para o código %s", domain.ErrEncargoInvalido, familia, string(codigo))
		}
		if !money.EhZero(taxa) {
			return fmt.Errorf("%w: %s: taxa deve ser zero para o código %s", domain.ErrEncargoInvalido, familia, string(codigo))
		}
		if !money.EhZero(valor) {
			return fmt.Errorf("%w: %s: valor deve ser zero para o código %s", domain.ErrEncargoInvalido, familia, string(codigo))
		}
		return nil
	}

	if regra.exigeData && data.Vazia() {
		return fmt.Errorf("%w: %s: data é obrigatória para o código %s", domain.ErrEncargoInvalido, familia, string(codigo))
	}
	if !regra.exigeData && !data.Vazia() {
		return fmt.Errorf("%w: %s: data não deve ser informada para o código %s", domain.ErrEncargoInvalido, familia, string(codigo))
	}

	if regra.exigeTaxa {
		if !money.EhPositivoNaoNulo(taxa) {
			return fmt.Errorf("%w: %s: taxa deve ser maior que zero para o código %s", domain.ErrEncargoInvalido, familia, string(codigo))
		}
		if !money.EhZero(valor) {
			return fmt.Errorf("%w: %s: valor não se aplica ao código %s", domain.ErrEncargoInvalido, familia, string(codigo))
		}
	}
	if regra.exigeValor {
		if !money.EhPositivoNaoNulo(valor) {
			return fmt.Errorf("%w: %s: valor deve ser maior que zero para o código %s", domain.ErrEncargoInvalido, familia, string(codigo))
		}
		if !money.EhZero(taxa) {
			return fmt.Errorf("%w: %s: taxa não se aplica ao código %s", domain.ErrEncargoInvalido, familia, string(codigo))
		}
	}
	return nil
}

// ── Desconto ──────────────────────────────────────────────────────────────────

// Desconto abatimento condicional do título. A emissão aceita até três
// (desconto1..desconto3). Construa com NovoDesconto ou use SemDesconto.
type Desconto struct {
	Codigo CodigoDesconto  `json:"codigoDesconto"`
	Taxa   decimal.Decimal `json:"taxa"`
	Valor  decimal.Decimal `json:"valor"`
	Data   Data            `json:"data"`
}

// NovoDesconto valida e constrói um desconto. O objeto devolvido é tratado
// como imutável dali em diante.
func NovoDesconto(codigo CodigoDesconto, taxa, valor decimal.Decimal, data Data) (Desconto, error) {
	if err := validaEncargo("desconto", codigo, regrasDesconto, taxa, valor, data); err != nil {
		return Desconto{}, err
	}
	return Desconto{Codigo: codigo, Taxa: taxa, Valor: valor, Data: data}, nil
}

// SemDesconto devolve o desconto neutro (NAOTEMDESCONTO).
func SemDesconto() Desconto {
	return Desconto{Codigo: DescontoNaoTem}
}

// Ativo informa se o desconto efetivamente se aplica ao título.
func (d Desconto) Ativo() bool { return d.Codigo != DescontoNaoTem }

// valida reaplica as regras da família sobre um descritor que pode não ter
// passado pelo construtor (ex.: desserializado de JSON). O rótulo nomeia o
// campo da emissão (desconto1..desconto3) na mensagem de erro.
func (d Desconto) valida(campo string) error {
	return validaEncargo(campo, d.Codigo, regrasDesconto, d.Taxa, d.Valor, d.Data)
}

// ── Mora ──────────────────────────────────────────────────────────────────────

// Mora juros por atraso do título. A data marca o início da cobrança e deve
// ser posterior ao vencimento; essa regra cruzada é validada na Emissao.
type Mora struct {
	Codigo CodigoMora      `json:"codigoMora"`
	Taxa   decimal.Decimal `json:"taxa"`
	Valor  decimal.Decimal `json:"valor"`
	Data   Data            `json:"data"`
}

// NovaMora valida e constrói uma mora.
func NovaMora(codigo CodigoMora, taxa, valor decimal.Decimal, data Data) (Mora, error) {
	if err := validaEncargo("mora", codigo, regrasMora, taxa, valor, data); err != nil {
		return Mora{}, err
	}
	return Mora{Codigo: codigo, Taxa: taxa, Valor: valor, Data: data}, nil
}

// SemMora devolve a mora neutra (ISENTO).
func SemMora() Mora {
	return Mora{Codigo: MoraIsento}
}

// Ativa informa se a mora efetivamente se aplica ao título.
func (m Mora) Ativa() bool { return m.Codigo != MoraIsento }

func (m Mora) valida(campo string) error {
	return validaEncargo(campo, m.Codigo, regrasMora, m.Taxa, m.Valor, m.Data)
}

// ── Multa ─────────────────────────────────────────────────────────────────────

// Multa penalidade por atraso do título. Mesma regra de data da Mora.
type Multa struct {
	Codigo CodigoMulta     `json:"codigoMulta"`
	Taxa   decimal.Decimal `json:"taxa"`
	Valor  decimal.Decimal `json:"valor"`
	Data   Data            `json:"data"`
}

// NovaMulta valida e constrói uma multa.
func NovaMulta(codigo CodigoMulta, taxa, valor decimal.Decimal, data Data) (Multa, error) {
	if err := validaEncargo("multa", codigo, regrasMulta, taxa, valor, data); err != nil {
		return Multa{}, err
	}
	return Multa{Codigo: codigo, Taxa: taxa, Valor: valor, Data: data}, nil
}

// SemMulta devolve a multa neutra (NAOTEMMULTA).
func SemMulta() Multa {
	return Multa{Codigo: MultaNaoTem}
}

// Ativa informa se a multa efetivamente se aplica ao título.
func (m Multa) Ativa() bool { return m.Codigo != MultaNaoTem }

func (m Multa) valida(campo string) error {
	return validaEncargo(campo, m.Codigo, regrasMulta, m.Taxa, m.Valor, m.Data)
}
