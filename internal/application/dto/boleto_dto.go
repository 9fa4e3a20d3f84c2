// Package dto define as formas de fio das respostas da API de cobrança e o
// mapeamento campo a campo para os tipos de domínio.
package dto

import (
	"github.com/shopspring/decimal"

	"github.com/boletohub/interboleto/internal/domain/cobranca"
)

// RespostaEmissao resultado de uma emissão bem sucedida. Registro somente
// leitura; o nossoNumero é atribuído pelo banco e nunca volta para a Emissao.
type RespostaEmissao struct {
	SeuNumero      string `json:"seuNumero"`
	NossoNumero    string `json:"nossoNumero"`
	CodigoBarras   string `json:"codigoBarras"`   // 44 posições
	LinhaDigitavel string `json:"linhaDigitavel"` // 47 posições
}

// EncargoConsulta forma de fio dos encargos nas consultas. Diferente da
// emissão, o discriminador aqui chama-se sempre "codigo".
type EncargoConsulta struct {
	Codigo string          `json:"codigo"`
	Taxa   decimal.Decimal `json:"taxa"`
	Valor  decimal.Decimal `json:"valor"`
	Data   string          `json:"data"`
}

// ParaDesconto reconstrói o descritor de desconto do domínio, revalidando.
func (e EncargoConsulta) ParaDesconto() (cobranca.Desconto, error) {
	data, err := cobranca.ParseData(e.Data)
	if err != nil {
		return cobranca.Desconto{}, err
	}
	return cobranca.NovoDesconto(cobranca.CodigoDesconto(e.Codigo), e.Taxa, e.Valor, data)
}

// ParaMora reconstrói o descritor de mora do domínio, revalidando.
func (e EncargoConsulta) ParaMora() (cobranca.Mora, error) {
	data, err := cobranca.ParseData(e.Data)
	if err != nil {
		return cobranca.Mora{}, err
	}
	return cobranca.NovaMora(cobranca.CodigoMora(e.Codigo), e.Taxa, e.Valor, data)
}

// ParaMulta reconstrói o descritor de multa do domínio, revalidando.
func (e EncargoConsulta) ParaMulta() (cobranca.Multa, error) {
	data, err := cobranca.ParseData(e.Data)
	if err != nil {
		return cobranca.Multa{}, err
	}
	return cobranca.NovaMulta(cobranca.CodigoMulta(e.Codigo), e.Taxa, e.Valor, data)
}

// DetalheBoleto representação detalhada de um boleto (consulta D+0: a
// situação vem direto da CIP, em tempo real).
type DetalheBoleto struct {
	NossoNumero            string          `json:"nossoNumero"`
	SeuNumero              string          `json:"seuNumero"`
	NomeBeneficiario       string          `json:"nomeBeneficiario"`
	CnpjCpfBeneficiario    string          `json:"cnpjCpfBeneficiario"`
	TipoPessoaBeneficiario string          `json:"tipoPessoaBeneficiario"`
	DataHoraSituacao       string          `json:"dataHoraSituacao"`
	CodigoBarras           string          `json:"codigoBarras"`
	LinhaDigitavel         string          `json:"linhaDigitavel"`
	DataVencimento         string          `json:"dataVencimento"`
	DataEmissao            string          `json:"dataEmissao"`
	Descricao              string          `json:"descricao"`
	ValorNominal           decimal.Decimal `json:"valorNominal"`
	NomePagador            string          `json:"nomePagador"`
	EmailPagador           string          `json:"emailPagador"`
	TelefonePagador        string          `json:"telefonePagador"`
	TipoPessoaPagador      string          `json:"tipoPessoaPagador"`
	CnpjCpfPagador         string          `json:"cnpjCpfPagador"`
	DataLimitePagamento    string          `json:"dataLimitePagamento"`
	ValorAbatimento        decimal.Decimal `json:"valorAbatimento"`
	Situacao               string          `json:"situacao"`
	Desconto1              EncargoConsulta `json:"desconto1"`
	Desconto2              EncargoConsulta `json:"desconto2"`
	Desconto3              EncargoConsulta `json:"desconto3"`
	Multa                  EncargoConsulta `json:"multa"`
	Mora                   EncargoConsulta `json:"mora"`
}

// ListaBoletos página de resultados da consulta por período (padrão D+1:
// títulos emitidos hoje só aparecem amanhã).
type ListaBoletos struct {
	TotalPages       int             `json:"totalPages"`
	TotalElements    int             `json:"totalElements"`
	NumberOfElements int             `json:"numberOfElements"`
	Last             bool            `json:"last"`
	First            bool            `json:"first"`
	Size             int             `json:"size"`
	Content          []DetalheBoleto `json:"content"`
}
