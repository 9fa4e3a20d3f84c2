package cobranca

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/boletohub/interboleto/internal/domain"
	"github.com/boletohub/interboleto/pkg/money"
	"github.com/boletohub/interboleto/pkg/sanitize"
)

// Limites da emissão.
const (
	tamanhoMaxSeuNumero = 15
	// Dias corridos após o vencimento para baixa automática do título.
	numDiasAgendaMax    = 59
	numDiasAgendaPadrao = 30
)

// ParamsEmissao reúne os dados brutos da emissão. Pagador e Beneficiario
// devem vir dos construtores NovoPagador/NovoBeneficiario; os demais campos
// são validados por NovaEmissao. Campos zerados recebem os padrões neutros
// (sem desconto, sem multa, mora isenta, mensagem vazia, agenda de 30 dias).
type ParamsEmissao struct {
	Pagador   Pagador
	SeuNumero string

	// Beneficiário: ou o registro completo (geração atual da API), ou
	// apenas o documento (forma legada). Informar os dois é ambíguo e
	// rejeitado; nenhum dos dois significa usar o titular da conta.
	Beneficiario        *Beneficiario
	CnpjCPFBeneficiario string

	ValorNominal    decimal.Decimal
	ValorAbatimento decimal.Decimal
	DataEmissao     Data
	DataVencimento  Data
	NumDiasAgenda   int

	Desconto1 Desconto
	Desconto2 Desconto
	Desconto3 Desconto
	Multa     Multa
	Mora      Mora
	Mensagem  Mensagem
}

// Emissao é o detalhamento validado de uma emissão de boleto, no formato do
// contrato da API. Construa com NovaEmissao e trate como imutável: depois de
// emitido, o identificador atribuído pelo banco vive só na resposta, nunca
// é escrito de volta aqui.
type Emissao struct {
	Pagador             Pagador         `json:"pagador"`
	Beneficiario        *Beneficiario   `json:"beneficiario,omitempty"`
	CnpjCPFBeneficiario string          `json:"cnpjCPFBeneficiario,omitempty"`
	SeuNumero           string          `json:"seuNumero"`
	ValorNominal        decimal.Decimal `json:"valorNominal"`
	ValorAbatimento     decimal.Decimal `json:"valorAbatimento"`
	DataEmissao         Data            `json:"dataEmissao"`
	DataVencimento      Data            `json:"dataVencimento"`
	NumDiasAgenda       int             `json:"numDiasAgenda"`
	Desconto1           Desconto        `json:"desconto1"`
	Desconto2           Desconto        `json:"desconto2"`
	Desconto3           Desconto        `json:"desconto3"`
	Multa               Multa           `json:"multa"`
	Mora                Mora            `json:"mora"`
	Mensagem            Mensagem        `json:"mensagem"`
}

// NovaEmissao valida os parâmetros e monta a emissão. A validação é síncrona
// e para na primeira regra violada, nesta ordem: seuNumero, documento do
// beneficiário (forma legada), valorNominal, valorAbatimento, datas de
// emissão/vencimento, regras de cada encargo e por fim as datas de multa e
// mora (estritamente posteriores ao vencimento). Nenhum I/O acontece aqui.
func NovaEmissao(p ParamsEmissao) (*Emissao, error) {
	if p.SeuNumero == "" {
		return nil, fmt.Errorf("%w: campo seuNumero é obrigatório", domain.ErrEmissaoInvalida)
	}
	if len(p.SeuNumero) > tamanhoMaxSeuNumero {
		return nil, fmt.Errorf("%w: campo seuNumero excede %d caracteres", domain.ErrEmissaoInvalida, tamanhoMaxSeuNumero)
	}

	if p.Beneficiario != nil && p.CnpjCPFBeneficiario != "" {
		return nil, fmt.Errorf("%w: informe o beneficiário completo ou só o documento, não ambos", domain.ErrEmissaoInvalida)
	}
	if p.CnpjCPFBeneficiario != "" {
		doc := sanitize.SomenteDigitos(p.CnpjCPFBeneficiario)
		if len(doc) != tamanhoCPF && len(doc) != tamanhoCNPJ {
			return nil, fmt.Errorf("%w: campo cnpjCPFBeneficiario deve ter %d ou %d dígitos, veio com %d", domain.ErrEmissaoInvalida, tamanhoCPF, tamanhoCNPJ, len(doc))
		}
		p.CnpjCPFBeneficiario = doc
	}

	if !money.EhPositivoNaoNulo(p.ValorNominal) {
		return nil, fmt.Errorf("%w: campo valorNominal deve ser maior que zero", domain.ErrEmissaoInvalida)
	}
	if !money.EhPositivo(p.ValorAbatimento) {
		return nil, fmt.Errorf("%w: campo valorAbatimento não pode ser negativo", domain.ErrEmissaoInvalida)
	}

	if p.DataEmissao.Vazia() {
		return nil, fmt.Errorf("%w: campo dataEmissao é obrigatório", domain.ErrEmissaoInvalida)
	}
	if p.DataVencimento.Vazia() {
		return nil, fmt.Errorf("%w: campo dataVencimento é obrigatório", domain.ErrEmissaoInvalida)
	}
	if p.DataVencimento.Antes(p.DataEmissao) {
		return nil, fmt.Errorf("%w: dataVencimento (%s) não pode ser anterior à dataEmissao (%s)", domain.ErrEmissaoInvalida, p.DataVencimento, p.DataEmissao)
	}

	// Padrões neutros para os encargos não informados.
	if p.Desconto1.Codigo == "" {
		p.Desconto1 = SemDesconto()
	}
	if p.Desconto2.Codigo == "" {
		p.Desconto2 = SemDesconto()
	}
	if p.Desconto3.Codigo == "" {
		p.Desconto3 = SemDesconto()
	}
	if p.Multa.Codigo == "" {
		p.Multa = SemMulta()
	}
	if p.Mora.Codigo == "" {
		p.Mora = SemMora()
	}

	// Os descritores podem chegar aqui sem ter passado pelos construtores
	// (o chamador pode preenchê-los direto, inclusive via JSON); reaplica
	// as regras de cada família antes das checagens cruzadas.
	descontos := []struct {
		campo string
		d     Desconto
	}{
		{"desconto1", p.Desconto1},
		{"desconto2", p.Desconto2},
		{"desconto3", p.Desconto3},
	}
	for _, item := range descontos {
		if err := item.d.valida(item.campo); err != nil {
			return nil, err
		}
	}
	if err := p.Multa.valida("multa"); err != nil {
		return nil, err
	}
	if err := p.Mora.valida("mora"); err != nil {
		return nil, err
	}

	// Multa e mora ativas só começam a valer depois do vencimento; a data
	// delas tem que ser estritamente posterior (vencimento + 1 dia serve,
	// o próprio vencimento não).
	if p.Multa.Ativa() && !p.Multa.Data.Depois(p.DataVencimento) {
		return nil, fmt.Errorf("%w: data da multa (%s) deve ser posterior ao vencimento (%s)", domain.ErrEmissaoInvalida, p.Multa.Data, p.DataVencimento)
	}
	if p.Mora.Ativa() && !p.Mora.Data.Depois(p.DataVencimento) {
		return nil, fmt.Errorf("%w: data da mora (%s) deve ser posterior ao vencimento (%s)", domain.ErrEmissaoInvalida, p.Mora.Data, p.DataVencimento)
	}

	if p.NumDiasAgenda == 0 {
		p.NumDiasAgenda = numDiasAgendaPadrao
	}
	if p.NumDiasAgenda < 0 || p.NumDiasAgenda > numDiasAgendaMax {
		return nil, fmt.Errorf("%w: campo numDiasAgenda deve estar entre 0 e %d", domain.ErrEmissaoInvalida, numDiasAgendaMax)
	}

	return &Emissao{
		Pagador:             p.Pagador,
		Beneficiario:        p.Beneficiario,
		CnpjCPFBeneficiario: p.CnpjCPFBeneficiario,
		SeuNumero:           p.SeuNumero,
		ValorNominal:        p.ValorNominal,
		ValorAbatimento:     p.ValorAbatimento,
		DataEmissao:         p.DataEmissao,
		DataVencimento:      p.DataVencimento,
		NumDiasAgenda:       p.NumDiasAgenda,
		Desconto1:           p.Desconto1,
		Desconto2:           p.Desconto2,
		Desconto3:           p.Desconto3,
		Multa:               p.Multa,
		Mora:                p.Mora,
		Mensagem:            p.Mensagem,
	}, nil
}

// JSON serializa a emissão no formato exato do contrato: tokens de enum
// verbatim, datas em AAAA-MM-DD (vazias como "") e valores como números.
// Mapeamento puro e determinístico, sem lógica condicional.
func (e *Emissao) JSON() ([]byte, error) {
	return json.Marshal(e)
}
