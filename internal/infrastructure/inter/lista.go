package inter

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/boletohub/interboleto/internal/domain/cobranca"
)

// FiltrarDataPor define a qual data os filtros de período se aplicam.
type FiltrarDataPor string

const (
	FiltrarPorVencimento FiltrarDataPor = "VENCIMENTO"
	FiltrarPorEmissao    FiltrarDataPor = "EMISSAO"
	FiltrarPorSituacao   FiltrarDataPor = "SITUACAO"
)

// Situacao situação da cobrança, para filtro da listagem.
type Situacao string

const (
	SituacaoExpirado  Situacao = "EXPIRADO"
	SituacaoVencido   Situacao = "VENCIDO"
	SituacaoEmAberto  Situacao = "EMABERTO"
	SituacaoPago      Situacao = "PAGO"
	SituacaoCancelado Situacao = "CANCELADO"
)

// OrdenarPor campo de ordenação do retorno da listagem.
type OrdenarPor string

const (
	OrdenarPorPagador        OrdenarPor = "PAGADOR"
	OrdenarPorNossoNumero    OrdenarPor = "NOSSONUMERO"
	OrdenarPorSeuNumero      OrdenarPor = "SEUNUMERO"
	OrdenarPorDataSituacao   OrdenarPor = "DATASITUACAO"
	OrdenarPorDataVencimento OrdenarPor = "DATAVENCIMENTO"
	OrdenarPorValor          OrdenarPor = "VALOR"
	OrdenarPorStatus         OrdenarPor = "STATUS"
)

// Limites de paginação aceitos pela API.
const (
	itensPorPaginaMin    = 1
	itensPorPaginaMax    = 1000
	itensPorPaginaPadrao = 100
)

// FiltroLista parâmetros da consulta por período. DataInicial e DataFinal
// são obrigatórios; o resto assume os padrões da API (filtro por
// vencimento, ordenação por pagador ascendente, 100 itens por página).
type FiltroLista struct {
	DataInicial    cobranca.Data
	DataFinal      cobranca.Data
	FiltrarDataPor FiltrarDataPor
	Situacoes      []Situacao
	Nome           string
	Email          string
	CpfCnpj        string
	OrdenarPor     OrdenarPor
	Descendente    bool
	ItensPorPagina int
	PaginaAtual    int
}

// queryParams materializa o filtro nos parâmetros de query esperados pela
// API. O tamanho de página é grampeado em [1, 1000].
func (f FiltroLista) queryParams() url.Values {
	filtrarPor := f.FiltrarDataPor
	if filtrarPor == "" {
		filtrarPor = FiltrarPorVencimento
	}
	ordenar := f.OrdenarPor
	if ordenar == "" {
		ordenar = OrdenarPorPagador
	}
	itens := f.ItensPorPagina
	if itens == 0 {
		itens = itensPorPaginaPadrao
	}
	if itens < itensPorPaginaMin {
		itens = itensPorPaginaMin
	}
	if itens > itensPorPaginaMax {
		itens = itensPorPaginaMax
	}
	tipoOrdenacao := "ASC"
	if f.Descendente {
		tipoOrdenacao = "DESC"
	}

	params := url.Values{
		"dataInicial":    {f.DataInicial.String()},
		"dataFinal":      {f.DataFinal.String()},
		"filtrarDataPor": {string(filtrarPor)},
		"ordenarPor":     {string(ordenar)},
		"tipoOrdenacao":  {tipoOrdenacao},
		"itensPorPagina": {strconv.Itoa(itens)},
		"paginaAtual":    {strconv.Itoa(f.PaginaAtual)},
	}

	if len(f.Situacoes) > 0 {
		valores := make([]string, len(f.Situacoes))
		for i, s := range f.Situacoes {
			valores[i] = string(s)
		}
		params.Set("situacao", strings.Join(valores, ","))
	}
	if f.Nome != "" {
		params.Set("nome", f.Nome)
	}
	if f.Email != "" {
		params.Set("email", f.Email)
	}
	if f.CpfCnpj != "" {
		params.Set("cpfCnpj", f.CpfCnpj)
	}
	return params
}
