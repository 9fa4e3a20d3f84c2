package inter_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boletohub/interboleto/internal/domain/cobranca"
	"github.com/boletohub/interboleto/internal/infrastructure/inter"
	"github.com/boletohub/interboleto/pkg/config"
	"github.com/boletohub/interboleto/pkg/logger"
)

// servidorFalso sobe um httptest.Server que emite tokens e delega o resto
// ao handler do teste.
func servidorFalso(t *testing.T, handler http.HandlerFunc) (*inter.Client, *contadorToken) {
	t.Helper()
	contador := &contadorToken{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth/v2/token" {
			contador.chamadas++
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "client_credentials", r.Form.Get("grant_type"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"token-de-teste","token_type":"Bearer","expires_in":3600}`))
			return
		}
		assert.Equal(t, "Bearer token-de-teste", r.Header.Get("Authorization"))
		assert.Equal(t, "12345678", r.Header.Get("X-Inter-Conta-Corrente"))
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := config.InterConfig{
		ClientID:     "7f2aa5a6-9f56-4d0a-8f7e-2b0a6a2f1c11",
		ClientSecret: "0d9c7b5e-3a64-4f3c-9d2e-5f8b1a7c4e22",
		Conta:        "1234567-8",
		BaseURL:      srv.URL + "/cobranca/v2/boletos",
		TokenURL:     srv.URL + "/oauth/v2/token",
	}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return inter.NovoClientComHTTP(cfg, log, srv.Client()), contador
}

type contadorToken struct {
	chamadas int
}

func emissaoDeTeste(t *testing.T) *cobranca.Emissao {
	t.Helper()
	pagador, err := cobranca.NovoPagador(cobranca.Pagador{
		CnpjCpf:    "123.456.789-09",
		TipoPessoa: cobranca.PessoaFisica,
		Nome:       "Pessoa Ficticia da Silva",
		Endereco:   "Rua Fantasia",
		Numero:     "300",
		Bairro:     "Centro",
		Cidade:     "Sao Paulo",
		UF:         "SP",
		CEP:        "12345-678",
	})
	require.NoError(t, err)

	emissao, err := cobranca.NovaEmissao(cobranca.ParamsEmissao{
		Pagador:             pagador,
		CnpjCPFBeneficiario: "12.345.678/0001-12",
		SeuNumero:           "00001",
		ValorNominal:        decimal.NewFromFloat(10.01),
		DataEmissao:         cobranca.NovaData(2026, 2, 1),
		DataVencimento:      cobranca.NovaData(2026, 3, 1),
	})
	require.NoError(t, err)
	return emissao
}

func TestEmitir(t *testing.T) {
	var corpoRecebido map[string]any
	client, contador := servidorFalso(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/cobranca/v2/boletos", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&corpoRecebido))

		_, _ = w.Write([]byte(`{
			"seuNumero": "00001",
			"nossoNumero": "00123456789",
			"codigoBarras": "00000000000000000000000000000000000000000000",
			"linhaDigitavel": "00000000000000000000000000000000000000000000000"
		}`))
	})

	resposta, err := client.Emitir(context.Background(), emissaoDeTeste(t))
	require.NoError(t, err)

	assert.Equal(t, "00123456789", resposta.NossoNumero)
	assert.Len(t, resposta.CodigoBarras, 44)
	assert.Len(t, resposta.LinhaDigitavel, 47)
	assert.Equal(t, 1, contador.chamadas)

	// O corpo enviado carrega os tokens do contrato.
	assert.Equal(t, "12345678000112", corpoRecebido["cnpjCPFBeneficiario"])
	assert.Equal(t, "NAOTEMMULTA", corpoRecebido["multa"].(map[string]any)["codigoMulta"])
}

func TestEmitir_TokenEmCacheEntreChamadas(t *testing.T) {
	client, contador := servidorFalso(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"seuNumero":"00001","nossoNumero":"1","codigoBarras":"","linhaDigitavel":""}`))
	})

	_, err := client.Emitir(context.Background(), emissaoDeTeste(t))
	require.NoError(t, err)
	_, err = client.Emitir(context.Background(), emissaoDeTeste(t))
	require.NoError(t, err)

	assert.Equal(t, 1, contador.chamadas, "o token vale por uma hora; uma chamada basta")
}

func TestConsultarDetalhe(t *testing.T) {
	client, _ := servidorFalso(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/cobranca/v2/boletos/00123456789", r.URL.Path)
		_, _ = w.Write([]byte(`{"nossoNumero":"00123456789","seuNumero":"00001","situacao":"PAGO","valorNominal":10.01}`))
	})

	detalhe, err := client.ConsultarDetalhe(context.Background(), "00123456789")
	require.NoError(t, err)
	assert.Equal(t, "PAGO", detalhe.Situacao)
	assert.True(t, decimal.NewFromFloat(10.01).Equal(detalhe.ValorNominal))
}

func TestConsultarLista_ParametrosDeQuery(t *testing.T) {
	client, _ := servidorFalso(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2026-02-01", q.Get("dataInicial"))
		assert.Equal(t, "2026-03-01", q.Get("dataFinal"))
		assert.Equal(t, "VENCIMENTO", q.Get("filtrarDataPor"), "padrão quando não informado")
		assert.Equal(t, "PAGADOR", q.Get("ordenarPor"))
		assert.Equal(t, "DESC", q.Get("tipoOrdenacao"))
		assert.Equal(t, "1000", q.Get("itensPorPagina"), "grampeado no máximo da API")
		assert.Equal(t, "EMABERTO,VENCIDO", q.Get("situacao"))
		_, _ = w.Write([]byte(`{"totalPages":1,"totalElements":0,"numberOfElements":0,"last":true,"first":true,"size":100,"content":[]}`))
	})

	lista, err := client.ConsultarLista(context.Background(), inter.FiltroLista{
		DataInicial:    cobranca.NovaData(2026, 2, 1),
		DataFinal:      cobranca.NovaData(2026, 3, 1),
		Situacoes:      []inter.Situacao{inter.SituacaoEmAberto, inter.SituacaoVencido},
		Descendente:    true,
		ItensPorPagina: 5000,
	})
	require.NoError(t, err)
	assert.True(t, lista.Last)
	assert.Empty(t, lista.Content)
}

func TestPDF_DecodificaBase64(t *testing.T) {
	pdfOriginal := []byte("%PDF-1.4 conteudo de teste")
	client, _ := servidorFalso(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cobranca/v2/boletos/00123456789/pdf", r.URL.Path)
		_, _ = w.Write([]byte(base64.StdEncoding.EncodeToString(pdfOriginal)))
	})

	conteudo, err := client.PDF(context.Background(), "00123456789")
	require.NoError(t, err)
	assert.Equal(t, pdfOriginal, conteudo)
}

func TestPDFParaArquivo_RecusaSobrescrever(t *testing.T) {
	client, _ := servidorFalso(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(base64.StdEncoding.EncodeToString([]byte("%PDF"))))
	})

	caminho := filepath.Join(t.TempDir(), "boleto.pdf")
	require.NoError(t, client.PDFParaArquivo(context.Background(), "1", caminho))

	conteudo, err := os.ReadFile(caminho)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), conteudo)

	err = client.PDFParaArquivo(context.Background(), "1", caminho)
	assert.Error(t, err, "não sobrescreve arquivo existente")
}

func TestCancelar(t *testing.T) {
	client, _ := servidorFalso(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/cobranca/v2/boletos/00123456789/cancelar", r.URL.Path)

		var corpo map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&corpo))
		assert.Equal(t, "APEDIDODOCLIENTE", corpo["motivoCancelamento"])

		w.WriteHeader(http.StatusNoContent)
	})

	err := client.Cancelar(context.Background(), "00123456789", inter.CanceladoAPedidoDoCliente)
	assert.NoError(t, err)
}

func TestErroAPI_TaxonomiaPorStatus(t *testing.T) {
	casos := []struct {
		status int
		tipo   inter.TipoErroAPI
	}{
		{http.StatusForbidden, inter.ErroAcessoNegado},
		{http.StatusNotFound, inter.ErroNaoEncontrado},
		{http.StatusServiceUnavailable, inter.ErroServicoIndisponivel},
		{http.StatusInternalServerError, inter.ErroInterno},
		{http.StatusBadRequest, inter.ErroRequisicaoInvalida},
	}
	for _, c := range casos {
		t.Run(http.StatusText(c.status), func(t *testing.T) {
			client, _ := servidorFalso(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(c.status)
				_, _ = w.Write([]byte(`{"message":"mensagem do banco"}`))
			})

			_, err := client.ConsultarDetalhe(context.Background(), "1")
			require.ErrorIs(t, err, inter.ErrAPI)

			var erroAPI *inter.ErroAPI
			require.ErrorAs(t, err, &erroAPI)
			assert.Equal(t, c.status, erroAPI.StatusCode)
			assert.Equal(t, c.tipo, erroAPI.Tipo)
			assert.Equal(t, "mensagem do banco", erroAPI.Mensagem, "mensagem remota anexada verbatim")
		})
	}
}

func TestCancelar_RejeicaoComMensagem(t *testing.T) {
	client, _ := servidorFalso(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Boleto já baixado"}`))
	})

	err := client.Cancelar(context.Background(), "1", inter.CanceladoPorAcertos)
	require.ErrorIs(t, err, inter.ErrAPI)
	assert.Contains(t, err.Error(), "Boleto já baixado")
}
