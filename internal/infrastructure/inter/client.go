// Package inter implementa o transporte HTTP da API de cobrança do Banco
// Inter: autenticação OAuth2 sobre mTLS e as operações de emissão, consulta,
// PDF e cancelamento. Cada operação é uma chamada bloqueante única, sem
// retry e sem estado local além do cache de token.
package inter

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/boletohub/interboleto/internal/application/dto"
	"github.com/boletohub/interboleto/internal/domain/cobranca"
	"github.com/boletohub/interboleto/pkg/config"
	"github.com/boletohub/interboleto/pkg/logger"
	"github.com/boletohub/interboleto/pkg/sanitize"
)

// MotivoCancelamento domínio que descreve o tipo de cancelamento solicitado.
type MotivoCancelamento string

const (
	CanceladoPorAcertos        MotivoCancelamento = "ACERTOS"
	CanceladoPagoDiretoCliente MotivoCancelamento = "PAGODIRETOAOCLIENTE"
	CanceladoPorSubstituicao   MotivoCancelamento = "SUBSTITUICAO"
	CanceladoAPedidoDoCliente  MotivoCancelamento = "APEDIDODOCLIENTE"
)

// Client fala com a API de cobrança. Construa com NovoClient; o zero value
// não é utilizável. O cliente não guarda estado entre operações além do
// token OAuth2 em cache, portanto uma instância serve a quantas emissões
// o chamador quiser.
type Client struct {
	cfg     config.InterConfig
	http    *http.Client
	log     *logger.Logger
	escopos []Escopo

	token       string
	tokenExpira time.Time
}

// NovoClient carrega o certificado mTLS e monta o cliente com os escopos
// informados (ou leitura+escrita de cobrança, quando omitidos).
func NovoClient(cfg config.InterConfig, log *logger.Logger, escopos ...Escopo) (*Client, error) {
	cert, err := CarregaCertificado(cfg.CertPath, cfg.KeyPath)
	if err != nil {
		return nil, err
	}
	if len(escopos) == 0 {
		escopos = []Escopo{EscopoBoletoCobrancaRead, EscopoBoletoCobrancaWrite}
	}
	return &Client{
		cfg:     cfg,
		http:    novoHTTPClient(cert, time.Duration(cfg.HTTPTimeout)*time.Second),
		log:     log,
		escopos: escopos,
	}, nil
}

// NovoClientComHTTP injeta o http.Client, para testes com httptest ou para
// quem precisa de transporte customizado.
func NovoClientComHTTP(cfg config.InterConfig, log *logger.Logger, hc *http.Client, escopos ...Escopo) *Client {
	if len(escopos) == 0 {
		escopos = []Escopo{EscopoBoletoCobrancaRead, EscopoBoletoCobrancaWrite}
	}
	return &Client{cfg: cfg, http: hc, log: log, escopos: escopos}
}

// executa monta e dispara uma requisição autenticada, devolvendo o corpo
// quando o status bate com o esperado e o erro tipado do banco quando não.
func (c *Client) executa(ctx context.Context, metodo, urlStr string, corpo []byte, esperado int) ([]byte, error) {
	token, err := c.tokenValido(ctx)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if corpo != nil {
		reader = bytes.NewReader(corpo)
	}
	req, err := http.NewRequestWithContext(ctx, metodo, urlStr, reader)
	if err != nil {
		return nil, fmt.Errorf("montar requisição: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Inter-Conta-Corrente", sanitize.SomenteDigitos(c.cfg.Conta))
	if corpo != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chamar API do Inter: %w", err)
	}
	defer resp.Body.Close()

	conteudo, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ler resposta: %w", err)
	}
	if resp.StatusCode != esperado {
		erro := novoErroAPI(resp.StatusCode, conteudo)
		c.log.Warn().Int("status", resp.StatusCode).Str("tipo", string(erro.Tipo)).Str("url", urlStr).Msg("rejeição da API")
		return nil, erro
	}
	return conteudo, nil
}

// Emitir inclui o título. O boleto fica disponível para consulta e
// pagamento uns 5 minutos após a inclusão (tempo de registro na CIP).
func (c *Client) Emitir(ctx context.Context, dados *cobranca.Emissao) (*dto.RespostaEmissao, error) {
	corpo, err := dados.JSON()
	if err != nil {
		return nil, fmt.Errorf("serializar emissão: %w", err)
	}

	conteudo, err := c.executa(ctx, http.MethodPost, c.cfg.BaseURL, corpo, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var resposta dto.RespostaEmissao
	if err := json.Unmarshal(conteudo, &resposta); err != nil {
		return nil, fmt.Errorf("decodificar resposta de emissão: %w", err)
	}
	c.log.Info().Str("seuNumero", resposta.SeuNumero).Str("nossoNumero", resposta.NossoNumero).Msg("boleto emitido")
	return &resposta, nil
}

// ConsultarDetalhe recupera as informações de um boleto no padrão D+0: a
// situação é consultada direto na CIP, em tempo real.
func (c *Client) ConsultarDetalhe(ctx context.Context, nossoNumero string) (*dto.DetalheBoleto, error) {
	conteudo, err := c.executa(ctx, http.MethodGet, c.cfg.BaseURL+"/"+nossoNumero, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var detalhe dto.DetalheBoleto
	if err := json.Unmarshal(conteudo, &detalhe); err != nil {
		return nil, fmt.Errorf("decodificar detalhe do boleto: %w", err)
	}
	return &detalhe, nil
}

// ConsultarLista recupera uma página de boletos por período. Padrão D+1:
// títulos incluídos hoje só aparecem a partir do dia seguinte.
func (c *Client) ConsultarLista(ctx context.Context, filtro FiltroLista) (*dto.ListaBoletos, error) {
	urlStr := c.cfg.BaseURL + "?" + filtro.queryParams().Encode()
	conteudo, err := c.executa(ctx, http.MethodGet, urlStr, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var lista dto.ListaBoletos
	if err := json.Unmarshal(conteudo, &lista); err != nil {
		return nil, fmt.Errorf("decodificar lista de boletos: %w", err)
	}
	return &lista, nil
}

// PDF devolve o boleto pronto para impressão. A API responde o PDF em
// base64; aqui já vem decodificado.
func (c *Client) PDF(ctx context.Context, nossoNumero string) ([]byte, error) {
	conteudo, err := c.executa(ctx, http.MethodGet, c.cfg.BaseURL+"/"+nossoNumero+"/pdf", nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	// O corpo pode vir cru ou embrulhado em {"pdf": "<base64>"}.
	var embrulho struct {
		PDF string `json:"pdf"`
	}
	b64 := string(bytes.TrimSpace(conteudo))
	if err := json.Unmarshal(conteudo, &embrulho); err == nil && embrulho.PDF != "" {
		b64 = embrulho.PDF
	}

	decodificado, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("decodificar PDF do boleto: %w", err)
	}
	return decodificado, nil
}

// PDFParaArquivo salva o boleto em disco. Recusa sobrescrever um arquivo
// existente.
func (c *Client) PDFParaArquivo(ctx context.Context, nossoNumero, caminho string) error {
	caminho, err := filepath.Abs(caminho)
	if err != nil {
		return fmt.Errorf("resolver caminho do PDF: %w", err)
	}
	if _, err := os.Stat(caminho); err == nil {
		return fmt.Errorf("já existe um arquivo em %s", caminho)
	}

	conteudo, err := c.PDF(ctx, nossoNumero)
	if err != nil {
		return err
	}
	return os.WriteFile(caminho, conteudo, 0o644)
}

// Cancelar executa a baixa do título pelo motivo informado. O registro é
// D+1: cancelamentos de hoje só constam na base centralizada amanhã.
// Sucesso é um 204 sem corpo.
func (c *Client) Cancelar(ctx context.Context, nossoNumero string, motivo MotivoCancelamento) error {
	corpo, err := json.Marshal(map[string]string{"motivoCancelamento": string(motivo)})
	if err != nil {
		return fmt.Errorf("serializar cancelamento: %w", err)
	}

	_, err = c.executa(ctx, http.MethodPost, c.cfg.BaseURL+"/"+nossoNumero+"/cancelar", corpo, http.StatusNoContent)
	if err != nil {
		return err
	}
	c.log.Info().Str("nossoNumero", nossoNumero).Str("motivo", string(motivo)).Msg("boleto cancelado")
	return nil
}
