package inter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Escopo de acesso da API, concedido por credencial no internet banking PJ.
type Escopo string

const (
	EscopoBoletoCobrancaRead  Escopo = "boleto-cobranca.read"
	EscopoBoletoCobrancaWrite Escopo = "boleto-cobranca.write"
	EscopoExtratoRead         Escopo = "extrato.read"
)

// Margem de segurança antes de considerar o token expirado.
const margemExpiracaoToken = 30 * time.Second

type respostaToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope"`
}

// obterToken executa o fluxo client-credentials do OAuth2. O transporte já
// carrega o certificado mTLS; aqui só vai o corpo form-urlencoded.
func (c *Client) obterToken(ctx context.Context) (string, error) {
	form := url.Values{
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"scope":         {escoposComoString(c.escopos)},
		"grant_type":    {"client_credentials"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("montar requisição de token: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("requisitar token: %w", err)
	}
	defer resp.Body.Close()

	corpo, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ler resposta de token: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", novoErroAPI(resp.StatusCode, corpo)
	}

	var tok respostaToken
	if err := json.Unmarshal(corpo, &tok); err != nil {
		return "", fmt.Errorf("decodificar resposta de token: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("resposta de token sem access_token")
	}

	c.token = tok.AccessToken
	c.tokenExpira = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	c.log.Debug().Str("scope", tok.Scope).Int("expires_in", tok.ExpiresIn).Msg("token OAuth2 obtido")
	return c.token, nil
}

// tokenValido devolve o token em cache, renovando quando ausente ou perto
// de expirar.
func (c *Client) tokenValido(ctx context.Context) (string, error) {
	if c.token != "" && time.Until(c.tokenExpira) > margemExpiracaoToken {
		return c.token, nil
	}
	return c.obterToken(ctx)
}

func escoposComoString(escopos []Escopo) string {
	partes := make([]string, len(escopos))
	for i, e := range escopos {
		partes[i] = string(e)
	}
	return strings.Join(partes, " ")
}
