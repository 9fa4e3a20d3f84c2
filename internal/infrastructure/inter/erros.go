package inter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrAPI sentinela para toda rejeição vinda do banco. Use errors.Is(err,
// ErrAPI) para separar rejeição remota de falha local de validação.
var ErrAPI = errors.New("a API do Inter rejeitou a requisição")

// TipoErroAPI classifica a rejeição pelo status HTTP observado.
type TipoErroAPI string

const (
	ErroAcessoNegado        TipoErroAPI = "acesso-negado"        // 403
	ErroNaoEncontrado       TipoErroAPI = "nao-encontrado"       // 404
	ErroServicoIndisponivel TipoErroAPI = "servico-indisponivel" // 503
	ErroInterno             TipoErroAPI = "erro-interno"         // demais 5xx
	ErroRequisicaoInvalida  TipoErroAPI = "requisicao-invalida"  // demais 4xx
)

// ErroAPI carrega a rejeição remota com a mensagem do banco anexada
// verbatim. Nunca é objeto de retry automático: a semântica de falha do
// lado do banco (janelas D+1, manutenção etc.) é opaca para o cliente.
type ErroAPI struct {
	StatusCode int
	Tipo       TipoErroAPI
	Mensagem   string
}

func (e *ErroAPI) Error() string {
	if e.Mensagem == "" {
		return fmt.Sprintf("API do Inter respondeu %d (%s)", e.StatusCode, e.Tipo)
	}
	return fmt.Sprintf("API do Inter respondeu %d (%s): %s", e.StatusCode, e.Tipo, e.Mensagem)
}

// Unwrap permite errors.Is(err, ErrAPI).
func (e *ErroAPI) Unwrap() error { return ErrAPI }

func classificaStatus(status int) TipoErroAPI {
	switch {
	case status == http.StatusForbidden:
		return ErroAcessoNegado
	case status == http.StatusNotFound:
		return ErroNaoEncontrado
	case status == http.StatusServiceUnavailable:
		return ErroServicoIndisponivel
	case status >= 500:
		return ErroInterno
	default:
		return ErroRequisicaoInvalida
	}
}

// novoErroAPI monta o erro tipado extraindo a mensagem do corpo quando o
// banco a fornece ({"message": "..."} ou {"title"/"detail"}).
func novoErroAPI(status int, corpo []byte) *ErroAPI {
	var payload struct {
		Message string `json:"message"`
		Title   string `json:"title"`
		Detail  string `json:"detail"`
	}
	mensagem := ""
	if err := json.Unmarshal(corpo, &payload); err == nil {
		switch {
		case payload.Message != "":
			mensagem = payload.Message
		case payload.Detail != "":
			mensagem = payload.Detail
		case payload.Title != "":
			mensagem = payload.Title
		}
	}
	return &ErroAPI{
		StatusCode: status,
		Tipo:       classificaStatus(status),
		Mensagem:   mensagem,
	}
}
