package cobranca

import (
	"fmt"
	"unicode/utf8"

	"github.com/boletohub/interboleto/internal/domain"
)

// Tamanho máximo de cada linha do canhoto.
const tamanhoLinhaMensagem = 78

// Mensagem é o texto mostrado no canhoto do boleto. Use para avisar o
// pagador de multas, juros e prazos. Todas as linhas são opcionais.
type Mensagem struct {
	Linha1 string `json:"linha1"`
	Linha2 string `json:"linha2"`
	Linha3 string `json:"linha3"`
	Linha4 string `json:"linha4"`
	Linha5 string `json:"linha5"`
}

// NovaMensagem valida as cinco linhas (até 78 caracteres cada).
func NovaMensagem(linhas ...string) (Mensagem, error) {
	if len(linhas) > 5 {
		return Mensagem{}, fmt.Errorf("%w: mensagem aceita no máximo 5 linhas, vieram %d", domain.ErrEmissaoInvalida, len(linhas))
	}
	var m Mensagem
	destinos := []*string{&m.Linha1, &m.Linha2, &m.Linha3, &m.Linha4, &m.Linha5}
	for i, l := range linhas {
		if utf8.RuneCountInString(l) > tamanhoLinhaMensagem {
			return Mensagem{}, fmt.Errorf("%w: linha %d da mensagem excede %d caracteres", domain.ErrEmissaoInvalida, i+1, tamanhoLinhaMensagem)
		}
		*destinos[i] = l
	}
	return m, nil
}

// MensagemVazia devolve o canhoto sem texto.
func MensagemVazia() Mensagem { return Mensagem{} }

// Vazia informa se nenhuma linha foi preenchida.
func (m Mensagem) Vazia() bool {
	return m == Mensagem{}
}
