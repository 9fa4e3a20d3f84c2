package domain

import "errors"

// Erros de domínio (sem dependências externas). Todos representam falhas de
// validação local, levantadas antes de qualquer chamada de rede; nunca são
// objeto de retry.
var (
	// ErrEncargoInvalido: desconto, mora ou multa mal construído.
	ErrEncargoInvalido = errors.New("encargo inválido")
	// ErrPessoaInvalida: pagador ou beneficiário com documento, CEP ou
	// campos de texto fora das regras da API.
	ErrPessoaInvalida = errors.New("dados de pessoa inválidos")
	// ErrEmissaoInvalida: violação de regra cruzada na montagem da emissão.
	ErrEmissaoInvalida = errors.New("dados de emissão inválidos")
)
