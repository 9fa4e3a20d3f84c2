package cobranca

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/boletohub/interboleto/internal/domain"
	"github.com/boletohub/interboleto/pkg/sanitize"
)

// TipoPessoa classe do documento: FISICA (CPF, 11 dígitos) ou
// JURIDICA (CNPJ, 14 dígitos).
type TipoPessoa string

const (
	PessoaFisica   TipoPessoa = "FISICA"
	PessoaJuridica TipoPessoa = "JURIDICA"
)

// Comprimentos de documento por tipo de pessoa.
const (
	tamanhoCPF  = 11
	tamanhoCNPJ = 14
	tamanhoCEP  = 8
)

// normalizaDocumento remove a pontuação do CPF/CNPJ e confere o comprimento
// esperado para o tipo de pessoa.
func normalizaDocumento(quem string, tipo TipoPessoa, doc string) (string, error) {
	doc = sanitize.SomenteDigitos(doc)
	switch tipo {
	case PessoaFisica:
		if len(doc) != tamanhoCPF {
			return "", fmt.Errorf("%w: %s: CPF deve ter %d dígitos, veio com %d", domain.ErrPessoaInvalida, quem, tamanhoCPF, len(doc))
		}
	case PessoaJuridica:
		if len(doc) != tamanhoCNPJ {
			return "", fmt.Errorf("%w: %s: CNPJ deve ter %d dígitos, veio com %d", domain.ErrPessoaInvalida, quem, tamanhoCNPJ, len(doc))
		}
	default:
		return "", fmt.Errorf("%w: %s: tipo de pessoa desconhecido %q", domain.ErrPessoaInvalida, quem, string(tipo))
	}
	return doc, nil
}

// normalizaCEP remove a pontuação do CEP e confere os 8 dígitos.
func normalizaCEP(quem, cep string) (string, error) {
	cep = sanitize.SomenteDigitos(cep)
	if len(cep) != tamanhoCEP {
		return "", fmt.Errorf("%w: %s: CEP deve ter %d dígitos, veio com %d", domain.ErrPessoaInvalida, quem, tamanhoCEP, len(cep))
	}
	return cep, nil
}

// validaTexto confere os limites em caracteres, não em bytes: "São João"
// tem 8 caracteres para o contrato, ainda que ocupe mais bytes em UTF-8.
func validaTexto(quem, campo, valor string, min, max int) error {
	n := utf8.RuneCountInString(valor)
	if n < min {
		return fmt.Errorf("%w: %s: campo %s é obrigatório", domain.ErrPessoaInvalida, quem, campo)
	}
	if n > max {
		return fmt.Errorf("%w: %s: campo %s excede %d caracteres", domain.ErrPessoaInvalida, quem, campo, max)
	}
	return nil
}

func validaNome(quem, nome string) error {
	if err := validaTexto(quem, "nome", nome, 1, 100); err != nil {
		return err
	}
	// A API rejeita silenciosamente nomes com '&'.
	if strings.ContainsRune(nome, '&') {
		return fmt.Errorf("%w: %s: campo nome não pode conter '&'", domain.ErrPessoaInvalida, quem)
	}
	return nil
}

// ── Pagador ───────────────────────────────────────────────────────────────────

// Pagador é quem paga o boleto. Preencha os campos e construa a versão
// validada com NovoPagador; todo texto livre é transliterado para ASCII
// porque a API trata mal bytes fora da tabela.
type Pagador struct {
	CnpjCpf     string     `json:"cnpjCpf"`
	TipoPessoa  TipoPessoa `json:"tipoPessoa"`
	Nome        string     `json:"nome"`
	Endereco    string     `json:"endereco"`
	Numero      string     `json:"numero"`
	Complemento string     `json:"complemento"`
	Bairro      string     `json:"bairro"`
	Cidade      string     `json:"cidade"`
	UF          string     `json:"uf"`
	CEP         string     `json:"cep"`
	Email       string     `json:"email"`
	DDD         string     `json:"ddd"`
	Telefone    string     `json:"telefone"`
}

// NovoPagador valida e normaliza os dados do pagador, devolvendo a cópia
// pronta para serialização. A ordem é a do contrato: tipo de pessoa e
// documento, CEP, limites de texto e por fim a transliteração.
func NovoPagador(p Pagador) (Pagador, error) {
	const quem = "pagador"

	doc, err := normalizaDocumento(quem, p.TipoPessoa, p.CnpjCpf)
	if err != nil {
		return Pagador{}, err
	}
	p.CnpjCpf = doc

	cep, err := normalizaCEP(quem, p.CEP)
	if err != nil {
		return Pagador{}, err
	}
	p.CEP = cep

	if err := validaNome(quem, p.Nome); err != nil {
		return Pagador{}, err
	}
	if err := validaTexto(quem, "endereco", p.Endereco, 1, 90); err != nil {
		return Pagador{}, err
	}
	if err := validaTexto(quem, "numero", p.Numero, 1, 10); err != nil {
		return Pagador{}, err
	}
	if err := validaTexto(quem, "bairro", p.Bairro, 1, 60); err != nil {
		return Pagador{}, err
	}
	if err := validaTexto(quem, "cidade", p.Cidade, 1, 60); err != nil {
		return Pagador{}, err
	}
	if utf8.RuneCountInString(p.UF) != 2 {
		return Pagador{}, fmt.Errorf("%w: %s: campo uf deve ter exatamente 2 caracteres", domain.ErrPessoaInvalida, quem)
	}
	if err := validaTexto(quem, "complemento", p.Complemento, 0, 30); err != nil {
		return Pagador{}, err
	}
	if err := validaTexto(quem, "email", p.Email, 0, 50); err != nil {
		return Pagador{}, err
	}
	if p.DDD != "" && utf8.RuneCountInString(p.DDD) != 2 {
		return Pagador{}, fmt.Errorf("%w: %s: campo ddd deve ter 2 caracteres ou ficar vazio", domain.ErrPessoaInvalida, quem)
	}
	if err := validaTexto(quem, "telefone", p.Telefone, 0, 9); err != nil {
		return Pagador{}, err
	}

	p.Nome = sanitize.ParaASCII(p.Nome)
	p.Endereco = sanitize.ParaASCII(p.Endereco)
	p.Numero = sanitize.ParaASCII(p.Numero)
	p.Complemento = sanitize.ParaASCII(p.Complemento)
	p.Bairro = sanitize.ParaASCII(p.Bairro)
	p.Cidade = sanitize.ParaASCII(p.Cidade)
	p.UF = sanitize.ParaASCII(p.UF)
	p.Email = sanitize.ParaASCII(p.Email)

	return p, nil
}

// ── Beneficiário ──────────────────────────────────────────────────────────────

// Beneficiario é o favorecido do título. Note que o campo de documento no
// contrato é cpfCnpj, invertido em relação ao cnpjCpf do pagador; a
// inconsistência é da própria API e precisa ser preservada.
type Beneficiario struct {
	CpfCnpj    string     `json:"cpfCnpj"`
	TipoPessoa TipoPessoa `json:"tipoPessoa"`
	Nome       string     `json:"nome"`
	Endereco   string     `json:"endereco"`
	Bairro     string     `json:"bairro"`
	Cidade     string     `json:"cidade"`
	UF         string     `json:"uf"`
	CEP        string     `json:"cep"`
}

// NovoBeneficiario valida e normaliza os dados do beneficiário.
func NovoBeneficiario(b Beneficiario) (Beneficiario, error) {
	const quem = "beneficiario"

	doc, err := normalizaDocumento(quem, b.TipoPessoa, b.CpfCnpj)
	if err != nil {
		return Beneficiario{}, err
	}
	b.CpfCnpj = doc

	cep, err := normalizaCEP(quem, b.CEP)
	if err != nil {
		return Beneficiario{}, err
	}
	b.CEP = cep

	if err := validaNome(quem, b.Nome); err != nil {
		return Beneficiario{}, err
	}
	if err := validaTexto(quem, "endereco", b.Endereco, 1, 100); err != nil {
		return Beneficiario{}, err
	}
	if err := validaTexto(quem, "bairro", b.Bairro, 1, 60); err != nil {
		return Beneficiario{}, err
	}
	if err := validaTexto(quem, "cidade", b.Cidade, 1, 60); err != nil {
		return Beneficiario{}, err
	}
	if utf8.RuneCountInString(b.UF) != 2 {
		return Beneficiario{}, fmt.Errorf("%w: %s: campo uf deve ter exatamente 2 caracteres", domain.ErrPessoaInvalida, quem)
	}

	b.Nome = sanitize.ParaASCII(b.Nome)
	b.Endereco = sanitize.ParaASCII(b.Endereco)
	b.Bairro = sanitize.ParaASCII(b.Bairro)
	b.Cidade = sanitize.ParaASCII(b.Cidade)
	b.UF = sanitize.ParaASCII(b.UF)

	return b, nil
}
