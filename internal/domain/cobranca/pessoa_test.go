package cobranca_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boletohub/interboleto/internal/domain"
	"github.com/boletohub/interboleto/internal/domain/cobranca"
)

func pagadorValido() cobranca.Pagador {
	return cobranca.Pagador{
		CnpjCpf:    "123.456.789-09",
		TipoPessoa: cobranca.PessoaFisica,
		Nome:       "Pessoa Ficticia da Silva",
		Endereco:   "Rua Fantasia",
		Numero:     "300",
		Bairro:     "Centro",
		Cidade:     "São Paulo",
		UF:         "SP",
		CEP:        "12345-678",
	}
}

func beneficiarioValido() cobranca.Beneficiario {
	return cobranca.Beneficiario{
		CpfCnpj:    "12.345.678/0001-12",
		TipoPessoa: cobranca.PessoaJuridica,
		Nome:       "Alguma Empresa LTDA",
		Endereco:   "Avenida Qualquer, 100",
		Bairro:     "Industrial",
		Cidade:     "Belo Horizonte",
		UF:         "MG",
		CEP:        "30123-456",
	}
}

func TestNovoPagador_NormalizaCPF(t *testing.T) {
	p, err := cobranca.NovoPagador(pagadorValido())
	require.NoError(t, err)
	assert.Equal(t, "12345678909", p.CnpjCpf)
	assert.Len(t, p.CnpjCpf, 11)
}

func TestNovoBeneficiario_NormalizaCNPJ(t *testing.T) {
	b, err := cobranca.NovoBeneficiario(beneficiarioValido())
	require.NoError(t, err)
	assert.Equal(t, "12345678000112", b.CpfCnpj)
	assert.Len(t, b.CpfCnpj, 14)
}

func TestNovoPagador_NormalizacaoIdempotente(t *testing.T) {
	primeira, err := cobranca.NovoPagador(pagadorValido())
	require.NoError(t, err)

	segunda, err := cobranca.NovoPagador(primeira)
	require.NoError(t, err)
	assert.Equal(t, primeira, segunda)
}

func TestNovoPagador_DocumentoComTamanhoErrado(t *testing.T) {
	casos := []struct {
		nome string
		tipo cobranca.TipoPessoa
		doc  string
	}{
		{"CPF curto", cobranca.PessoaFisica, "123.456.789"},
		{"CPF com 14 dígitos", cobranca.PessoaFisica, "12.345.678/0001-12"},
		{"CNPJ com 11 dígitos", cobranca.PessoaJuridica, "123.456.789-09"},
		{"tipo desconhecido", cobranca.TipoPessoa("ESTRANGEIRA"), "12345678909"},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			p := pagadorValido()
			p.TipoPessoa = c.tipo
			p.CnpjCpf = c.doc
			_, err := cobranca.NovoPagador(p)
			assert.ErrorIs(t, err, domain.ErrPessoaInvalida)
		})
	}
}

func TestNovoPagador_CEP(t *testing.T) {
	p := pagadorValido()
	p.CEP = "12345-678"
	validado, err := cobranca.NovoPagador(p)
	require.NoError(t, err)
	assert.Equal(t, "12345678", validado.CEP)

	p.CEP = "1234-567"
	_, err = cobranca.NovoPagador(p)
	require.ErrorIs(t, err, domain.ErrPessoaInvalida)
	assert.Contains(t, err.Error(), "CEP")
}

func TestNovoPagador_TransliteraParaASCII(t *testing.T) {
	p := pagadorValido()
	p.Nome = "José Conceição Araújo"
	p.Cidade = "São Paulo"
	p.Endereco = "Rua das Araucárias"

	validado, err := cobranca.NovoPagador(p)
	require.NoError(t, err)
	assert.Equal(t, "Jose Conceicao Araujo", validado.Nome)
	assert.Equal(t, "Sao Paulo", validado.Cidade)
	assert.Equal(t, "Rua das Araucarias", validado.Endereco)
}

func TestNovoPagador_NomeComEComercialFalha(t *testing.T) {
	p := pagadorValido()
	p.Nome = "Silva & Filhos"
	_, err := cobranca.NovoPagador(p)
	require.ErrorIs(t, err, domain.ErrPessoaInvalida)
	assert.Contains(t, err.Error(), "nome")
}

func TestNovoPagador_LimitesDeTexto(t *testing.T) {
	longo := func(n int) string { return strings.Repeat("a", n) }

	casos := []struct {
		nome    string
		mutacao func(*cobranca.Pagador)
		campo   string
	}{
		{"nome vazio", func(p *cobranca.Pagador) { p.Nome = "" }, "nome"},
		{"nome longo", func(p *cobranca.Pagador) { p.Nome = longo(101) }, "nome"},
		{"endereco longo", func(p *cobranca.Pagador) { p.Endereco = longo(91) }, "endereco"},
		{"numero longo", func(p *cobranca.Pagador) { p.Numero = longo(11) }, "numero"},
		{"bairro vazio", func(p *cobranca.Pagador) { p.Bairro = "" }, "bairro"},
		{"cidade longa", func(p *cobranca.Pagador) { p.Cidade = longo(61) }, "cidade"},
		{"uf de um caractere", func(p *cobranca.Pagador) { p.UF = "S" }, "uf"},
		{"uf de três caracteres", func(p *cobranca.Pagador) { p.UF = "SSP" }, "uf"},
		{"complemento longo", func(p *cobranca.Pagador) { p.Complemento = longo(31) }, "complemento"},
		{"email longo", func(p *cobranca.Pagador) { p.Email = longo(51) }, "email"},
		{"ddd de um dígito", func(p *cobranca.Pagador) { p.DDD = "1" }, "ddd"},
		{"telefone longo", func(p *cobranca.Pagador) { p.Telefone = longo(10) }, "telefone"},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			p := pagadorValido()
			c.mutacao(&p)
			_, err := cobranca.NovoPagador(p)
			require.ErrorIs(t, err, domain.ErrPessoaInvalida)
			assert.Contains(t, err.Error(), c.campo, "o erro deve nomear o campo ofensor")
		})
	}
}

func TestNovoPagador_LimitesContamCaracteresNaoBytes(t *testing.T) {
	// "ã" ocupa dois bytes em UTF-8; os limites do contrato são em
	// caracteres, então um nome acentuado perto do teto ainda é válido.
	p := pagadorValido()
	p.Nome = strings.Repeat("ã", 100)
	validado, err := cobranca.NovoPagador(p)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", 100), validado.Nome)

	p.Nome = strings.Repeat("ã", 101)
	_, err = cobranca.NovoPagador(p)
	require.ErrorIs(t, err, domain.ErrPessoaInvalida)
	assert.Contains(t, err.Error(), "nome")
}

func TestNovoPagador_OpcionaisNoLimite(t *testing.T) {
	p := pagadorValido()
	p.Complemento = "Apto 42"
	p.Email = "pagador@example.com"
	p.DDD = "11"
	p.Telefone = "987654321"

	validado, err := cobranca.NovoPagador(p)
	require.NoError(t, err)
	assert.Equal(t, "11", validado.DDD)
	assert.Equal(t, "987654321", validado.Telefone)
}

func TestNovoBeneficiario_LimitesDeTexto(t *testing.T) {
	b := beneficiarioValido()
	b.Endereco = strings.Repeat("a", 101)
	_, err := cobranca.NovoBeneficiario(b)
	require.ErrorIs(t, err, domain.ErrPessoaInvalida)
	assert.Contains(t, err.Error(), "endereco")
}
