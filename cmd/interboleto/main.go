// Comando interboleto: interface de linha de comando fina sobre o cliente
// da API de cobrança do Banco Inter. Sem lógica de negócio aqui; tudo vive
// em internal/.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/boletohub/interboleto/internal/application/dto"
	"github.com/boletohub/interboleto/internal/domain/cobranca"
	"github.com/boletohub/interboleto/internal/infrastructure/inter"
	"github.com/boletohub/interboleto/pkg/config"
	"github.com/boletohub/interboleto/pkg/logger"
)

func main() {
	// Credenciais e certificados podem vir de um .env local.
	_ = godotenv.Load()

	if err := novoComandoRaiz().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "erro:", err)
		os.Exit(1)
	}
}

func novoComandoRaiz() *cobra.Command {
	raiz := &cobra.Command{
		Use:           "interboleto",
		Short:         "Emissão, consulta e cancelamento de boletos na API do Banco Inter",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	raiz.AddCommand(
		comandoEmitir(),
		comandoDetalhe(),
		comandoListar(),
		comandoPDF(),
		comandoCancelar(),
	)
	return raiz
}

// novoClient carrega config, logger e o cliente mTLS, para uso nos RunE.
func novoClient() (*inter.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
	return inter.NovoClient(cfg.Inter, log)
}

func comandoEmitir() *cobra.Command {
	return &cobra.Command{
		Use:   "emitir <emissao.json>",
		Short: "Emite um boleto a partir de um arquivo JSON de parâmetros",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conteudo, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var params cobranca.ParamsEmissao
			if err := json.Unmarshal(conteudo, &params); err != nil {
				return fmt.Errorf("ler parâmetros de emissão: %w", err)
			}
			// Passa os dados brutos pelos construtores validadores.
			if params.Pagador, err = cobranca.NovoPagador(params.Pagador); err != nil {
				return err
			}
			if params.Beneficiario != nil {
				b, err := cobranca.NovoBeneficiario(*params.Beneficiario)
				if err != nil {
					return err
				}
				params.Beneficiario = &b
			}
			emissao, err := cobranca.NovaEmissao(params)
			if err != nil {
				return err
			}

			client, err := novoClient()
			if err != nil {
				return err
			}
			ctx, cancel := contexto()
			defer cancel()
			resposta, err := client.Emitir(ctx, emissao)
			if err != nil {
				return err
			}
			return imprimeJSON(resposta)
		},
	}
}

func comandoDetalhe() *cobra.Command {
	return &cobra.Command{
		Use:   "detalhe <nossoNumero>",
		Short: "Consulta detalhada de um boleto (D+0, direto na CIP)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := novoClient()
			if err != nil {
				return err
			}
			ctx, cancel := contexto()
			defer cancel()
			detalhe, err := client.ConsultarDetalhe(ctx, args[0])
			if err != nil {
				return err
			}
			return imprimeJSON(detalhe)
		},
	}
}

func comandoListar() *cobra.Command {
	var inicial, final string
	var pagina int
	cmd := &cobra.Command{
		Use:   "listar",
		Short: "Lista boletos por período de vencimento (D+1)",
		RunE: func(cmd *cobra.Command, args []string) error {
			dataInicial, err := cobranca.ParseData(inicial)
			if err != nil {
				return err
			}
			dataFinal, err := cobranca.ParseData(final)
			if err != nil {
				return err
			}

			client, err := novoClient()
			if err != nil {
				return err
			}
			ctx, cancel := contexto()
			defer cancel()
			lista, err := client.ConsultarLista(ctx, inter.FiltroLista{
				DataInicial: dataInicial,
				DataFinal:   dataFinal,
				PaginaAtual: pagina,
			})
			if err != nil {
				return err
			}
			imprimeResumoLista(lista)
			return nil
		},
	}
	cmd.Flags().StringVar(&inicial, "inicial", "", "data inicial (AAAA-MM-DD)")
	cmd.Flags().StringVar(&final, "final", "", "data final (AAAA-MM-DD)")
	cmd.Flags().IntVar(&pagina, "pagina", 0, "página da consulta")
	_ = cmd.MarkFlagRequired("inicial")
	_ = cmd.MarkFlagRequired("final")
	return cmd
}

func comandoPDF() *cobra.Command {
	var saida string
	cmd := &cobra.Command{
		Use:   "pdf <nossoNumero>",
		Short: "Baixa o PDF de um boleto",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := novoClient()
			if err != nil {
				return err
			}
			if saida == "" {
				saida = args[0] + ".pdf"
			}
			ctx, cancel := contexto()
			defer cancel()
			if err := client.PDFParaArquivo(ctx, args[0], saida); err != nil {
				return err
			}
			fmt.Println("salvo em", saida)
			return nil
		},
	}
	cmd.Flags().StringVarP(&saida, "saida", "o", "", "arquivo de destino (padrão <nossoNumero>.pdf)")
	return cmd
}

func comandoCancelar() *cobra.Command {
	var motivo string
	cmd := &cobra.Command{
		Use:   "cancelar <nossoNumero>",
		Short: "Cancela (baixa) um boleto",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := novoClient()
			if err != nil {
				return err
			}
			ctx, cancel := contexto()
			defer cancel()
			return client.Cancelar(ctx, args[0], inter.MotivoCancelamento(motivo))
		},
	}
	cmd.Flags().StringVar(&motivo, "motivo", string(inter.CanceladoAPedidoDoCliente),
		"motivo do cancelamento: ACERTOS, PAGODIRETOAOCLIENTE, SUBSTITUICAO ou APEDIDODOCLIENTE")
	return cmd
}

func contexto() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 90*time.Second)
}

func imprimeJSON(v any) error {
	saida, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(saida))
	return nil
}

func imprimeResumoLista(lista *dto.ListaBoletos) {
	fmt.Printf("página com %d de %d boletos\n", lista.NumberOfElements, lista.TotalElements)
	for _, b := range lista.Content {
		fmt.Printf("%s  %-15s  %-10s  venc. %s  R$ %s\n",
			b.NossoNumero, b.SeuNumero, b.Situacao, b.DataVencimento, b.ValorNominal)
	}
}
