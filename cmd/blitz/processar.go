package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LuisEduardoPedra/analisePonto/internal/core/blitz"
	"github.com/LuisEduardoPedra/analisePonto/internal/core/leitor"
	"github.com/LuisEduardoPedra/analisePonto/internal/core/relatorio"
	"github.com/LuisEduardoPedra/analisePonto/internal/domain"
)

var (
	saida   string
	formato string
	zipar   bool
)

var processarCmd = &cobra.Command{
	Use:   "processar <arquivo.pdf|paginas.json>",
	Short: "Processa um relatório e grava consolidado e detalhe",
	Long: `Processa um relatório de apontamentos e grava as tabelas de saída.

Arquivos .json devem conter as páginas já extraídas: uma lista de
{"numero", "linhas", "tabela"} ou {"paginas": [...]}. Qualquer outro arquivo
é lido como PDF.

Exemplos:
  blitz processar ponto_marco.pdf
  blitz processar ponto_marco.pdf --saida relatorios --formato csv
  blitz processar paginas.json --zip`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := manager.Get()
		svc := blitz.NewService(leitor.NewLeitor(), cfg.OpcoesBlitz())

		res, err := processarArquivo(cmd.Context(), svc, args[0])
		if err != nil {
			return err
		}

		arquivos, err := svc.Exportar(res, formato)
		if err != nil {
			return err
		}
		if zipar {
			conteudo, err := relatorio.EmpacotarZip(arquivos...)
			if err != nil {
				return err
			}
			arquivos = []relatorio.Arquivo{{Nome: "blitz.zip", Conteudo: conteudo}}
		}

		gravados, err := gravarArquivos(saida, arquivos)
		if err != nil {
			return err
		}
		for _, g := range gravados {
			fmt.Fprintln(cmd.OutOrStdout(), g)
		}
		return nil
	},
}

func init() {
	processarCmd.Flags().StringVarP(&saida, "saida", "s", ".", "diretório de saída")
	processarCmd.Flags().StringVarP(&formato, "formato", "f", blitz.FormatoXLSX, "formato das tabelas: xlsx ou csv")
	processarCmd.Flags().BoolVar(&zipar, "zip", false, "junta os arquivos em blitz.zip")
}

func processarArquivo(ctx context.Context, svc blitz.Service, caminho string) (*domain.ResultadoBlitz, error) {
	if strings.EqualFold(filepath.Ext(caminho), ".json") {
		f, err := os.Open(caminho)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		paginas, err := blitz.DecodificarPaginas(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", caminho, err)
		}
		return svc.ProcessarPaginas(ctx, paginas)
	}

	conteudo, err := os.ReadFile(caminho)
	if err != nil {
		return nil, err
	}
	zap.L().Info("lendo PDF", zap.String("arquivo", caminho), zap.Int("bytes", len(conteudo)))
	return svc.ProcessarPDF(ctx, conteudo)
}

func gravarArquivos(dir string, arquivos []relatorio.Arquivo) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("erro ao criar diretório de saída: %w", err)
	}
	var gravados []string
	for _, a := range arquivos {
		caminho := filepath.Join(dir, a.Nome)
		if err := os.WriteFile(caminho, a.Conteudo, 0o644); err != nil {
			return nil, fmt.Errorf("erro ao gravar %s: %w", caminho, err)
		}
		gravados = append(gravados, caminho)
	}
	return gravados, nil
}
