package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/LuisEduardoPedra/analisePonto/internal/api/responses"
	"github.com/LuisEduardoPedra/analisePonto/internal/config"
)

var (
	cfgFile  string
	nivelLog string
	manager  *config.Manager
)

var rootCmd = &cobra.Command{
	Use:   "blitz",
	Short: "Análise de apontamentos de ponto da Blitz",
	Long: `Lê o relatório de apontamentos da Blitz (PDF, ou as páginas já extraídas
em JSON), classifica cada dia de cada funcionário e gera o consolidado e o
detalhe em planilha ou CSV.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		m, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		manager = m

		cfg := m.Get()
		nivel := cfg.Log.Nivel
		if nivelLog != "" {
			nivel = nivelLog
		}
		// No terminal o log sai legível, não em JSON.
		_, err = responses.InitLogger(nivel, "console")
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "arquivo de configuração (padrão: ./config.yaml ou ~/.analise-ponto/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&nivelLog, "log", "", "nível de log: debug, info, warn ou error",
	)

	rootCmd.AddCommand(processarCmd)
}
