package config

import (
	"github.com/spf13/viper"

	"github.com/LuisEduardoPedra/analisePonto/internal/core/blitz"
)

// DefaultConfig devolve a configuração usada quando nada foi informado.
func DefaultConfig() *Config {
	op := blitz.OpcoesPadrao()

	campos := make([]CampoCabecalhoConfig, 0, len(op.CamposCabecalho))
	for _, c := range op.CamposCabecalho {
		campos = append(campos, CampoCabecalhoConfig{
			Campo:        c.Campo,
			Marcador:     c.Marcador,
			Terminadores: c.Terminadores,
		})
	}

	return &Config{
		Servidor: ServidorConfig{
			Porta:             "8080",
			OrigensPermitidas: []string{"*"},
			LimiteUploadMB:    32,
		},
		Log: LogConfig{
			Nivel:   "info",
			Formato: "json",
		},
		Auth: AuthConfig{
			ExpiracaoHoras:  24,
			ColecaoUsuarios: "users",
			Permissao:       "",
		},
		Firestore: FirestoreConfig{
			ProjectID: "analise-ponto-db",
			Database:  "analise-ponto-db",
		},
		Blitz: BlitzConfig{
			Temas:                op.Temas.Temas,
			LimiarSimilaridade:   op.Temas.Limiar,
			InicioJustificativas: op.Temas.InicioJustificativas,
			FimJustificativas:    op.Temas.FimJustificativas,
			CamposCabecalho:      campos,
			PreencherPrevisto:    op.Classificacao.PreencherPrevisto,
			MaxPaginas:           op.MaxPaginas,
		},
	}
}

func definirPadroes(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("servidor.porta", d.Servidor.Porta)
	v.SetDefault("servidor.origens_permitidas", d.Servidor.OrigensPermitidas)
	v.SetDefault("servidor.limite_upload_mb", d.Servidor.LimiteUploadMB)

	v.SetDefault("log.nivel", d.Log.Nivel)
	v.SetDefault("log.formato", d.Log.Formato)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.expiracao_horas", d.Auth.ExpiracaoHoras)
	v.SetDefault("auth.colecao_usuarios", d.Auth.ColecaoUsuarios)
	v.SetDefault("auth.permissao", d.Auth.Permissao)

	v.SetDefault("firestore.project_id", d.Firestore.ProjectID)
	v.SetDefault("firestore.database", d.Firestore.Database)
	v.SetDefault("firestore.credenciais", "")

	v.SetDefault("blitz.temas", d.Blitz.Temas)
	v.SetDefault("blitz.limiar_similaridade", d.Blitz.LimiarSimilaridade)
	v.SetDefault("blitz.remover_acentos", d.Blitz.RemoverAcentos)
	v.SetDefault("blitz.inicio_justificativas", d.Blitz.InicioJustificativas)
	v.SetDefault("blitz.fim_justificativas", d.Blitz.FimJustificativas)
	v.SetDefault("blitz.campos_cabecalho", d.Blitz.CamposCabecalho)
	v.SetDefault("blitz.preencher_previsto", d.Blitz.PreencherPrevisto)
	v.SetDefault("blitz.max_paginas", d.Blitz.MaxPaginas)
	v.SetDefault("blitz.paralelismo", d.Blitz.Paralelismo)
}
