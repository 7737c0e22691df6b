// Package config carrega a configuração do serviço (arquivo, variáveis de
// ambiente e padrões) e avisa os interessados quando o arquivo muda.
package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/LuisEduardoPedra/analisePonto/internal/core/blitz"
	"github.com/LuisEduardoPedra/analisePonto/internal/core/classificacao"
	"github.com/LuisEduardoPedra/analisePonto/internal/core/extracao"
)

type Config struct {
	Servidor  ServidorConfig  `mapstructure:"servidor"`
	Log       LogConfig       `mapstructure:"log"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Firestore FirestoreConfig `mapstructure:"firestore"`
	Blitz     BlitzConfig     `mapstructure:"blitz"`
}

type ServidorConfig struct {
	Porta             string   `mapstructure:"porta"`
	OrigensPermitidas []string `mapstructure:"origens_permitidas"`
	LimiteUploadMB    int64    `mapstructure:"limite_upload_mb"`
}

type LogConfig struct {
	Nivel   string `mapstructure:"nivel"`
	Formato string `mapstructure:"formato"`
}

type AuthConfig struct {
	JWTSecret       string `mapstructure:"jwt_secret"`
	ExpiracaoHoras  int    `mapstructure:"expiracao_horas"`
	ColecaoUsuarios string `mapstructure:"colecao_usuarios"`
	Permissao       string `mapstructure:"permissao"`
}

// FirestoreConfig: Database vazio ou "(default)" usa o banco padrão do
// projeto via Firebase.
type FirestoreConfig struct {
	ProjectID   string `mapstructure:"project_id"`
	Database    string `mapstructure:"database"`
	Credenciais string `mapstructure:"credenciais"`
}

type BlitzConfig struct {
	Temas                []string               `mapstructure:"temas"`
	LimiarSimilaridade   float64                `mapstructure:"limiar_similaridade"`
	RemoverAcentos       bool                   `mapstructure:"remover_acentos"`
	InicioJustificativas []string               `mapstructure:"inicio_justificativas"`
	FimJustificativas    []string               `mapstructure:"fim_justificativas"`
	CamposCabecalho      []CampoCabecalhoConfig `mapstructure:"campos_cabecalho"`
	PreencherPrevisto    bool                   `mapstructure:"preencher_previsto"`
	MaxPaginas           int                    `mapstructure:"max_paginas"`
	Paralelismo          int                    `mapstructure:"paralelismo"`
}

type CampoCabecalhoConfig struct {
	Campo        string   `mapstructure:"campo"`
	Marcador     string   `mapstructure:"marcador"`
	Terminadores []string `mapstructure:"terminadores"`
}

// Manager guarda a configuração atual e recarrega quando o arquivo muda.
type Manager struct {
	v *viper.Viper

	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager lê a configuração. cfgFile vazio procura config.yaml em "." e
// em $HOME/.analise-ponto; a ausência do arquivo não é erro.
func NewManager(cfgFile string) (*Manager, error) {
	m := &Manager{v: viper.New()}
	if err := m.initViper(cfgFile); err != nil {
		return nil, err
	}

	cfg, err := m.load()
	if err != nil {
		return nil, err
	}
	m.config = cfg
	return m, nil
}

func (m *Manager) initViper(cfgFile string) error {
	v := m.v
	definirPadroes(v)

	// PONTO_BLITZ_MAX_PAGINAS, PONTO_LOG_NIVEL...
	v.SetEnvPrefix("PONTO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Nomes antigos do deploy continuam valendo.
	if err := v.BindEnv("servidor.porta", "PONTO_SERVIDOR_PORTA", "PORT"); err != nil {
		return err
	}
	if err := v.BindEnv("auth.jwt_secret", "PONTO_AUTH_JWT_SECRET", "JWT_SECRET"); err != nil {
		return err
	}
	if err := v.BindEnv("firestore.project_id", "PONTO_FIRESTORE_PROJECT_ID", "GOOGLE_CLOUD_PROJECT"); err != nil {
		return err
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.analise-ponto")
	}

	if err := v.ReadInConfig(); err != nil {
		var naoEncontrado viper.ConfigFileNotFoundError
		if !errors.As(err, &naoEncontrado) {
			return fmt.Errorf("erro ao ler arquivo de configuração: %w", err)
		}
	}
	return nil
}

func (m *Manager) load() (*Config, error) {
	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("erro ao interpretar configuração: %w", err)
	}
	if err := cfg.Validar(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Get devolve a configuração atual.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Arquivo devolve o caminho do arquivo lido, ou "" quando só há padrões.
func (m *Manager) Arquivo() string {
	return m.v.ConfigFileUsed()
}

// OnChange registra uma função chamada a cada recarga válida.
func (m *Manager) OnChange(fn func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

// WatchConfig recarrega a configuração quando o arquivo muda. Uma recarga
// inválida é registrada e descartada; a configuração anterior continua.
func (m *Manager) WatchConfig() {
	m.v.OnConfigChange(func(e fsnotify.Event) {
		m.recarregar(e.Name)
	})
	m.v.WatchConfig()
}

func (m *Manager) recarregar(origem string) {
	cfg, err := m.load()
	if err != nil {
		zap.L().Warn("configuração recarregada é inválida, mantendo a anterior",
			zap.String("arquivo", origem), zap.Error(err))
		return
	}

	m.mu.Lock()
	m.config = cfg
	callbacks := make([]func(*Config), len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.Unlock()

	zap.L().Info("configuração recarregada", zap.String("arquivo", origem))
	for _, fn := range callbacks {
		fn(cfg)
	}
}

// Validar rejeita valores que deixariam o processamento sem sentido.
func (c *Config) Validar() error {
	b := c.Blitz
	if b.LimiarSimilaridade <= 0 || b.LimiarSimilaridade > 1 {
		return fmt.Errorf("blitz.limiar_similaridade deve ser maior que 0 e no máximo 1, recebido %v", b.LimiarSimilaridade)
	}
	if b.MaxPaginas < 0 {
		return fmt.Errorf("blitz.max_paginas não pode ser negativo")
	}
	for _, campo := range b.CamposCabecalho {
		switch campo.Campo {
		case extracao.CampoNome, extracao.CampoCPF, extracao.CampoMatricula, extracao.CampoCargo, extracao.CampoCentroCusto:
		default:
			return fmt.Errorf("blitz.campos_cabecalho: campo desconhecido %q", campo.Campo)
		}
		if strings.TrimSpace(campo.Marcador) == "" {
			return fmt.Errorf("blitz.campos_cabecalho: campo %q sem marcador", campo.Campo)
		}
	}
	return nil
}

// OpcoesBlitz converte a seção blitz nas opções do serviço de processamento.
func (c *Config) OpcoesBlitz() blitz.Opcoes {
	b := c.Blitz
	campos := make([]extracao.CampoCabecalho, 0, len(b.CamposCabecalho))
	for _, cc := range b.CamposCabecalho {
		campos = append(campos, extracao.CampoCabecalho{
			Campo:        cc.Campo,
			Marcador:     cc.Marcador,
			Terminadores: cc.Terminadores,
		})
	}
	return blitz.Opcoes{
		Temas: extracao.OpcoesTemas{
			Temas:                b.Temas,
			Limiar:               b.LimiarSimilaridade,
			RemoverAcentos:       b.RemoverAcentos,
			InicioJustificativas: b.InicioJustificativas,
			FimJustificativas:    b.FimJustificativas,
		},
		CamposCabecalho: campos,
		Classificacao:   classificacao.Opcoes{PreencherPrevisto: b.PreencherPrevisto},
		MaxPaginas:      b.MaxPaginas,
		Paralelismo:     b.Paralelismo,
	}
}
