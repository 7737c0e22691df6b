// internal/core/blitz/service.go
package blitz

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/LuisEduardoPedra/analisePonto/internal/core/classificacao"
	"github.com/LuisEduardoPedra/analisePonto/internal/core/extracao"
	"github.com/LuisEduardoPedra/analisePonto/internal/core/leitor"
	"github.com/LuisEduardoPedra/analisePonto/internal/core/relatorio"
	"github.com/LuisEduardoPedra/analisePonto/internal/domain"
)

var (
	ErrPDFSemTexto      = errors.New("o PDF não tem texto extraível (documento digitalizado?)")
	ErrPaginasExcedidas = errors.New("o PDF excede o número máximo de páginas")
	ErrEntradaInvalida  = errors.New("entrada inválida")
)

// Formatos de exportação aceitos por Exportar.
const (
	FormatoXLSX = "xlsx"
	FormatoCSV  = "csv"
)

// Opcoes reúne os vocabulários e limites do processamento. Podem ser
// trocadas em tempo de execução por AtualizarOpcoes.
type Opcoes struct {
	Temas           extracao.OpcoesTemas
	CamposCabecalho []extracao.CampoCabecalho
	Classificacao   classificacao.Opcoes
	MaxPaginas      int
	Paralelismo     int
}

// OpcoesPadrao devolve a configuração do layout Blitz.
func OpcoesPadrao() Opcoes {
	return Opcoes{
		Temas: extracao.OpcoesTemas{
			Temas:                extracao.TemasPadrao(),
			Limiar:               extracao.LimiarSimilaridadePadrao,
			InicioJustificativas: extracao.InicioJustificativasPadrao(),
			FimJustificativas:    extracao.FimJustificativasPadrao(),
		},
		CamposCabecalho: extracao.CamposCabecalhoPadrao(),
		Classificacao:   classificacao.Opcoes{PreencherPrevisto: true},
		MaxPaginas:      120,
	}
}

type Service interface {
	ProcessarPaginas(ctx context.Context, paginas []domain.Pagina) (*domain.ResultadoBlitz, error)
	ProcessarPDF(ctx context.Context, conteudo []byte) (*domain.ResultadoBlitz, error)
	Exportar(res *domain.ResultadoBlitz, formato string) ([]relatorio.Arquivo, error)
	AtualizarOpcoes(op Opcoes)
	Temas() []string
}

// configuracao é o estado derivado das opções, montado uma vez por
// atualização e lido sem cópia pelas goroutines de página.
type configuracao struct {
	op            Opcoes
	matcher       *extracao.MatcherTemas
	classificador *classificacao.Classificador
	paralelismo   int
}

type service struct {
	leitor leitor.Leitor

	mu  sync.RWMutex
	cfg *configuracao
}

func NewService(l leitor.Leitor, op Opcoes) Service {
	s := &service{leitor: l}
	s.AtualizarOpcoes(op)
	return s
}

func montarConfiguracao(op Opcoes) *configuracao {
	if len(op.CamposCabecalho) == 0 {
		op.CamposCabecalho = extracao.CamposCabecalhoPadrao()
	}
	paralelismo := op.Paralelismo
	if paralelismo <= 0 {
		paralelismo = runtime.GOMAXPROCS(0)
	}
	return &configuracao{
		op:            op,
		matcher:       extracao.NovoMatcherTemas(op.Temas),
		classificador: classificacao.NovoClassificador(op.Classificacao),
		paralelismo:   paralelismo,
	}
}

func (s *service) AtualizarOpcoes(op Opcoes) {
	cfg := montarConfiguracao(op)
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()

	zap.L().Info("opções de processamento atualizadas",
		zap.Int("temas", len(cfg.matcher.Temas())),
		zap.Strings("etapas", cfg.classificador.Etapas()),
		zap.Int("paralelismo", cfg.paralelismo),
	)
}

func (s *service) configuracao() *configuracao {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *service) Temas() []string {
	return s.configuracao().matcher.Temas()
}

type resultadoPagina struct {
	resumo    domain.ResumoFuncionario
	registros []domain.RegistroDiario
}

func (s *service) ProcessarPaginas(ctx context.Context, paginas []domain.Pagina) (*domain.ResultadoBlitz, error) {
	cfg := s.configuracao()
	inicio := time.Now()

	parciais := make([]*resultadoPagina, len(paginas))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.paralelismo)
	for i, p := range paginas {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if p.Numero == 0 {
				p.Numero = i + 1
			}
			parciais[i] = cfg.processarPagina(p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("processamento interrompido: %w", err)
	}

	res := &domain.ResultadoBlitz{
		Funcionarios: make([]domain.ResumoFuncionario, 0, len(paginas)),
		Registros:    make([]domain.RegistroDiario, 0),
		Temas:        append([]string(nil), cfg.matcher.Temas()...),
	}
	for _, pp := range parciais {
		if pp == nil {
			continue
		}
		res.Funcionarios = append(res.Funcionarios, pp.resumo)
		res.Registros = append(res.Registros, pp.registros...)
	}

	// A contagem por situação precisa de todas as páginas.
	cfg.classificador.ClassificarTodos(res.Registros)

	zap.L().Info("documento processado",
		zap.Int("paginas", len(paginas)),
		zap.Int("funcionarios", len(res.Funcionarios)),
		zap.Int("registros", len(res.Registros)),
		zap.Duration("duracao", time.Since(inicio)),
	)
	return res, nil
}

// processarPagina devolve nil para páginas sem texto nem tabela.
func (cfg *configuracao) processarPagina(p domain.Pagina) *resultadoPagina {
	if len(p.Linhas) == 0 && len(p.Tabela) == 0 {
		zap.L().Debug("página vazia ignorada", zap.Int("pagina", p.Numero))
		return nil
	}

	id := extracao.ExtrairCabecalho(p.Linhas, cfg.op.CamposCabecalho)
	totais := extracao.ExtrairTotais(p.Tabela)
	extracao.AjustarExtra(&totais)

	resumo := domain.ResumoFuncionario{
		Pagina:     p.Numero,
		Identidade: id,
		Totais:     totais,
		Temas:      cfg.matcher.ContarJustificativas(p.Linhas),
	}
	resumo.AtualizarStatus()

	registros := extracao.MontarRegistros(p.Numero, p.Tabela, id)
	zap.L().Debug("página extraída",
		zap.Int("pagina", p.Numero),
		zap.String("funcionario", domain.Valor(id.Nome)),
		zap.Int("registros", len(registros)),
	)
	return &resultadoPagina{resumo: resumo, registros: registros}
}

func (s *service) ProcessarPDF(ctx context.Context, conteudo []byte) (*domain.ResultadoBlitz, error) {
	if len(conteudo) == 0 {
		return nil, fmt.Errorf("%w: arquivo PDF vazio", ErrEntradaInvalida)
	}

	cfg := s.configuracao()
	total, err := s.leitor.ContarPaginas(bytes.NewReader(conteudo))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntradaInvalida, err)
	}
	if cfg.op.MaxPaginas > 0 && total > cfg.op.MaxPaginas {
		return nil, fmt.Errorf("%w: %d páginas, máximo %d", ErrPaginasExcedidas, total, cfg.op.MaxPaginas)
	}

	paginas, err := s.leitor.ExtrairPaginas(ctx, conteudo)
	if err != nil {
		return nil, fmt.Errorf("falha ao extrair páginas do PDF: %w", err)
	}
	if !temTexto(paginas) {
		return nil, ErrPDFSemTexto
	}
	return s.ProcessarPaginas(ctx, paginas)
}

func temTexto(paginas []domain.Pagina) bool {
	for _, p := range paginas {
		if len(p.Linhas) > 0 {
			return true
		}
	}
	return false
}

// Exportar gera um arquivo por tabela (consolidado, detalhe e
// justificativas) no formato pedido.
func (s *service) Exportar(res *domain.ResultadoBlitz, formato string) ([]relatorio.Arquivo, error) {
	tabelas := []relatorio.Tabela{
		relatorio.Consolidado(res),
		relatorio.Detalhe(res),
		relatorio.Justificativas(res),
	}
	switch formato {
	case FormatoXLSX, "":
		return relatorio.ExportarPlanilhas(tabelas...)
	case FormatoCSV:
		return relatorio.ExportarCSV(tabelas...)
	default:
		return nil, fmt.Errorf("%w: formato de exportação desconhecido %q", ErrEntradaInvalida, formato)
	}
}
