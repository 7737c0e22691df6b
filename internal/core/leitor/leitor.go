// Package leitor extrai de um PDF Blitz as linhas de texto e a tabela de
// marcações de cada página.
//
// A geometria da tabela é aproximada: a linha de títulos imediatamente acima
// do primeiro dia fixa a posição X de cada coluna e os trechos das linhas
// seguintes caem na coluna cuja âncora está à esquerda deles.
package leitor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"go.uber.org/zap"

	"github.com/LuisEduardoPedra/analisePonto/internal/domain"
)

// Distâncias horizontais, em pontos, entre o fim de um trecho e o início do
// próximo.
const (
	folgaPalavra   = 1.5
	folgaCelula    = 8.0
	toleranciaEixo = 2.0
)

var reDataInicial = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}`)

// Trecho é um pedaço de texto posicionado na página.
type Trecho struct {
	X, W float64
	S    string
}

// LinhaPDF agrupa os trechos que estão na mesma altura.
type LinhaPDF struct {
	Y       float64
	Trechos []Trecho
}

type celula struct {
	X float64
	S string
}

// Leitor abre o PDF e entrega as páginas já no formato de entrada do
// processamento.
type Leitor interface {
	ContarPaginas(rs io.ReadSeeker) (int, error)
	ExtrairPaginas(ctx context.Context, conteudo []byte) ([]domain.Pagina, error)
}

type leitorPDF struct{}

// NewLeitor devolve o leitor baseado no texto por linha do PDF.
func NewLeitor() Leitor {
	return &leitorPDF{}
}

// ContarPaginas lê só a estrutura do documento, sem extrair texto.
func (l *leitorPDF) ContarPaginas(rs io.ReadSeeker) (int, error) {
	n, err := api.PageCount(rs, nil)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar páginas do PDF: %w", err)
	}
	return n, nil
}

func (l *leitorPDF) ExtrairPaginas(ctx context.Context, conteudo []byte) (paginas []domain.Pagina, err error) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("pânico ao ler PDF", zap.Any("recuperado", r))
			err = fmt.Errorf("PDF ilegível: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(conteudo), int64(len(conteudo)))
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir PDF: %w", err)
	}

	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := reader.Page(i)
		if p.V.IsNull() {
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("erro ao ler texto da página %d: %w", i, err)
		}
		paginas = append(paginas, MontarPagina(i, converterLinhas(rows)))
	}
	return paginas, nil
}

func converterLinhas(rows pdf.Rows) []LinhaPDF {
	linhas := make([]LinhaPDF, 0, len(rows))
	for _, row := range rows {
		l := LinhaPDF{Y: float64(row.Position)}
		for _, t := range row.Content {
			l.Trechos = append(l.Trechos, Trecho{X: t.X, W: t.W, S: t.S})
		}
		linhas = append(linhas, l)
	}
	return linhas
}

// MontarPagina transforma as linhas posicionadas (de cima para baixo) em
// texto corrido e tabela. Sem uma linha iniciando por data a página fica sem
// tabela.
func MontarPagina(numero int, linhas []LinhaPDF) domain.Pagina {
	pagina := domain.Pagina{Numero: numero}

	celulasPorLinha := make([][]celula, 0, len(linhas))
	for _, l := range linhas {
		cs := agrupar(l.Trechos)
		if len(cs) == 0 {
			continue
		}
		celulasPorLinha = append(celulasPorLinha, cs)
		pagina.Linhas = append(pagina.Linhas, juntar(cs))
	}

	inicio := -1
	for i, cs := range celulasPorLinha {
		if reDataInicial.MatchString(cs[0].S) {
			inicio = i
			break
		}
	}
	if inicio <= 0 {
		return pagina
	}

	cabecalho := celulasPorLinha[inicio-1]
	ancoras := make([]float64, len(cabecalho))
	titulos := make([]string, len(cabecalho))
	for i, c := range cabecalho {
		ancoras[i] = c.X
		titulos[i] = c.S
	}
	pagina.Tabela = append(pagina.Tabela, titulos)

	for _, cs := range celulasPorLinha[inicio:] {
		primeira := cs[0].S
		totais := strings.Contains(strings.ToUpper(primeira), domain.MarcadorLinhaTotais)
		if !totais && !reDataInicial.MatchString(primeira) {
			continue
		}
		pagina.Tabela = append(pagina.Tabela, distribuir(cs, ancoras))
		if totais {
			break
		}
	}
	return pagina
}

// agrupar ordena os trechos por X e une os que estão próximos em células.
func agrupar(trechos []Trecho) []celula {
	ordenados := make([]Trecho, 0, len(trechos))
	for _, t := range trechos {
		if strings.TrimSpace(t.S) != "" {
			ordenados = append(ordenados, t)
		}
	}
	sort.SliceStable(ordenados, func(i, j int) bool { return ordenados[i].X < ordenados[j].X })

	var (
		celulas []celula
		atual   strings.Builder
		inicioX float64
		fimX    float64
	)
	fechar := func() {
		if s := strings.TrimSpace(atual.String()); s != "" {
			celulas = append(celulas, celula{X: inicioX, S: s})
		}
		atual.Reset()
	}

	for i, t := range ordenados {
		folga := t.X - fimX
		switch {
		case i == 0:
			inicioX = t.X
		case folga > folgaCelula:
			fechar()
			inicioX = t.X
		case folga > folgaPalavra:
			atual.WriteByte(' ')
		}
		atual.WriteString(t.S)
		if fim := t.X + t.W; fim > fimX || i == 0 {
			fimX = fim
		}
	}
	fechar()
	return celulas
}

func juntar(cs []celula) string {
	partes := make([]string, len(cs))
	for i, c := range cs {
		partes[i] = c.S
	}
	return strings.Join(partes, " ")
}

// distribuir coloca cada célula na coluna de âncora mais à direita que ainda
// começa antes dela.
func distribuir(cs []celula, ancoras []float64) []string {
	linha := make([]string, len(ancoras))
	for _, c := range cs {
		col := 0
		for i, x := range ancoras {
			if x <= c.X+toleranciaEixo {
				col = i
			}
		}
		if linha[col] == "" {
			linha[col] = c.S
		} else {
			linha[col] += " " + c.S
		}
	}
	return linha
}
