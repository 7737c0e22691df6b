package extracao

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// LimiarSimilaridadePadrao é a similaridade mínima para aceitar um tema.
const LimiarSimilaridadePadrao = 0.6

// TemasPadrao é a lista mestra de justificativas do relatório da Blitz.
func TemasPadrao() []string {
	return []string{
		"FALTA SEM JUSTIFICATIVA",
		"ABONO DE HORAS",
		"DECLARAÇÃO DE HORAS",
		"AJUSTE DE HORAS",
		"ATESTADO MÉDICO",
		"FOLGA HABILITADA",
		"SAÍDA ANTECIPADA",
	}
}

// Marcadores que delimitam o bloco de alterações/justificativas da página.
func InicioJustificativasPadrao() []string { return []string{"ALTERACAO", "ALTERAÇÃO"} }
func FimJustificativasPadrao() []string    { return []string{"BLITZ RECURSOS HUMANOS"} }

var (
	espacosRegex  = regexp.MustCompile(`\s+`)
	datasRegex    = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)
	horariosRegex = regexp.MustCompile(`\d{1,2}:\d{2}(:\d{2})?`)
	numerosRegex  = regexp.MustCompile(`\d+`)
)

// NormalizarTema deixa o texto em maiúsculas, mantém só letras, dígitos e
// espaço e colapsa os espaços. Com removerAcentos as letras acentuadas
// perdem a marca diacrítica antes do filtro.
func NormalizarTema(texto string, removerAcentos bool) string {
	if removerAcentos {
		t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
			return unicode.Is(unicode.Mn, r)
		}), norm.NFC)
		if s, _, err := transform.String(t, texto); err == nil {
			texto = s
		}
	}
	texto = strings.ToUpper(texto)
	texto = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			return r
		}
		if unicode.IsSpace(r) {
			return ' '
		}
		return -1
	}, texto)
	texto = espacosRegex.ReplaceAllString(texto, " ")
	return strings.TrimSpace(texto)
}

// Similaridade é a razão de Ratcliff/Obershelp (2*M/T) entre os dois textos,
// comparados caractere a caractere.
func Similaridade(a, b string) float64 {
	m := difflib.NewMatcher(runas(a), runas(b))
	return m.Ratio()
}

func runas(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// LimparLinhaJustificativa tira datas, horários e números soltos da linha;
// números só atrapalham a comparação com os temas.
func LimparLinhaJustificativa(linha string) string {
	linha = datasRegex.ReplaceAllString(linha, "")
	linha = horariosRegex.ReplaceAllString(linha, "")
	linha = numerosRegex.ReplaceAllString(linha, "")
	return strings.TrimSpace(linha)
}

// MatcherTemas compara linhas livres com a lista de temas configurada.
type MatcherTemas struct {
	temas          []string
	normalizados   []string
	limiar         float64
	removerAcentos bool
	inicio         []string
	fim            []string
}

// OpcoesTemas configura o MatcherTemas. Campos vazios assumem o padrão.
type OpcoesTemas struct {
	Temas                []string
	Limiar               float64
	RemoverAcentos       bool
	InicioJustificativas []string
	FimJustificativas    []string
}

// NovoMatcherTemas pré-normaliza os temas uma única vez.
func NovoMatcherTemas(op OpcoesTemas) *MatcherTemas {
	if len(op.Temas) == 0 {
		op.Temas = TemasPadrao()
	}
	if op.Limiar <= 0 {
		op.Limiar = LimiarSimilaridadePadrao
	}
	if len(op.InicioJustificativas) == 0 {
		op.InicioJustificativas = InicioJustificativasPadrao()
	}
	if len(op.FimJustificativas) == 0 {
		op.FimJustificativas = FimJustificativasPadrao()
	}

	m := &MatcherTemas{
		temas:          op.Temas,
		limiar:         op.Limiar,
		removerAcentos: op.RemoverAcentos,
		inicio:         op.InicioJustificativas,
		fim:            op.FimJustificativas,
	}
	for _, tema := range op.Temas {
		m.normalizados = append(m.normalizados, NormalizarTema(tema, op.RemoverAcentos))
	}
	return m
}

// Temas devolve a lista de temas na ordem configurada.
func (m *MatcherTemas) Temas() []string {
	return m.temas
}

// Encontrar devolve o tema mais parecido com a linha quando a similaridade
// atinge o limiar. Em empate vence o primeiro tema da lista.
func (m *MatcherTemas) Encontrar(linha string) (string, bool) {
	alvo := NormalizarTema(linha, m.removerAcentos)
	melhor := -1
	melhorRazao := 0.0
	for i, tema := range m.normalizados {
		if razao := Similaridade(alvo, tema); razao > melhorRazao {
			melhorRazao = razao
			melhor = i
		}
	}
	if melhor < 0 || melhorRazao < m.limiar {
		return "", false
	}
	return m.temas[melhor], true
}

// ContarJustificativas conta os temas encontrados no bloco de alterações da
// página: a contagem começa depois da linha com o marcador de início e para
// na linha do rodapé. Todos os temas aparecem no mapa, mesmo com zero.
func (m *MatcherTemas) ContarJustificativas(linhas []string) map[string]int {
	contagem := make(map[string]int, len(m.temas))
	for _, tema := range m.temas {
		contagem[tema] = 0
	}

	dentro := false
	for _, linha := range linhas {
		if !dentro {
			if m.contemAlgum(linha, m.inicio) {
				dentro = true
			}
			continue
		}
		if m.contemAlgum(linha, m.fim) {
			break
		}

		limpa := LimparLinhaJustificativa(linha)
		if limpa == "" {
			continue
		}
		if tema, ok := m.Encontrar(limpa); ok {
			contagem[tema]++
		}
	}
	return contagem
}

func (m *MatcherTemas) contemAlgum(linha string, marcadores []string) bool {
	maiuscula := strings.ToUpper(linha)
	normalizada := NormalizarTema(linha, true)
	for _, marcador := range marcadores {
		marcador = strings.ToUpper(marcador)
		if strings.Contains(maiuscula, marcador) || strings.Contains(normalizada, marcador) {
			return true
		}
	}
	return false
}
