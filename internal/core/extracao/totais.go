package extracao

import (
	"strconv"
	"strings"

	"github.com/LuisEduardoPedra/analisePonto/internal/core/horario"
	"github.com/LuisEduardoPedra/analisePonto/internal/domain"
)

// Chaves canônicas das colunas de totais.
const (
	ColunaTotalTrabalhado = "total_trabalhado"
	ColunaTotalNoturno    = "total_noturno"
	ColunaHorasPrevistas  = "horas_previstas"
	ColunaFaltas          = "faltas"
	ColunaHorasAtraso     = "horas_atraso"
	ColunaExtra50         = "extra_50"
	ColunaDescontaDSR     = "desconta_dsr"
)

// regrasColuna é avaliada em ordem: o primeiro trecho encontrado no título
// decide a coluna.
var regrasColuna = []struct {
	trecho string
	chave  string
}{
	{"TRAB", ColunaTotalTrabalhado},
	{"NOTURNO", ColunaTotalNoturno},
	{"PREVIST", ColunaHorasPrevistas},
	{"FALTA", ColunaFaltas},
	{"ATRASO", ColunaHorasAtraso},
	{"EXTRA", ColunaExtra50},
	{"DSR", ColunaDescontaDSR},
}

// NormalizarColuna mapeia o título de uma coluna do PDF para a chave
// canônica, ou "" quando a coluna não interessa.
func NormalizarColuna(titulo string) string {
	if titulo == "" {
		return ""
	}
	t := strings.ToUpper(titulo)
	for _, r := range regrasColuna {
		if strings.Contains(t, r.trecho) {
			return r.chave
		}
	}
	return ""
}

// EhLinhaTotais reconhece a linha de totais pela primeira célula.
func EhLinhaTotais(linha []string) bool {
	return len(linha) > 0 && strings.Contains(strings.ToUpper(linha[0]), domain.MarcadorLinhaTotais)
}

// ExtrairTotais lê a linha TOTAIS da tabela (a primeira linha é o
// cabeçalho). Sem linha TOTAIS os totais ficam no padrão.
func ExtrairTotais(tabela [][]string) domain.Totais {
	totais := domain.NovosTotais()
	if len(tabela) == 0 {
		return totais
	}

	cabecalho := tabela[0]
	for _, linha := range tabela {
		if !EhLinhaTotais(linha) {
			continue
		}
		n := min(len(cabecalho), len(linha))
		for i := 0; i < n; i++ {
			atribuirTotal(&totais, NormalizarColuna(cabecalho[i]), linha[i])
		}
	}
	return totais
}

func atribuirTotal(t *domain.Totais, chave, valor string) {
	switch chave {
	case ColunaTotalTrabalhado:
		t.TotalTrabalhado = horario.PadronizarTempo(valor)
	case ColunaTotalNoturno:
		t.TotalNoturno = horario.PadronizarTempo(valor)
	case ColunaHorasPrevistas:
		t.HorasPrevistas = horario.PadronizarTempo(valor)
	case ColunaHorasAtraso:
		t.HorasAtraso = horario.PadronizarTempo(valor)
	case ColunaExtra50:
		t.Extra50 = horario.PadronizarTempo(valor)
	case ColunaFaltas:
		t.Faltas = inteiroOuZero(valor)
	case ColunaDescontaDSR:
		t.DescontaDSR = inteiroOuZero(valor)
	}
}

func inteiroOuZero(valor string) int {
	v := strings.TrimSpace(valor)
	if v == "" {
		return 0
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return 0
		}
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// AjustarExtra zera a hora extra quando ela repete as horas previstas:
// nesse caso é erro de digitação do relatório, não hora extra de verdade.
func AjustarExtra(t *domain.Totais) {
	if t.Extra50 == t.HorasPrevistas {
		t.Extra50 = domain.TempoZerado
	}
}
