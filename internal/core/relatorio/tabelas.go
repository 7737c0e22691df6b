// Package relatorio monta as tabelas de saída do processamento (consolidado
// por funcionário e detalhe por dia) e as grava em planilha ou CSV.
package relatorio

import (
	"sort"

	"github.com/LuisEduardoPedra/analisePonto/internal/domain"
)

// Nomes de arquivo/aba usados na exportação.
const (
	NomeConsolidado    = "consolidado_blitz"
	NomeDetalhe        = "detalhe_funcionarios"
	NomeJustificativas = "justificativas_blitz"
)

// Tabela é um conjunto plano de linhas com colunas nomeadas.
type Tabela struct {
	Nome    string
	Colunas []string
	Linhas  [][]any
}

var colunasConsolidado = []string{
	"pagina", "nome", "cpf", "matricula", "cargo", "centro_custo",
	"total_trabalhado", "total_noturno", "horas_previstas", "faltas",
	"horas_atraso", "extra_50", "desconta_dsr", "status",
}

var colunasDetalhe = []string{
	"pagina", "nome", "cpf", "data", "dia_semana", "previsto",
	"entrada_1", "saida_1", "entrada_2", "saida_2",
	"total_trabalhado", "total_noturno", "horas_previstas", "faltas",
	"horas_atraso", "extra_50", "desconta_dsr",
	"validacao_horas", "situacao", "correcao",
}

// Consolidado traz uma linha por funcionário/página, sem os contadores de
// justificativa.
func Consolidado(res *domain.ResultadoBlitz) Tabela {
	t := Tabela{Nome: NomeConsolidado, Colunas: append([]string(nil), colunasConsolidado...)}
	for _, f := range res.Funcionarios {
		t.Linhas = append(t.Linhas, []any{
			f.Pagina,
			domain.Valor(f.Nome),
			domain.Valor(f.CPF),
			domain.Valor(f.Matricula),
			domain.Valor(f.Cargo),
			domain.Valor(f.CentroCusto),
			f.TotalTrabalhado,
			f.TotalNoturno,
			f.HorasPrevistas,
			f.Faltas,
			f.HorasAtraso,
			f.Extra50,
			f.DescontaDSR,
			f.Status,
		})
	}
	return t
}

// Detalhe traz uma linha por dia, seguida de uma coluna "Qtd - <situação>"
// para cada situação que apareceu no documento, na ordem em que apareceu.
// O valor é a contagem do funcionário daquela linha.
func Detalhe(res *domain.ResultadoBlitz) Tabela {
	situacoes := SituacoesObservadas(res.Registros)

	t := Tabela{Nome: NomeDetalhe, Colunas: append([]string(nil), colunasDetalhe...)}
	for _, s := range situacoes {
		t.Colunas = append(t.Colunas, domain.PrefixoQtdSituacao+s)
	}

	for _, r := range res.Registros {
		linha := []any{
			r.Pagina, r.Nome, r.CPF, r.Data, r.DiaSemana, r.Previsto,
			r.Entrada1, r.Saida1, r.Entrada2, r.Saida2,
			r.TotalTrabalhado, r.TotalNoturno, r.HorasPrevistas, r.Faltas,
			r.HorasAtraso, r.Extra50, r.DescontaDSR,
			r.ValidacaoHoras, r.Situacao, r.Correcao,
		}
		for _, s := range situacoes {
			linha = append(linha, r.ContagemSituacoes[s])
		}
		t.Linhas = append(t.Linhas, linha)
	}
	return t
}

// Justificativas traz os contadores de tema por funcionário, na ordem da
// lista de temas informada.
func Justificativas(res *domain.ResultadoBlitz) Tabela {
	temas := res.Temas
	if len(temas) == 0 {
		temas = temasContados(res.Funcionarios)
	}

	t := Tabela{Nome: NomeJustificativas, Colunas: []string{"pagina", "nome", "cpf"}}
	t.Colunas = append(t.Colunas, temas...)
	for _, f := range res.Funcionarios {
		linha := []any{f.Pagina, domain.Valor(f.Nome), domain.Valor(f.CPF)}
		for _, tema := range temas {
			linha = append(linha, f.Temas[tema])
		}
		t.Linhas = append(t.Linhas, linha)
	}
	return t
}

// temasContados junta, em ordem alfabética, os temas presentes nos
// contadores quando o resultado não traz o vocabulário.
func temasContados(funcionarios []domain.ResumoFuncionario) []string {
	vistos := make(map[string]bool)
	var temas []string
	for _, f := range funcionarios {
		for tema := range f.Temas {
			if !vistos[tema] {
				vistos[tema] = true
				temas = append(temas, tema)
			}
		}
	}
	sort.Strings(temas)
	return temas
}

// SituacoesObservadas lista as situações distintas na ordem de aparição.
func SituacoesObservadas(registros []domain.RegistroDiario) []string {
	vistas := make(map[string]bool)
	var ordem []string
	for _, r := range registros {
		if !vistas[r.Situacao] {
			vistas[r.Situacao] = true
			ordem = append(ordem, r.Situacao)
		}
	}
	return ordem
}
