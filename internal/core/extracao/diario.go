package extracao

import (
	"strings"

	"github.com/LuisEduardoPedra/analisePonto/internal/domain"
)

// Posições fixas das colunas na tabela diária do PDF da Blitz. O extrator de
// tabela precisa entregar as colunas nesta ordem; se o layout mudar, os
// campos deslocam junto.
const (
	colDia = iota
	colPrevisto
	colEntrada1
	colSaida1
	colEntrada2
	colSaida2
	colTotalTrabalhado
	colTotalNoturno
	colHorasPrevistas
	colFaltas
	colHorasAtraso
	colExtra50
	colDescontaDSR
)

// MontarRegistros gera um RegistroDiario por linha de dia da tabela,
// ignorando o cabeçalho, linhas vazias e a linha TOTAIS.
func MontarRegistros(pagina int, tabela [][]string, id domain.Identidade) []domain.RegistroDiario {
	if len(tabela) < 2 {
		return nil
	}

	nome := domain.Valor(id.Nome)
	cpf := domain.Valor(id.CPF)

	var registros []domain.RegistroDiario
	for _, linha := range tabela[1:] {
		if linhaVazia(linha) || EhLinhaTotais(linha) {
			continue
		}

		celula := func(i int) string {
			if i < len(linha) {
				return strings.TrimSpace(linha[i])
			}
			return ""
		}

		data, diaSemana := separarDia(celula(colDia))
		registros = append(registros, domain.RegistroDiario{
			Pagina:          pagina,
			Nome:            nome,
			CPF:             cpf,
			Data:            data,
			DiaSemana:       diaSemana,
			Previsto:        celula(colPrevisto),
			Entrada1:        celula(colEntrada1),
			Saida1:          celula(colSaida1),
			Entrada2:        celula(colEntrada2),
			Saida2:          celula(colSaida2),
			TotalTrabalhado: celula(colTotalTrabalhado),
			TotalNoturno:    celula(colTotalNoturno),
			HorasPrevistas:  celula(colHorasPrevistas),
			Faltas:          celula(colFaltas),
			HorasAtraso:     celula(colHorasAtraso),
			Extra50:         celula(colExtra50),
			DescontaDSR:     celula(colDescontaDSR),
		})
	}
	return registros
}

func linhaVazia(linha []string) bool {
	for _, c := range linha {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func separarDia(celula string) (data, diaSemana string) {
	partes := strings.SplitN(celula, domain.SeparadorDiaSemana, 2)
	data = strings.TrimSpace(partes[0])
	if len(partes) > 1 {
		diaSemana = strings.TrimSpace(partes[1])
	}
	return data, diaSemana
}
