// Package extracao lê o conteúdo de uma página do relatório de apontamentos:
// cabeçalho do funcionário, linha de totais, linhas diárias e o bloco de
// justificativas.
package extracao

import (
	"strings"

	"github.com/LuisEduardoPedra/analisePonto/internal/domain"
)

// Nomes dos campos de identidade aceitos em CampoCabecalho.Campo.
const (
	CampoNome        = "nome"
	CampoCPF         = "cpf"
	CampoMatricula   = "matricula"
	CampoCargo       = "cargo"
	CampoCentroCusto = "centro_custo"
)

// CampoCabecalho descreve como achar um campo de identidade nas linhas da
// página: o valor fica depois do Marcador e termina no primeiro Terminador
// (ou no marcador de outro campo) que aparecer na mesma linha.
type CampoCabecalho struct {
	Campo        string
	Marcador     string
	Terminadores []string
}

// CamposCabecalhoPadrao segue o layout do PDF da Blitz, em que as colunas
// de dias da semana (SEG, QUI, DOM) dividem a linha com o cabeçalho.
func CamposCabecalhoPadrao() []CampoCabecalho {
	return []CampoCabecalho{
		{Campo: CampoNome, Marcador: "NOME DO FUNCIONÁRIO:", Terminadores: []string{"CPF"}},
		{Campo: CampoCPF, Marcador: "CPF DO FUNCIONÁRIO:", Terminadores: []string{"SEG"}},
		{Campo: CampoMatricula, Marcador: "NÚMERO DE MATRÍCULA:", Terminadores: []string{"NOME DO DEPARTAMENTO"}},
		{Campo: CampoCargo, Marcador: "NOME DO CARGO:", Terminadores: []string{"QUI"}},
		{Campo: CampoCentroCusto, Marcador: "NOME DO CENTRO DE CUSTO:", Terminadores: []string{"DOM"}},
	}
}

// ExtrairCabecalho percorre as linhas da página procurando cada marcador de
// forma independente. Campo não encontrado fica nil; uma linha posterior com
// o mesmo marcador sobrescreve a anterior.
func ExtrairCabecalho(linhas []string, campos []CampoCabecalho) domain.Identidade {
	var id domain.Identidade

	for _, linha := range linhas {
		for _, campo := range campos {
			if campo.Marcador == "" {
				continue
			}
			pos := strings.LastIndex(linha, campo.Marcador)
			if pos < 0 {
				continue
			}
			valor := linha[pos+len(campo.Marcador):]
			valor = cortarNoTerminador(valor, campo, campos)
			atribuir(&id, campo.Campo, strings.TrimSpace(valor))
		}
	}

	return id
}

func cortarNoTerminador(valor string, campo CampoCabecalho, campos []CampoCabecalho) string {
	fim := len(valor)
	for _, t := range campo.Terminadores {
		if t == "" {
			continue
		}
		if i := strings.Index(valor, t); i >= 0 && i < fim {
			fim = i
		}
	}
	for _, outro := range campos {
		if outro.Marcador == "" || outro.Marcador == campo.Marcador {
			continue
		}
		if i := strings.Index(valor, outro.Marcador); i >= 0 && i < fim {
			fim = i
		}
	}
	return valor[:fim]
}

func atribuir(id *domain.Identidade, campo, valor string) {
	switch campo {
	case CampoNome:
		id.Nome = &valor
	case CampoCPF:
		id.CPF = &valor
	case CampoMatricula:
		id.Matricula = &valor
	case CampoCargo:
		id.Cargo = &valor
	case CampoCentroCusto:
		id.CentroCusto = &valor
	}
}
