package classificacao

import (
	"strings"
	"unicode"

	"github.com/LuisEduardoPedra/analisePonto/internal/core/horario"
	"github.com/LuisEduardoPedra/analisePonto/internal/domain"
)

// Nomes das etapas padrão, na ordem em que rodam.
const (
	EtapaValidacaoHoras        = "validacao-horas"
	EtapaSituacaoInicial       = "situacao-inicial"
	EtapaReavaliacaoIncompleto = "reavaliacao-incompleto"
	EtapaTracoEntrada          = "traco-entrada"
	EtapaCorrecao              = "correcao"
	EtapaDigitoInicial         = "digito-inicial"
	EtapaPrevistoNaoEscalado   = "previsto-nao-escalado"
)

// validarHoras compara as horas batidas nos dois pares com as horas
// previstas. Saída antes da entrada gera total negativo e fica assim.
func validarHoras(r *domain.RegistroDiario) {
	total := (horario.ParaMinutos(r.Saida1) - horario.ParaMinutos(r.Entrada1)) +
		(horario.ParaMinutos(r.Saida2) - horario.ParaMinutos(r.Entrada2))
	previsto := horario.ParaMinutos(r.HorasPrevistas)

	switch {
	case total > previsto:
		r.ValidacaoHoras = domain.ValidacaoHoraExtra
	case total == previsto:
		r.ValidacaoHoras = domain.ValidacaoCompleta
	default:
		r.ValidacaoHoras = domain.ValidacaoIncompleta
	}
}

// situacaoInicial: a primeira batida preenchida que não é horário vira a
// situação; senão conta quantas batidas são horários válidos.
func situacaoInicial(r *domain.RegistroDiario) {
	if texto, ok := primeiroTextoLivre(r); ok {
		r.Situacao = strings.ToUpper(texto)
		return
	}

	validas := 0
	for _, b := range r.Batidas() {
		if horario.EhHorario(b) {
			validas++
		}
	}
	switch {
	case validas == 4:
		r.Situacao = domain.SituacaoNormal
	case validas > 0:
		r.Situacao = domain.SituacaoParcial
	default:
		r.Situacao = domain.SituacaoIncompleto
	}
}

func reavaliarIncompleto(r *domain.RegistroDiario) {
	if r.Situacao != domain.SituacaoIncompleto {
		return
	}
	if horario.EhTempoTrabalhado(r.TotalTrabalhado) {
		r.Situacao = domain.SituacaoNormal
		return
	}
	if batidasVazias(r) {
		r.Situacao = domain.SituacaoNaoEscalado
		return
	}
	if texto, ok := primeiroTextoLivre(r); ok {
		r.Situacao = strings.ToUpper(texto)
		return
	}
	r.Situacao = domain.SituacaoParcial
}

// tracoEntrada força "não escalado" quando a primeira entrada tem traço,
// qualquer que seja o resultado das etapas anteriores.
func tracoEntrada(r *domain.RegistroDiario) {
	if strings.Contains(r.Entrada1, domain.TracoNaoEscalado) {
		r.Situacao = domain.SituacaoNaoEscalado
	}
}

// corrigirSituacao troca uma batida que vazou como situação pela primeira
// batida preenchida do dia.
func corrigirSituacao(r *domain.RegistroDiario) {
	r.Correcao = ""
	for _, b := range r.Batidas() {
		if b != "" {
			r.Correcao = b
			break
		}
	}
	if horario.EhHorario(r.Situacao) {
		r.Situacao = r.Correcao
	}
}

func digitoInicial(r *domain.RegistroDiario) {
	primeiro, _ := primeiraRuna(r.Situacao)
	if !unicode.IsDigit(primeiro) {
		return
	}
	switch {
	case horario.EhTempoTrabalhado(r.TotalTrabalhado):
		r.Situacao = domain.SituacaoNormal
	case r.Previsto != "":
		r.Situacao = strings.ToUpper(r.Previsto)
	default:
		r.Situacao = domain.SituacaoNaoEscalado
	}
}

// previstoNaoEscalado usa o previsto como situação de um dia não escalado
// quando ele traz uma justificativa. Previsto com horário é jornada, não
// situação, e o dia continua não escalado.
func previstoNaoEscalado(r *domain.RegistroDiario) {
	if r.Situacao != domain.SituacaoNaoEscalado {
		return
	}
	if horario.EhHorario(r.Previsto) {
		return
	}
	if r.Previsto != "" && r.Previsto != domain.TracoNaoEscalado {
		r.Situacao = r.Previsto
	}
}

func primeiroTextoLivre(r *domain.RegistroDiario) (string, bool) {
	for _, b := range r.Batidas() {
		if b != "" && !horario.EhHorario(b) {
			return b, true
		}
	}
	return "", false
}

func batidasVazias(r *domain.RegistroDiario) bool {
	for _, b := range r.Batidas() {
		if b != "" {
			return false
		}
	}
	return true
}

func primeiraRuna(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}
